package repository

import (
	"fmt"
	"time"

	"github.com/sparkd/inventory-manager/internal/models"
)

// seedProduct is one row of the demo catalogue. expiresIn is relative to the
// seed time so the demo data never starts out expired; zero means no expiry.
type seedProduct struct {
	name      string
	category  string
	unitPrice float64
	stock     int
	expiresIn time.Duration
}

const day = 24 * time.Hour

var seedCategories = []string{
	"Certificación Agile/IT",
	"Certificación Cloud",
	"Certificación DevOps",
	"Certificación Networking",
}

var seedProducts = []seedProduct{
	{"AWS Cloud Practitioner (CLF-C02) - Exam Voucher", "Certificación Cloud", 100, 0, 0},
	{"Google Cloud Associate Cloud Engineer (ACE) - Exam Voucher", "Certificación Cloud", 125, 15, 90 * day},
	{"Microsoft Azure Fundamentals (AZ-900) - Exam Voucher", "Certificación Cloud", 99, 25, 5 * day},
	{"AWS Solutions Architect Associate (SAA-C03) - Exam Voucher", "Certificación Cloud", 150, 0, 12 * day},
	{"Google Cloud Professional Cloud Architect (PCA) - Exam Voucher", "Certificación Cloud", 200, 10, 90 * day},
	{"Microsoft Azure Administrator (AZ-104) - Exam Voucher", "Certificación Cloud", 165, 12, 5 * day},
	{"AWS Developer Associate (DVA-C02) - Exam Voucher", "Certificación Cloud", 140, 0, 0},
	{"AWS SysOps Administrator Associate (SOA-C02) - Exam Voucher", "Certificación Cloud", 150, 5, 12 * day},
	{"Kubernetes CKA (Certified Kubernetes Administrator) - Exam Voucher", "Certificación DevOps", 395, 0, 90 * day},
	{"Kubernetes CKAD (Certified Kubernetes Application Developer) - Exam Voucher", "Certificación DevOps", 395, 8, 5 * day},
	{"Kubernetes CKS (Certified Kubernetes Security Specialist) - Exam Voucher", "Certificación DevOps", 395, 5, 12 * day},
	{"HashiCorp Terraform Associate - Exam Voucher", "Certificación DevOps", 150, 0, 0},
	{"HashiCorp Vault Associate - Exam Voucher", "Certificación DevOps", 150, 7, 5 * day},
	{"Google Cloud Professional DevOps Engineer - Exam Voucher", "Certificación DevOps", 200, 4, 90 * day},
	{"Microsoft Azure DevOps Engineer Expert (AZ-400) - Exam Voucher", "Certificación DevOps", 195, 0, 0},
	{"Cisco CCNA 200-301 - Exam Voucher", "Certificación Networking", 300, 6, 90 * day},
	{"Cisco CCNP Enterprise (ENCOR 350-401) - Exam Voucher", "Certificación Networking", 400, 0, 12 * day},
	{"Cisco DevNet Associate (DEVASC 200-901) - Exam Voucher", "Certificación Networking", 300, 10, 5 * day},
	{"CompTIA Network+ (N10-009) - Exam Voucher", "Certificación Networking", 180, 0, 0},
	{"CompTIA Security+ (SY0-701) - Exam Voucher", "Certificación Networking", 250, 12, 90 * day},
	{"Juniper JNCIA-Junos (JN0-104) - Exam Voucher", "Certificación Networking", 200, 7, 5 * day},
	{"Aruba Certified Switching Associate (HPE6-A72) - Exam Voucher", "Certificación Networking", 210, 0, 0},
	{"Scrum.org PSM I (Professional Scrum Master I) - Exam Attempt", "Certificación Agile/IT", 150, 0, 12 * day},
	{"Scrum.org PSM II (Professional Scrum Master II) - Exam Attempt", "Certificación Agile/IT", 200, 6, 5 * day},
	{"Scrum.org PSPO I (Professional Scrum Product Owner I) - Exam Attempt", "Certificación Agile/IT", 150, 10, 0},
	{"ITIL 4 Foundation - Exam Voucher", "Certificación Agile/IT", 200, 0, 90 * day},
	{"COBIT 2019 Foundation - Exam Voucher", "Certificación Agile/IT", 220, 5, 5 * day},
	{"SAFe Agilist (Leading SAFe) - Exam Voucher", "Certificación Agile/IT", 250, 0, 0},
	{"PMI Agile Certified Practitioner (PMI-ACP) - Exam Voucher", "Certificación Agile/IT", 300, 4, 90 * day},
}

// SeedCatalogue loads the demo certification catalogue into the given
// repositories. Used by the memory store driver on boot.
func SeedCatalogue(products ProductRepository, categories CategoryRepository) error {
	now := time.Now()
	for _, name := range seedCategories {
		if err := categories.Create(&models.Category{Name: name}); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	for _, s := range seedProducts {
		p := models.Product{
			Name:      s.name,
			Category:  s.category,
			UnitPrice: s.unitPrice,
			Stock:     s.stock,
		}
		if s.expiresIn > 0 {
			d := now.Add(s.expiresIn).Format(models.DateLayout)
			p.ExpirationDate = &d
		}
		if err := products.Create(&p); err != nil {
			return fmt.Errorf("seed product %q: %w", s.name, err)
		}
	}
	return nil
}
