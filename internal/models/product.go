package models

import "time"

// DateLayout is the wire format for all date fields (ISO calendar date).
const DateLayout = "2006-01-02"

// Product represents a sellable item in the catalogue, typically an exam
// voucher for an IT certification. Fields are tagged for both DB scanning
// and JSON serialization; the JSON shape is the public API contract.
type Product struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Category       string  `db:"category" json:"category"`
	UnitPrice      float64 `db:"unit_price" json:"unitPrice"`
	Stock          int     `db:"stock" json:"stock"`
	ExpirationDate *string `db:"expiration_date" json:"expirationDate"`
	CreationDate   *string `db:"creation_date" json:"creationDate,omitempty"`
	UpdateDate     *string `db:"update_date" json:"updateDate,omitempty"`
}

// InStock reports whether the product has units available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Expired reports whether the product's expiration date is in the past.
// Products without an expiration date never expire.
func (p *Product) Expired(now time.Time) bool {
	if p.ExpirationDate == nil || *p.ExpirationDate == "" {
		return false
	}
	d, err := time.Parse(DateLayout, *p.ExpirationDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}
