package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sparkd/inventory-manager/internal/models"
)

// MemoryProductRepository is an in-memory ProductRepository used by the
// default store driver and by tests. It holds the whole catalogue in a map
// and evaluates searches over a snapshot, so no external storage is needed.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	seq      int64
}

// NewMemoryProductRepository creates an empty MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[int64]models.Product)}
}

// Search filters, sorts and paginates the catalogue snapshot.
func (r *MemoryProductRepository) Search(q ProductSearch) (models.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}

	r.mu.RLock()
	filtered := make([]models.Product, 0, len(r.products))
	name := strings.ToLower(strings.TrimSpace(q.Name))
	category := strings.TrimSpace(q.Category)
	availability := strings.ToLower(strings.TrimSpace(q.Availability))
	for _, p := range r.products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		switch availability {
		case AvailabilityIn:
			if p.Stock <= 0 {
				continue
			}
		case AvailabilityOut:
			if p.Stock > 0 {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	r.mu.RUnlock()

	sortProducts(filtered, q.SortBy, q.Direction)

	total := int64(len(filtered))
	from := (q.Page - 1) * q.Size
	to := from + q.Size
	if to > len(filtered) {
		to = len(filtered)
	}
	var content []models.Product
	if from < len(filtered) {
		content = filtered[from:to]
	}

	return models.NewProductPage(content, q.Page, q.Size, total), nil
}

// sortProducts orders products by the requested field with id as tie-break.
// Reversing the direction flips the primary field only; ids stay ascending.
func sortProducts(products []models.Product, sortBy, direction string) {
	desc := strings.EqualFold(direction, "desc")
	sort.SliceStable(products, func(i, j int) bool {
		a, b := &products[i], &products[j]
		if desc {
			a, b = b, a
		}
		switch cmp := compareBy(a, b, sortBy); {
		case cmp < 0:
			return true
		case cmp > 0:
			return false
		}
		return products[i].ID < products[j].ID
	})
}

// compareBy compares two products on a single whitelisted field. Products
// without an expiration date sort after dated ones, like SQL NULLS LAST.
func compareBy(a, b *models.Product, sortBy string) int {
	switch sortBy {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "category":
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	case "unitPrice":
		return compareFloat(a.UnitPrice, b.UnitPrice)
	case "stock":
		return a.Stock - b.Stock
	case "expirationDate":
		return compareDates(a.ExpirationDate, b.ExpirationDate)
	default:
		return compareInt64(a.ID, b.ID)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareDates(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	// ISO dates compare correctly as strings
	return strings.Compare(*a, *b)
}

// GetByID returns a single product by id.
func (r *MemoryProductRepository) GetByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Create assigns an id and timestamps to the product and stores it.
func (r *MemoryProductRepository) Create(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	today := time.Now().Format(models.DateLayout)
	p.ID = r.seq
	p.CreationDate = &today
	p.UpdateDate = &today
	r.products[p.ID] = *p
	return nil
}

// Update replaces an existing product, preserving its creation date.
func (r *MemoryProductRepository) Update(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	today := time.Now().Format(models.DateLayout)
	p.CreationDate = existing.CreationDate
	p.UpdateDate = &today
	r.products[p.ID] = *p
	return nil
}

// Delete removes a product by id and reports whether it existed.
func (r *MemoryProductRepository) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

// CategoryMetrics aggregates per-category stock metrics over the catalogue.
func (r *MemoryProductRepository) CategoryMetrics() ([]models.CategoryInventorySummary, error) {
	type accumulator struct {
		units int
		value float64
	}

	r.mu.RLock()
	acc := make(map[string]*accumulator)
	for _, p := range r.products {
		category := p.Category
		if strings.TrimSpace(category) == "" {
			category = "NO-CATEGORY"
		}
		a, ok := acc[category]
		if !ok {
			a = &accumulator{}
			acc[category] = a
		}
		a.units += p.Stock
		a.value += p.UnitPrice * float64(p.Stock)
	}
	r.mu.RUnlock()

	out := make([]models.CategoryInventorySummary, 0, len(acc))
	for category, a := range acc {
		avg := 0.0
		if a.units > 0 {
			avg = roundCents(a.value / float64(a.units))
		}
		out = append(out, models.CategoryInventorySummary{
			Category:                category,
			TotalUnitsInStock:       a.units,
			TotalStockValue:         a.value,
			AverageUnitPriceInStock: avg,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Category) < strings.ToLower(out[j].Category)
	})
	return out, nil
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
