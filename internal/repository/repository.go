package repository

import (
	"errors"

	"github.com/sparkd/inventory-manager/internal/models"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// ErrDuplicateName is returned when a write would violate the
// case-insensitive uniqueness of category names.
var ErrDuplicateName = errors.New("name already exists")

// Availability filter values for product searches.
const (
	AvailabilityAll = "all"
	AvailabilityIn  = "in"
	AvailabilityOut = "out"
)

// ProductSearch describes a filtered, sorted, paginated product query.
// Zero values mean "no filter"; Page is 1-based.
type ProductSearch struct {
	Name         string // substring match on name, case-insensitive
	Category     string // exact match, case-insensitive
	Availability string // all | in | out
	Page         int
	Size         int
	SortBy       string // id | name | category | unitPrice | stock | expirationDate
	Direction    string // asc | desc
}

// ProductRepository handles data access for products.
type ProductRepository interface {
	Search(q ProductSearch) (models.ProductPage, error)
	GetByID(id int64) (*models.Product, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id int64) (bool, error)
	CategoryMetrics() ([]models.CategoryInventorySummary, error)
}

// CategoryRepository handles data access for categories.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id int64) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Create(c *models.Category) error
	Update(c *models.Category) error
	Delete(id int64) (bool, error)
}
