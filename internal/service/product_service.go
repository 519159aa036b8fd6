package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sparkd/inventory-manager/internal/cache"
	"github.com/sparkd/inventory-manager/internal/models"
	"github.com/sparkd/inventory-manager/internal/repository"
)

// ErrProductNotFound is returned when the referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ValidationError marks a write rejected by input validation. Its message is
// shown to the user as-is.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(msg string) error { return &ValidationError{msg: msg} }

const maxProductNameLength = 120

// ProductService handles catalogue search, product CRUD and the per-category
// inventory metrics. The metrics cache is optional; a nil cache disables it.
type ProductService struct {
	repo         repository.ProductRepository
	metricsCache *cache.MetricsCache
}

// NewProductService constructs a ProductService.
func NewProductService(repo repository.ProductRepository, metricsCache *cache.MetricsCache) *ProductService {
	return &ProductService{repo: repo, metricsCache: metricsCache}
}

// Search normalizes the query and returns the matching catalogue page.
// Defaults: page 1, size 10, availability "all", sortBy "id", direction "asc".
func (s *ProductService) Search(q repository.ProductSearch) (models.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}
	if strings.TrimSpace(q.Availability) == "" {
		q.Availability = repository.AvailabilityAll
	}
	if strings.TrimSpace(q.SortBy) == "" {
		q.SortBy = "id"
	}
	if strings.EqualFold(q.Direction, "desc") {
		q.Direction = "desc"
	} else {
		q.Direction = "asc"
	}
	return s.repo.Search(q)
}

// Create validates and stores a new product.
func (s *ProductService) Create(p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	s.invalidateMetrics()
	return p, nil
}

// Update validates and replaces an existing product's mutable fields.
func (s *ProductService) Update(id int64, p *models.Product) (*models.Product, error) {
	p.ID = id
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	s.invalidateMetrics()
	return p, nil
}

// Delete removes a product by id. Returns ErrProductNotFound if no row matched.
func (s *ProductService) Delete(id int64) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	s.invalidateMetrics()
	return nil
}

// CategoryMetrics returns the per-category inventory aggregates, served from
// the cache when enabled and fresh.
func (s *ProductService) CategoryMetrics() ([]models.CategoryInventorySummary, error) {
	if s.metricsCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cached, err := s.metricsCache.Get(ctx); err != nil {
			log.Warn().Err(err).Msg("metrics cache read failed")
		} else if cached != nil {
			return cached, nil
		}

		metrics, err := s.repo.CategoryMetrics()
		if err != nil {
			return nil, err
		}
		if err := s.metricsCache.Set(ctx, metrics); err != nil {
			log.Warn().Err(err).Msg("metrics cache write failed")
		}
		return metrics, nil
	}
	return s.repo.CategoryMetrics()
}

// invalidateMetrics drops stale cached metrics after a mutation. Cache
// failures only cost freshness within the TTL, so they are just logged.
func (s *ProductService) invalidateMetrics() {
	if s.metricsCache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.metricsCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("metrics cache invalidation failed")
	}
}

// validateProduct enforces the write-side constraints on a product.
func validateProduct(p *models.Product) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return validationErrorf("name must not be blank")
	}
	if len([]rune(p.Name)) > maxProductNameLength {
		return validationErrorf("name must be at most 120 characters")
	}
	if strings.TrimSpace(p.Category) == "" {
		return validationErrorf("category must not be blank")
	}
	if p.UnitPrice <= 0 {
		return validationErrorf("unitPrice must be > 0")
	}
	if p.Stock < 0 {
		return validationErrorf("stock must be >= 0")
	}
	if p.ExpirationDate != nil && *p.ExpirationDate != "" {
		d, err := time.Parse(models.DateLayout, *p.ExpirationDate)
		if err != nil {
			return validationErrorf("expirationDate must be an ISO date (YYYY-MM-DD)")
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			return validationErrorf("expirationDate must be today or in the future")
		}
	}
	return nil
}
