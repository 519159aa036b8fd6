package inventory

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNameLength = 120

// dateLayout is the wire format for product dates.
const dateLayout = "2006-01-02"

// Form validation errors, shown before a request is ever issued.
var (
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name must be at most 120 characters")
	ErrCategoryRequired   = errors.New("category is required")
	ErrPriceNegative      = errors.New("unit price cannot be negative")
	ErrStockNegative      = errors.New("stock cannot be negative")
	ErrExpirationInvalid  = errors.New("expiration date must be a valid date")
	ErrExpirationNotAhead = errors.New("expiration date must be in the future")
)

// ValidateProductForm checks a product before submitting it, so most
// mistakes never leave the client. The checks are deliberately looser than
// the server's in one spot (a zero unit price passes here and is rejected
// by the server) and stricter in another (the expiration date must be
// strictly after today at submit time, while the server accepts today).
func ValidateProductForm(p Product) error {
	return validateProductFormAt(p, time.Now())
}

func validateProductFormAt(p Product, now time.Time) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrCategoryRequired
	}
	if p.UnitPrice < 0 {
		return ErrPriceNegative
	}
	if p.Stock < 0 {
		return ErrStockNegative
	}
	if p.ExpirationDate != nil && *p.ExpirationDate != "" {
		expires, err := time.Parse(dateLayout, *p.ExpirationDate)
		if err != nil {
			return ErrExpirationInvalid
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if !expires.After(today) {
			return ErrExpirationNotAhead
		}
	}
	return nil
}

// ValidateCategoryName checks a category name before submitting it.
func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// CategoryNameExists reports whether name collides case-insensitively with
// an existing category other than excludeID. Pass excludeID 0 when creating.
func CategoryNameExists(categories []Category, name string, excludeID int64) bool {
	candidate := strings.ToLower(strings.TrimSpace(name))
	for _, c := range categories {
		if c.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(c.Name)) == candidate {
			return true
		}
	}
	return false
}
