package inventory

import (
	"net/url"
	"strconv"
)

// Availability filter values.
const (
	AvailabilityAll = "all"
	AvailabilityIn  = "in"
	AvailabilityOut = "out"
)

// CatalogueQuery describes which slice of the catalogue to fetch:
// filters, sort and pagination. Page is 1-based.
type CatalogueQuery struct {
	Page         int
	Size         int
	Name         string
	Category     string
	Availability string
	SortBy       string
	Direction    string
}

// DefaultQuery returns the initial catalogue query.
func DefaultQuery() CatalogueQuery {
	return CatalogueQuery{
		Page:         1,
		Size:         10,
		Availability: AvailabilityAll,
		SortBy:       "id",
		Direction:    "asc",
	}
}

// QueryPatch is a partial query change; nil fields are left untouched.
type QueryPatch struct {
	Page         *int
	Size         *int
	Name         *string
	Category     *string
	Availability *string
	SortBy       *string
	Direction    *string
}

// Apply merges the patch into the query. Changing any field other than
// Page/Size invalidates the current position, so Page resets to 1; a page
// that only made sense for the previous filters must never leak through.
func (q CatalogueQuery) Apply(p QueryPatch) CatalogueQuery {
	out := q
	filterChanged := false

	if p.Name != nil && *p.Name != out.Name {
		out.Name = *p.Name
		filterChanged = true
	}
	if p.Category != nil && *p.Category != out.Category {
		out.Category = *p.Category
		filterChanged = true
	}
	if p.Availability != nil && *p.Availability != out.Availability {
		out.Availability = *p.Availability
		filterChanged = true
	}
	if p.SortBy != nil && *p.SortBy != out.SortBy {
		out.SortBy = *p.SortBy
		filterChanged = true
	}
	if p.Direction != nil && *p.Direction != out.Direction {
		out.Direction = *p.Direction
		filterChanged = true
	}
	if p.Page != nil {
		out.Page = *p.Page
	}
	if p.Size != nil {
		out.Size = *p.Size
	}

	if filterChanged {
		out.Page = 1
	}
	return out
}

// Values serializes the query as request parameters, defaulting blank fields.
func (q CatalogueQuery) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size < 1 {
		size = 10
	}
	availability := q.Availability
	if availability == "" {
		availability = AvailabilityAll
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	direction := q.Direction
	if direction == "" {
		direction = "asc"
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	v.Set("name", q.Name)
	v.Set("category", q.Category)
	v.Set("availability", availability)
	v.Set("sortBy", sortBy)
	v.Set("direction", direction)
	return v
}

// Helper constructors for QueryPatch fields.

// String returns a pointer to s, for use in QueryPatch literals.
func String(s string) *string { return &s }

// Int returns a pointer to n, for use in QueryPatch literals.
func Int(n int) *int { return &n }
