package models

// Category groups products in the catalogue. Names are unique
// case-insensitively; the service layer enforces this on writes.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
