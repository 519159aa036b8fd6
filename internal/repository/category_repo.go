package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sparkd/inventory-manager/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE raised by the case-insensitive
// unique index on category names.
const uniqueViolation = "23505"

// PostgresCategoryRepository is the PostgreSQL-backed CategoryRepository.
type PostgresCategoryRepository struct {
	db *sqlx.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository.
func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// GetAll returns every category, unsorted; callers decide presentation order.
func (r *PostgresCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Select(&categories, `SELECT id, name FROM categories`); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// GetByID returns a single category by id.
func (r *PostgresCategoryRepository) GetByID(id int64) (*models.Category, error) {
	var c models.Category
	if err := r.db.Get(&c, `SELECT id, name FROM categories WHERE id = $1 LIMIT 1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByName returns the category whose name matches case-insensitively,
// or ErrNotFound.
func (r *PostgresCategoryRepository) FindByName(name string) (*models.Category, error) {
	var c models.Category
	err := r.db.Get(&c, `SELECT id, name FROM categories WHERE LOWER(name) = LOWER($1) LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category, filling the server-assigned id.
func (r *PostgresCategoryRepository) Create(c *models.Category) error {
	err := r.db.QueryRowx(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	return mapUniqueViolation(err)
}

// Update renames an existing category.
func (r *PostgresCategoryRepository) Update(c *models.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category by id and reports whether a row was deleted.
func (r *PostgresCategoryRepository) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// mapUniqueViolation translates the unique index error into ErrDuplicateName.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return ErrDuplicateName
	}
	return err
}
