package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sparkd/inventory-manager/internal/models"
)

// productColumns selects product fields with date columns rendered in the
// wire format so they scan straight into the model's string fields.
const productColumns = `
    id, name, category, unit_price, stock,
    to_char(expiration_date, 'YYYY-MM-DD') AS expiration_date,
    to_char(creation_date, 'YYYY-MM-DD') AS creation_date,
    to_char(update_date, 'YYYY-MM-DD') AS update_date`

// productSearchWhere applies the name/category/availability filters.
// Empty name/category disable the respective filter; availability "all"
// (or empty) matches everything.
const productSearchWhere = `
    WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
    AND ($2 = '' OR LOWER(category) = LOWER($2))
    AND ($3 = '' OR $3 = 'all'
        OR ($3 = 'in' AND stock > 0)
        OR ($3 = 'out' AND stock <= 0))`

// sortColumns whitelists the sortable fields and maps them to ORDER BY
// expressions. Anything not listed here sorts by id.
var sortColumns = map[string]string{
	"id":             "id",
	"name":           "LOWER(name)",
	"category":       "LOWER(category)",
	"unitPrice":      "unit_price",
	"stock":          "stock",
	"expirationDate": "expiration_date",
}

// PostgresProductRepository is the PostgreSQL-backed ProductRepository.
type PostgresProductRepository struct {
	db *sqlx.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository.
func NewPostgresProductRepository(db *sqlx.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// Search returns one page of products matching the filters, plus totals.
func (r *PostgresProductRepository) Search(q ProductSearch) (models.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}
	offset := (q.Page - 1) * q.Size

	countQuery := `SELECT COUNT(1) FROM products` + productSearchWhere
	var total int64
	if err := r.db.Get(&total, countQuery, q.Name, q.Category, q.Availability); err != nil {
		return models.ProductPage{}, fmt.Errorf("count products: %w", err)
	}

	listQuery := `SELECT` + productColumns + ` FROM products` + productSearchWhere +
		fmt.Sprintf(` ORDER BY %s, id ASC LIMIT $4 OFFSET $5`, orderClause(q.SortBy, q.Direction))
	var products []models.Product
	if err := r.db.Select(&products, listQuery, q.Name, q.Category, q.Availability, q.Size, offset); err != nil {
		return models.ProductPage{}, fmt.Errorf("select products: %w", err)
	}

	return models.NewProductPage(products, q.Page, q.Size, total), nil
}

// orderClause builds the primary ORDER BY expression from the whitelist.
// Descending sorts put NULL expiration dates first, mirroring how the
// in-memory store reverses its comparator wholesale.
func orderClause(sortBy, direction string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "id"
	}
	if direction == "desc" {
		return col + " DESC NULLS FIRST"
	}
	return col + " ASC NULLS LAST"
}

// GetByID returns a single product by id.
func (r *PostgresProductRepository) GetByID(id int64) (*models.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product, filling the server-assigned fields.
func (r *PostgresProductRepository) Create(p *models.Product) error {
	query := `INSERT INTO products (name, category, unit_price, stock, expiration_date)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id,
                  to_char(creation_date, 'YYYY-MM-DD'),
                  to_char(update_date, 'YYYY-MM-DD')`

	return r.db.QueryRowx(query,
		p.Name,
		p.Category,
		p.UnitPrice,
		p.Stock,
		p.ExpirationDate,
	).Scan(&p.ID, &p.CreationDate, &p.UpdateDate)
}

// Update replaces the mutable fields of an existing product.
func (r *PostgresProductRepository) Update(p *models.Product) error {
	query := `UPDATE products
              SET name = $1, category = $2, unit_price = $3, stock = $4,
                  expiration_date = $5, update_date = CURRENT_DATE
              WHERE id = $6
              RETURNING to_char(creation_date, 'YYYY-MM-DD'),
                  to_char(update_date, 'YYYY-MM-DD')`

	err := r.db.QueryRowx(query,
		p.Name,
		p.Category,
		p.UnitPrice,
		p.Stock,
		p.ExpirationDate,
		p.ID,
	).Scan(&p.CreationDate, &p.UpdateDate)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a product by id and reports whether a row was deleted.
func (r *PostgresProductRepository) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CategoryMetrics aggregates stock units, stock value and the average unit
// price of in-stock units per category, sorted by category name.
func (r *PostgresProductRepository) CategoryMetrics() ([]models.CategoryInventorySummary, error) {
	const query = `
        SELECT
            CASE WHEN category = '' THEN 'NO-CATEGORY' ELSE category END AS category,
            COALESCE(SUM(stock), 0) AS total_units,
            COALESCE(SUM(stock * unit_price), 0) AS total_value,
            CASE WHEN COALESCE(SUM(stock), 0) > 0
                THEN ROUND(SUM(stock * unit_price) / SUM(stock), 2)
                ELSE 0
            END AS avg_price
        FROM products
        GROUP BY 1
        ORDER BY LOWER(CASE WHEN category = '' THEN 'NO-CATEGORY' ELSE category END)`

	var out []models.CategoryInventorySummary
	if err := r.db.Select(&out, query); err != nil {
		return nil, fmt.Errorf("aggregate category metrics: %w", err)
	}
	if out == nil {
		out = []models.CategoryInventorySummary{}
	}
	return out, nil
}
