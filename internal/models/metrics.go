package models

// CategoryInventorySummary is a read-only aggregate over the products of one
// category. It is always computed server-side; clients only display it.
type CategoryInventorySummary struct {
	Category                string  `db:"category" json:"category"`
	TotalUnitsInStock       int     `db:"total_units" json:"totalUnitsInStock"`
	TotalStockValue         float64 `db:"total_value" json:"totalStockValue"`
	AverageUnitPriceInStock float64 `db:"avg_price" json:"averageUnitPriceInStock"`
}
