package inventory

// Product is the catalogue entity as seen by the client. A nil
// ExpirationDate means the product does not expire.
type Product struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	UnitPrice      float64 `json:"unitPrice"`
	Stock          int     `json:"stock"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
}

// Category groups products; names are unique case-insensitively.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryInventorySummary is the read-only per-category metrics row.
type CategoryInventorySummary struct {
	Category                string  `json:"category"`
	TotalUnitsInStock       int     `json:"totalUnitsInStock"`
	TotalStockValue         float64 `json:"totalStockValue"`
	AverageUnitPriceInStock float64 `json:"averageUnitPriceInStock"`
}

// ProductPage is one page of search results with pagination metadata.
type ProductPage struct {
	Content       []Product
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}
