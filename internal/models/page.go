package models

// ProductPage is one page of a filtered product search, together with the
// pagination metadata the client needs to render page controls.
type ProductPage struct {
	Content       []Product `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// NewProductPage builds a ProductPage, deriving totalPages from the total
// element count and page size.
func NewProductPage(content []Product, page, size int, total int64) ProductPage {
	if content == nil {
		content = []Product{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return ProductPage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
