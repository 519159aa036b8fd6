package inventory

import (
	"math"
	"strconv"
	"strings"
)

// apiProduct is the wire shape of a product. Some backends serialize numeric
// fields as strings (including a comma decimal separator), so id, unitPrice
// and stock are decoded leniently.
type apiProduct struct {
	ID             any     `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	UnitPrice      any     `json:"unitPrice"`
	Stock          any     `json:"stock"`
	ExpirationDate *string `json:"expirationDate"`
	CreationDate   *string `json:"creationDate"`
	UpdateDate     *string `json:"updateDate"`
}

// apiProductPage is the wire shape of a search response.
type apiProductPage struct {
	Content       []apiProduct `json:"content"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
}

// productPayload is the outbound product body. ExpirationDate has no
// omitempty on purpose: the server distinguishes "cleared" from "unchanged"
// only if the key is always present, so nil must serialize as null.
type productPayload struct {
	ID             int64   `json:"id,omitempty"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	UnitPrice      float64 `json:"unitPrice"`
	Stock          int     `json:"stock"`
	ExpirationDate *string `json:"expirationDate"`
}

// ToNum coerces a loosely-typed JSON value to a float64. Strings are
// trimmed and may use a comma as decimal separator. Anything non-numeric
// (including NaN, infinities, empty strings and nil) yields def.
func ToNum(v any, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return n
	case float32:
		return ToNum(float64(n), def)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return f
	default:
		return def
	}
}

// mapAPIProduct converts a wire product into the typed domain entity.
// Nothing loosely typed escapes this function.
func mapAPIProduct(p apiProduct) Product {
	var expiration *string
	if p.ExpirationDate != nil && *p.ExpirationDate != "" {
		d := *p.ExpirationDate
		expiration = &d
	}
	return Product{
		ID:             int64(ToNum(p.ID, 0)),
		Name:           p.Name,
		Category:       p.Category,
		UnitPrice:      ToNum(p.UnitPrice, 0),
		Stock:          int(ToNum(p.Stock, 0)),
		ExpirationDate: expiration,
	}
}

// mapAPIProducts converts a wire product list.
func mapAPIProducts(in []apiProduct) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, mapAPIProduct(p))
	}
	return out
}

// mapProductPayload converts a domain product into its outbound wire shape.
func mapProductPayload(p Product) productPayload {
	return productPayload{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		UnitPrice:      p.UnitPrice,
		Stock:          p.Stock,
		ExpirationDate: p.ExpirationDate,
	}
}
