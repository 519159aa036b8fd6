package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a minimal HTTP client for the inventory manager API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient constructs a new inventory API client with sane defaults.
// baseURL points at the API root, e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		debug:      os.Getenv("ENV") == "development",
	}
}

// SearchProducts fetches one catalogue page for the given query.
func (c *Client) SearchProducts(ctx context.Context, q CatalogueQuery) (ProductPage, error) {
	var page apiProductPage
	if err := c.doRequest(ctx, http.MethodGet, "/products", q.Values(), nil, &page); err != nil {
		return ProductPage{}, err
	}
	return ProductPage{
		Content:       mapAPIProducts(page.Content),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}, nil
}

// ProductMetrics fetches the per-category inventory aggregates.
func (c *Client) ProductMetrics(ctx context.Context) ([]CategoryInventorySummary, error) {
	var metrics []CategoryInventorySummary
	if err := c.doRequest(ctx, http.MethodGet, "/products/metrics", nil, nil, &metrics); err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = []CategoryInventorySummary{}
	}
	return metrics, nil
}

// CreateProduct posts a new product and returns the server's version of it.
func (c *Client) CreateProduct(ctx context.Context, p Product) (Product, error) {
	var created apiProduct
	if err := c.doRequest(ctx, http.MethodPost, "/products", nil, mapProductPayload(p), &created); err != nil {
		return Product{}, err
	}
	return mapAPIProduct(created), nil
}

// UpdateProduct replaces a product's mutable fields.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p Product) (Product, error) {
	var updated apiProduct
	path := "/products/" + strconv.FormatInt(id, 10)
	if err := c.doRequest(ctx, http.MethodPut, path, nil, mapProductPayload(p), &updated); err != nil {
		return Product{}, err
	}
	return mapAPIProduct(updated), nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ListCategories fetches the whole category collection.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.doRequest(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// GetCategory fetches a single category by id.
func (c *Client) GetCategory(ctx context.Context, id int64) (Category, error) {
	var category Category
	path := "/categories/" + strconv.FormatInt(id, 10)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// CreateCategory posts a new category.
func (c *Client) CreateCategory(ctx context.Context, name string) (Category, error) {
	var created Category
	body := map[string]string{"name": name}
	if err := c.doRequest(ctx, http.MethodPost, "/categories", nil, body, &created); err != nil {
		return Category{}, err
	}
	return created, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) (Category, error) {
	var updated Category
	path := "/categories/" + strconv.FormatInt(id, 10)
	body := map[string]string{"name": name}
	if err := c.doRequest(ctx, http.MethodPut, path, nil, body, &updated); err != nil {
		return Category{}, err
	}
	return updated, nil
}

// DeleteCategory removes a category by id.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, "/categories/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// doRequest performs an HTTP call with JSON payloads, decodes error bodies
// into *APIError, and decodes successful responses into result when non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		if c.debug {
			log.Debug().
				Str("method", method).
				Str("endpoint", endpoint).
				RawJSON("request", payload).
				Msg("[INVENTORY] Outgoing request")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep the context error intact so callers can detect cancellation.
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", debugJSON(respBody)).
			Msg("[INVENTORY] Incoming response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if len(respBody) > 0 {
			_ = json.Unmarshal(respBody, apiErr)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// debugJSON keeps debug logging valid when a response body is empty or not JSON.
func debugJSON(b []byte) []byte {
	if json.Valid(b) && len(b) > 0 {
		return b
	}
	return []byte("null")
}
