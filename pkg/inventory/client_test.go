package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRequestDecodesStructuredError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"timestamp": "2026-09-01T10:00:00Z",
			"status":    400,
			"error":     "Bad Request",
			"message":   "stock must be >= 0",
			"path":      "/products",
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.CreateProduct(context.Background(), Product{Name: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad Request", apiErr.Reason)
	assert.Equal(t, "stock must be >= 0", apiErr.Message)
	assert.Equal(t, "/products", apiErr.Path)
	assert.Equal(t, "stock must be >= 0", apiErr.Error())
}

func TestDoRequestHandlesNonJSONErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.ListCategories(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "request failed with status 502", apiErr.Error())
}

func TestDoRequestCanceledContextSurfacesAsCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCategories(w, nil)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(ts.URL)
	_, err := client.ListCategories(ctx)

	require.Error(t, err)
	assert.True(t, IsCanceled(err))
}

func TestListCategoriesNormalizesNilToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	categories, err := client.ListCategories(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
