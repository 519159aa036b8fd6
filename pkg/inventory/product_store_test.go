package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(w http.ResponseWriter, products []Product, page, size int, total int64) {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"content":       products,
		"page":          page,
		"size":          size,
		"totalElements": total,
		"totalPages":    totalPages,
	})
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
		"path":    "/products",
	})
}

func testProduct(id int64, name string) Product {
	return Product{ID: id, Name: name, Category: "Pantry", UnitPrice: 1.5, Stock: 10}
}

func TestFetchListReplacesStateOnSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		writePage(w, []Product{testProduct(1, "Rice"), testProduct(2, "Beans")}, 1, 10, 2)
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	list, err := store.FetchList(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rice", list[0].Name)
	assert.Equal(t, int64(2), store.TotalElements())
	assert.Equal(t, 1, store.TotalPages())
	assert.False(t, store.IsLoading())
	assert.Empty(t, store.ErrorMessage())
}

func TestFetchListLastIssuedWins(t *testing.T) {
	var calls int32
	firstArrived := make(chan struct{})
	release := make(chan struct{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(firstArrived)
			<-release
			writePage(w, []Product{testProduct(1, "Stale")}, 1, 10, 1)
			return
		}
		writePage(w, []Product{testProduct(2, "Fresh")}, 1, 10, 1)
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))

	firstErr := make(chan error, 1)
	go func() {
		_, err := store.FetchList(context.Background())
		firstErr <- err
	}()
	<-firstArrived

	// The second fetch supersedes the first while it is still in flight.
	list, err := store.FetchList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Fresh", list[0].Name)

	err = <-firstErr
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	close(release)

	// The superseded fetch must not have overwritten the fresh result.
	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Fresh", products[0].Name)
	assert.Empty(t, store.ErrorMessage())
	assert.False(t, store.IsLoading())
}

func TestFetchListFailureKeepsStaleProducts(t *testing.T) {
	var fail atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeAPIError(w, http.StatusInternalServerError, "boom")
			return
		}
		writePage(w, []Product{testProduct(1, "Rice")}, 1, 10, 1)
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	_, err := store.FetchList(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	list, err := store.FetchList(context.Background())
	require.Error(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "boom", store.ErrorMessage())
	assert.False(t, store.IsLoading())

	// The previous page stays visible behind the error banner.
	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Rice", products[0].Name)
}

func TestCreateProductRefreshesListAndMetrics(t *testing.T) {
	var listCalls, metricsCalls, createCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/products/metrics":
			atomic.AddInt32(&metricsCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]CategoryInventorySummary{
				{Category: "Pantry", TotalUnitsInStock: 10, TotalStockValue: 15, AverageUnitPriceInStock: 1.5},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/products":
			atomic.AddInt32(&createCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(testProduct(5, "Lentils"))
		case r.Method == http.MethodGet && r.URL.Path == "/products":
			atomic.AddInt32(&listCalls, 1)
			writePage(w, []Product{testProduct(5, "Lentils")}, 1, 10, 1)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	created, err := store.CreateProduct(context.Background(), Product{
		Name: "Lentils", Category: "Pantry", UnitPrice: 1.5, Stock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	// Both refreshes completed before CreateProduct returned.
	assert.Equal(t, int32(1), atomic.LoadInt32(&createCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&metricsCalls))

	require.Len(t, store.Products(), 1)
	require.Len(t, store.Metrics(), 1)
	assert.Equal(t, "Pantry", store.Metrics()[0].Category)
}

func TestCreateProductWriteFailureSkipsRefresh(t *testing.T) {
	var listCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeAPIError(w, http.StatusBadRequest, "unitPrice must be > 0")
			return
		}
		atomic.AddInt32(&listCalls, 1)
		writePage(w, nil, 1, 10, 0)
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	_, err := store.CreateProduct(context.Background(), Product{Name: "Bad", Category: "Pantry"})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "unitPrice must be > 0", apiErr.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&listCalls))
}

func TestDeleteProductRebalancesEmptyPage(t *testing.T) {
	var mu sync.Mutex
	deleted := false

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			mu.Lock()
			deleted = true
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/products/metrics":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]CategoryInventorySummary{})
		default:
			page := r.URL.Query().Get("page")
			mu.Lock()
			gone := deleted
			mu.Unlock()
			if page == "2" && !gone {
				writePage(w, []Product{testProduct(11, "Last one")}, 2, 10, 11)
				return
			}
			if page == "2" && gone {
				writePage(w, nil, 2, 10, 10)
				return
			}
			writePage(w, []Product{testProduct(1, "Rice")}, 1, 10, 10)
		}
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	_, err := store.SetQuery(context.Background(), QueryPatch{Page: Int(2)})
	require.NoError(t, err)
	require.Equal(t, 2, store.Query().Page)

	require.NoError(t, store.DeleteProduct(context.Background(), 11))

	// Page 2 came back empty, so the store stepped back to page 1.
	assert.Equal(t, 1, store.Query().Page)
	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Rice", products[0].Name)
}

func TestDeleteProductOnFirstPageStaysPut(t *testing.T) {
	var listCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/products/metrics":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]CategoryInventorySummary{})
		default:
			atomic.AddInt32(&listCalls, 1)
			writePage(w, nil, 1, 10, 0)
		}
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	require.NoError(t, store.DeleteProduct(context.Background(), 1))

	assert.Equal(t, 1, store.Query().Page)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
}

func TestDeleteProductNotFoundPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "product not found")
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	err := store.DeleteProduct(context.Background(), 99)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestFetchMetricsFailureLeavesStateAlone(t *testing.T) {
	var fail atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeAPIError(w, http.StatusInternalServerError, "metrics exploded")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]CategoryInventorySummary{
			{Category: "Dairy", TotalUnitsInStock: 4},
		})
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	first := store.FetchMetrics(context.Background())
	require.Len(t, first, 1)

	fail.Store(true)
	second := store.FetchMetrics(context.Background())

	// Failures resolve to an empty list without clearing what is shown.
	assert.Empty(t, second)
	assert.Empty(t, store.ErrorMessage())
	require.Len(t, store.Metrics(), 1)
	assert.Equal(t, "Dairy", store.Metrics()[0].Category)
}

func TestFetchListReturnedSliceDoesNotAliasState(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(w, []Product{testProduct(1, "Rice")}, 1, 10, 1)
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	list, err := store.FetchList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	list[0].Name = "Mutated"

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Rice", products[0].Name)
}

func TestSetQueryResetsPageAndFetches(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "milk", r.URL.Query().Get("name"))
		writePage(w, []Product{testProduct(3, "Oat milk")}, 1, 10, 1)
	}))
	defer ts.Close()

	store := newProductStore(NewClient(ts.URL))
	store.mu.Lock()
	store.query.Page = 4
	store.mu.Unlock()

	list, err := store.SetQuery(context.Background(), QueryPatch{Name: String("milk")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, store.Query().Page)
}
