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

func writeCategories(w http.ResponseWriter, categories []Category) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(categories)
}

func categoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func TestReloadSortsCaseInsensitively(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories", r.URL.Path)
		writeCategories(w, []Category{
			{ID: 1, Name: "pan"},
			{ID: 2, Name: "Agua"},
			{ID: 3, Name: "refrescos"},
		})
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, []string{"Agua", "pan", "refrescos"}, categoryNames(store.Categories()))
	assert.False(t, store.IsLoading())
	assert.Empty(t, store.ErrorMessage())
}

func TestReloadSortIgnoresAccents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCategories(w, []Category{
			{ID: 1, Name: "azúcar"},
			{ID: 2, Name: "Aceites"},
			{ID: 3, Name: "arroz"},
		})
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, []string{"Aceites", "arroz", "azúcar"}, categoryNames(store.Categories()))
}

func TestReloadFailureUsesFixedMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	err := store.Reload(context.Background())

	require.Error(t, err)
	assert.Equal(t, "failed to load categories", store.ErrorMessage())
	assert.Empty(t, store.Categories())
	assert.False(t, store.IsLoading())
}

func TestReloadFailureKeepsStructuredMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  503,
			"error":   "Service Unavailable",
			"message": "database unavailable",
			"path":    "/categories",
		})
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	err := store.Reload(context.Background())

	require.Error(t, err)
	assert.Equal(t, "database unavailable", store.ErrorMessage())
}

func TestReloadCanceledChangesNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCategories(w, []Category{{ID: 1, Name: "Agua"}})
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.Reload(ctx)

	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	// Cancellation is routine: no error message, collection untouched.
	assert.Empty(t, store.ErrorMessage())
	assert.False(t, store.IsLoading())
	assert.Equal(t, []string{"Agua"}, categoryNames(store.Categories()))
}

func TestAddCategoryInsertsSorted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeCategories(w, []Category{{ID: 1, Name: "Agua"}, {ID: 2, Name: "pan"}})
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Category{ID: 3, Name: "Bebidas"})
		}
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	created, err := store.AddCategory(context.Background(), "Bebidas")
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, []string{"Agua", "Bebidas", "pan"}, categoryNames(store.Categories()))
}

func TestAddCategoryConflictLeavesCollection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeCategories(w, []Category{{ID: 1, Name: "Agua"}})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  409,
			"error":   "Conflict",
			"message": "Category selected name already exists",
			"path":    "/categories",
		})
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	_, err := store.AddCategory(context.Background(), "agua")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Category selected name already exists", apiErr.Message)
	assert.Equal(t, []string{"Agua"}, categoryNames(store.Categories()))
}

func TestUpdateCategoryResorts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeCategories(w, []Category{{ID: 1, Name: "Agua"}, {ID: 2, Name: "pan"}})
		case http.MethodPut:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Category{ID: 1, Name: "Zumos"})
		}
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	updated, err := store.UpdateCategory(context.Background(), 1, "Zumos")
	require.NoError(t, err)
	assert.Equal(t, "Zumos", updated.Name)
	assert.Equal(t, []string{"pan", "Zumos"}, categoryNames(store.Categories()))
}

func TestRemoveCategoryDropsEntry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeCategories(w, []Category{{ID: 1, Name: "Agua"}, {ID: 2, Name: "pan"}})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer ts.Close()

	store := newCategoryStore(NewClient(ts.URL))
	require.NoError(t, store.Reload(context.Background()))

	require.NoError(t, store.RemoveCategory(context.Background(), 1))
	assert.Equal(t, []string{"pan"}, categoryNames(store.Categories()))
}
