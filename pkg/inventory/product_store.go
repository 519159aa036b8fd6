package inventory

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// ProductStore is the single source of truth for the current catalogue page,
// the active query and the category metrics. All reads go through accessors;
// all mutations re-fetch from the server before resolving.
//
// Only one list fetch is authoritative at a time. Every fetch bumps a
// generation counter and cancels its predecessor; a response may only write
// state while its generation is still current. Last-issued wins, never
// last-resolved.
type ProductStore struct {
	client *Client

	mu            sync.Mutex
	query         CatalogueQuery
	products      []Product
	metrics       []CategoryInventorySummary
	totalElements int64
	totalPages    int
	loading       bool
	errMsg        string

	gen    uint64
	cancel context.CancelFunc
}

// newProductStore constructs a ProductStore bound to the given client.
func newProductStore(client *Client) *ProductStore {
	return &ProductStore{
		client: client,
		query:  DefaultQuery(),
	}
}

// Products returns a copy of the current page of products.
func (s *ProductStore) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Metrics returns a copy of the last fetched category metrics.
func (s *ProductStore) Metrics() []CategoryInventorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CategoryInventorySummary, len(s.metrics))
	copy(out, s.metrics)
	return out
}

// Query returns the active catalogue query.
func (s *ProductStore) Query() CatalogueQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// IsLoading reports whether a list fetch is outstanding.
func (s *ProductStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ErrorMessage returns the user-facing error of the last failed list fetch,
// or "" when the last fetch succeeded (or was superseded).
func (s *ProductStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// TotalElements returns the total match count of the active query.
func (s *ProductStore) TotalElements() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalElements
}

// TotalPages returns the page count of the active query.
func (s *ProductStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPages
}

// SetQuery merges a partial query change and re-fetches the list. Changing
// any filter or sort field resets the page to 1 (see CatalogueQuery.Apply).
func (s *ProductStore) SetQuery(ctx context.Context, patch QueryPatch) ([]Product, error) {
	s.mu.Lock()
	s.query = s.query.Apply(patch)
	s.mu.Unlock()
	return s.FetchList(ctx)
}

// FetchList fetches the page described by the current query and replaces
// products and pagination metadata on success.
//
// A fetch superseded by a newer one resolves with context.Canceled and
// leaves all state untouched. Any other failure records the error message
// and clears the loading flag, keeping the stale products visible.
func (s *ProductStore) FetchList(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	q := s.query
	s.mu.Unlock()
	defer cancel()

	page, err := s.client.SearchProducts(fetchCtx, q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// A newer fetch owns the state now; this result is void.
		return nil, context.Canceled
	}
	if err != nil {
		if IsCanceled(err) {
			// Caller-initiated cancel, not a supersede: nobody else owns
			// the loading flag, so clear it here.
			s.loading = false
			return nil, err
		}
		s.errMsg = errorMessage(err)
		s.loading = false
		return []Product{}, err
	}

	// Keep a private copy so callers mutating the returned slice cannot
	// reach into store state.
	s.products = make([]Product, len(page.Content))
	copy(s.products, page.Content)
	s.totalElements = page.TotalElements
	s.totalPages = page.TotalPages
	s.loading = false
	s.errMsg = ""
	return page.Content, nil
}

// FetchMetrics fetches the category metrics. Metrics are best-effort:
// failures are logged and yield an empty list without touching the
// user-facing error state.
func (s *ProductStore) FetchMetrics(ctx context.Context) []CategoryInventorySummary {
	metrics, err := s.client.ProductMetrics(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch category metrics")
		return []CategoryInventorySummary{}
	}

	s.mu.Lock()
	s.metrics = metrics
	s.mu.Unlock()
	return metrics
}

// CreateProduct posts a new product, then refreshes the list and the
// metrics in parallel before returning. Write failures propagate; refresh
// failures follow their own rules and never undo the write.
func (s *ProductStore) CreateProduct(ctx context.Context, p Product) (Product, error) {
	created, err := s.client.CreateProduct(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.refreshAfterMutation(ctx)
	return created, nil
}

// UpdateProduct replaces a product, then refreshes list and metrics in
// parallel before returning. Same contract as CreateProduct.
func (s *ProductStore) UpdateProduct(ctx context.Context, id int64, p Product) (Product, error) {
	updated, err := s.client.UpdateProduct(ctx, id, p)
	if err != nil {
		return Product{}, err
	}
	s.refreshAfterMutation(ctx)
	return updated, nil
}

// DeleteProduct removes a product and refreshes the list. Deleting the last
// item of a page > 1 leaves the query pointing at an empty page, so the page
// is stepped back by one and fetched again. Metrics refresh afterwards.
func (s *ProductStore) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		return err
	}

	list, err := s.FetchList(ctx)
	if err == nil && len(list) == 0 {
		s.mu.Lock()
		rebalance := s.query.Page > 1
		if rebalance {
			s.query.Page--
		}
		s.mu.Unlock()
		if rebalance {
			_, _ = s.FetchList(ctx)
		}
	}

	s.FetchMetrics(ctx)
	return nil
}

// refreshAfterMutation re-runs the list and metrics fetches concurrently
// and waits for both.
func (s *ProductStore) refreshAfterMutation(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = s.FetchList(ctx)
	}()
	go func() {
		defer wg.Done()
		s.FetchMetrics(ctx)
	}()
	wg.Wait()
}

// errorMessage extracts the user-facing message from a fetch failure.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
