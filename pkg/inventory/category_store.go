package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// categoriesLoadFailed is the fixed user-facing message for category load
// failures that carry no structured server message.
const categoriesLoadFailed = "failed to load categories"

// CategoryStore holds the full category collection, kept alphabetically
// sorted with Spanish collation (case and accent insensitive). Mutations go
// to the server first and then patch the local collection in place instead
// of re-fetching it.
type CategoryStore struct {
	client   *Client
	collator *collate.Collator

	mu         sync.Mutex
	categories []Category
	loading    bool
	errMsg     string

	gen    uint64
	cancel context.CancelFunc
}

// newCategoryStore constructs a CategoryStore bound to the given client.
func newCategoryStore(client *Client) *CategoryStore {
	return &CategoryStore{
		client:   client,
		collator: collate.New(language.Spanish, collate.Loose),
	}
}

// Categories returns a copy of the sorted category collection.
func (s *CategoryStore) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// IsLoading reports whether a reload is outstanding.
func (s *CategoryStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ErrorMessage returns the user-facing error of the last failed reload,
// or "" when the last reload succeeded (or was superseded).
func (s *CategoryStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Reload fetches the whole category collection and replaces the local copy,
// sorted. Like product list fetches, only the latest reload may write state:
// a superseded reload resolves with context.Canceled and changes nothing.
//
// A failed reload keeps whatever categories were already loaded. Structured
// server errors surface their own message; anything else collapses to a
// fixed load-failure message.
func (s *CategoryStore) Reload(ctx context.Context) error {
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
	s.mu.Unlock()
	defer cancel()

	categories, err := s.client.ListCategories(fetchCtx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return context.Canceled
	}
	if err != nil {
		if IsCanceled(err) {
			s.loading = false
			return err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			s.errMsg = apiErr.Message
		} else {
			s.errMsg = categoriesLoadFailed
		}
		s.loading = false
		return err
	}

	s.sortCategories(categories)
	s.categories = categories
	s.loading = false
	s.errMsg = ""
	return nil
}

// AddCategory creates a category on the server and inserts it locally,
// keeping the collection sorted.
func (s *CategoryStore) AddCategory(ctx context.Context, name string) (Category, error) {
	created, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		return Category{}, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.sortCategories(s.categories)
	s.mu.Unlock()
	return created, nil
}

// UpdateCategory renames a category on the server and patches the local
// entry, re-sorting since the name is the sort key.
func (s *CategoryStore) UpdateCategory(ctx context.Context, id int64, name string) (Category, error) {
	updated, err := s.client.UpdateCategory(ctx, id, name)
	if err != nil {
		return Category{}, err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == updated.ID {
			s.categories[i] = updated
			break
		}
	}
	s.sortCategories(s.categories)
	s.mu.Unlock()
	return updated, nil
}

// RemoveCategory deletes a category on the server and drops the local entry.
func (s *CategoryStore) RemoveCategory(ctx context.Context, id int64) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.mu.Unlock()
	return nil
}

// sortCategories orders the slice by name using the store's collator.
func (s *CategoryStore) sortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return s.collator.CompareString(categories[i].Name, categories[j].Name) < 0
	})
}
