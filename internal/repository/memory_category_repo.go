package repository

import (
	"strings"
	"sync"

	"github.com/sparkd/inventory-manager/internal/models"
)

// MemoryCategoryRepository is an in-memory CategoryRepository. A secondary
// index on the lowercased name keeps uniqueness checks O(1).
type MemoryCategoryRepository struct {
	mu        sync.RWMutex
	byID      map[int64]models.Category
	nameIndex map[string]int64
	seq       int64
}

// NewMemoryCategoryRepository creates an empty MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		byID:      make(map[int64]models.Category),
		nameIndex: make(map[string]int64),
	}
}

func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GetAll returns every category, unsorted.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

// GetByID returns a single category by id.
func (r *MemoryCategoryRepository) GetByID(id int64) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// FindByName returns the category matching the name case-insensitively.
func (r *MemoryCategoryRepository) FindByName(name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nameIndex[nameKey(name)]
	if !ok {
		return nil, ErrNotFound
	}
	c := r.byID[id]
	return &c, nil
}

// Create stores a new category, assigning its id.
func (r *MemoryCategoryRepository) Create(c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := nameKey(c.Name)
	if _, exists := r.nameIndex[k]; exists {
		return ErrDuplicateName
	}
	r.seq++
	c.ID = r.seq
	r.byID[c.ID] = *c
	r.nameIndex[k] = c.ID
	return nil
}

// Update renames an existing category, keeping the name index consistent.
func (r *MemoryCategoryRepository) Update(c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[c.ID]
	if !ok {
		return ErrNotFound
	}

	oldKey := nameKey(existing.Name)
	newKey := nameKey(c.Name)
	if newKey != oldKey {
		if clash, exists := r.nameIndex[newKey]; exists && clash != c.ID {
			return ErrDuplicateName
		}
		delete(r.nameIndex, oldKey)
		r.nameIndex[newKey] = c.ID
	}
	r.byID[c.ID] = *c
	return nil
}

// Delete removes a category by id and reports whether it existed.
func (r *MemoryCategoryRepository) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.nameIndex, nameKey(c.Name))
	return true, nil
}
