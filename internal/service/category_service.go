package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/sparkd/inventory-manager/internal/models"
	"github.com/sparkd/inventory-manager/internal/repository"
)

// Category errors surfaced to the API layer. The duplicate-name message is
// part of the API contract: clients display it verbatim.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameBlank = errors.New("Category name cannot be blank")
	ErrCategoryNameTaken = errors.New("Category selected name already exists")
)

// CategoryService handles category listing and CRUD with case-insensitive
// name uniqueness.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetAllSortedByName returns every category ordered case-insensitively by name.
func (s *CategoryService) GetAllSortedByName() ([]models.Category, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

// GetByID returns a single category.
func (s *CategoryService) GetByID(id int64) (*models.Category, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// Create stores a new category after trimming and uniqueness checks.
func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameBlank
	}

	c := &models.Category{Name: name}
	if err := s.repo.Create(c); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return c, nil
}

// Update renames an existing category, keeping names unique.
func (s *CategoryService) Update(id int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameBlank
	}

	c := &models.Category{ID: id, Name: name}
	if err := s.repo.Update(c); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a category by id. Products referencing it are left alone;
// the catalogue treats category names as plain strings.
func (s *CategoryService) Delete(id int64) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}
