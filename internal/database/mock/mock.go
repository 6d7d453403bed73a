// Package mock provides an in-memory implementation of the database
// repositories for tests and for running the server without PostgreSQL.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/wskoly/virtual-tryon/internal/database"
)

// Repository is an in-memory database.Repository with error injection.
type Repository struct {
	mu         sync.RWMutex
	nextID     int64
	categories []database.Category
	models     []database.Model

	// Error injection
	ListCategoriesError error
	GetCategoryError    error
	CreateCategoryError error
	ListModelsError     error
	GetModelError       error
	CreateModelError    error
	DeleteModelError    error
}

// NewRepository creates an empty in-memory repository
func NewRepository() *Repository {
	return &Repository{nextID: 1}
}

func (r *Repository) nextSequence() int64 {
	id := r.nextID
	r.nextID++
	return id
}

// ListCategories returns all categories
func (r *Repository) ListCategories(ctx context.Context) ([]database.Category, error) {
	if r.ListCategoriesError != nil {
		return nil, r.ListCategoriesError
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]database.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// GetCategoryByName returns the named category, nil if absent
func (r *Repository) GetCategoryByName(ctx context.Context, name string) (*database.Category, error) {
	if r.GetCategoryError != nil {
		return nil, r.GetCategoryError
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

// CreateCategory stores a category and assigns its id
func (r *Repository) CreateCategory(ctx context.Context, c *database.Category) error {
	if r.CreateCategoryError != nil {
		return r.CreateCategoryError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextSequence()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	r.categories = append(r.categories, *c)
	return nil
}

// ListModels returns models joined with categories, honoring the filters
func (r *Repository) ListModels(ctx context.Context, opts database.ListOptions) ([]database.ModelWithCategory, error) {
	if r.ListModelsError != nil {
		return nil, r.ListModelsError
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[int64]database.Category, len(r.categories))
	for _, c := range r.categories {
		byID[c.ID] = c
	}

	var out []database.ModelWithCategory
	for _, m := range r.models {
		category, ok := byID[m.CategoryID]
		if !ok {
			continue
		}
		if opts.Category != "" && category.Name != opts.Category {
			continue
		}
		if opts.ActiveOnly && !m.IsActive {
			continue
		}
		out = append(out, database.ModelWithCategory{
			Model:               m,
			CategoryName:        category.Name,
			CategoryAnchorIndex: category.AnchorIndex,
		})
	}
	return out, nil
}

// GetModelByUUID returns the model with the given uuid, nil if absent
func (r *Repository) GetModelByUUID(ctx context.Context, uuid string) (*database.Model, error) {
	if r.GetModelError != nil {
		return nil, r.GetModelError
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.models {
		if m.UUID == uuid {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

// CreateModel stores a model and assigns its id
func (r *Repository) CreateModel(ctx context.Context, m *database.Model) error {
	if r.CreateModelError != nil {
		return r.CreateModelError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextSequence()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.models = append(r.models, *m)
	return nil
}

// DeleteModel removes the model with the given uuid
func (r *Repository) DeleteModel(ctx context.Context, uuid string) error {
	if r.DeleteModelError != nil {
		return r.DeleteModelError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.models {
		if m.UUID == uuid {
			r.models = append(r.models[:i], r.models[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}
