package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// CategoryReader reads stored categories.
type CategoryReader interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
}

// CategoryWriter creates categories (used by seeding).
type CategoryWriter interface {
	CreateCategory(ctx context.Context, c *Category) error
}

// ModelReader reads stored models.
type ModelReader interface {
	ListModels(ctx context.Context, opts ListOptions) ([]ModelWithCategory, error)
	GetModelByUUID(ctx context.Context, uuid string) (*Model, error)
}

// ModelWriter mutates stored models.
type ModelWriter interface {
	CreateModel(ctx context.Context, m *Model) error
	DeleteModel(ctx context.Context, uuid string) error
}

// Repository bundles the full storage surface the web server needs.
type Repository interface {
	CategoryReader
	CategoryWriter
	ModelReader
	ModelWriter
}
