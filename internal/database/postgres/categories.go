package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wskoly/virtual-tryon/internal/database"
)

// CategoryRepository provides PostgreSQL-backed category storage
type CategoryRepository struct {
	pool *Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(pool *Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// ListCategories returns all categories ordered by name
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]database.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), anchor_index, created_at
		FROM accessory_categories
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []database.Category
	for rows.Next() {
		var c database.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.AnchorIndex, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByName returns the category with the given name, nil if absent
func (r *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*database.Category, error) {
	var c database.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), anchor_index, created_at
		FROM accessory_categories
		WHERE name = $1
	`, name).Scan(&c.ID, &c.Name, &c.Description, &c.AnchorIndex, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return &c, nil
}

// CreateCategory inserts a category and fills in its generated id
func (r *CategoryRepository) CreateCategory(ctx context.Context, c *database.Category) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accessory_categories (name, description, anchor_index)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING id, created_at
	`, c.Name, c.Description, c.AnchorIndex).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category %q: %w", c.Name, err)
	}
	return nil
}
