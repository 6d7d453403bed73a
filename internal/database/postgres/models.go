package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wskoly/virtual-tryon/internal/database"
)

// ModelRepository provides PostgreSQL-backed accessory model storage
type ModelRepository struct {
	pool *Pool
}

// NewModelRepository creates a new PostgreSQL model repository
func NewModelRepository(pool *Pool) *ModelRepository {
	return &ModelRepository{pool: pool}
}

const modelColumns = `
	m.id, m.uuid, m.name, COALESCE(m.description, ''), m.filename,
	m.original_filename, m.file_size, m.file_type, COALESCE(m.thumbnail_path, ''),
	m.category_id,
	m.position_x, m.position_y, m.position_z,
	m.rotation_x, m.rotation_y, m.rotation_z,
	m.scale_x, m.scale_y, m.scale_z,
	m.anchor_index, m.is_active, m.created_at, m.updated_at`

func scanModel(scan func(...any) error, m *database.Model) error {
	var anchor sql.NullInt64
	var updated sql.NullTime
	err := scan(
		&m.ID, &m.UUID, &m.Name, &m.Description, &m.Filename,
		&m.OriginalFilename, &m.FileSize, &m.FileType, &m.ThumbnailPath,
		&m.CategoryID,
		&m.Position[0], &m.Position[1], &m.Position[2],
		&m.Rotation[0], &m.Rotation[1], &m.Rotation[2],
		&m.Scale[0], &m.Scale[1], &m.Scale[2],
		&anchor, &m.IsActive, &m.CreatedAt, &updated,
	)
	if err != nil {
		return err
	}
	if anchor.Valid {
		v := int(anchor.Int64)
		m.AnchorIndex = &v
	}
	if updated.Valid {
		t := updated.Time
		m.UpdatedAt = &t
	}
	return nil
}

// ListModels returns models joined with their category, optionally filtered
// by category name and active flag, in catalog (insertion) order.
func (r *ModelRepository) ListModels(ctx context.Context, opts database.ListOptions) ([]database.ModelWithCategory, error) {
	query := `
		SELECT ` + modelColumns + `, c.name, c.anchor_index
		FROM accessory_models m
		JOIN accessory_categories c ON c.id = m.category_id
		WHERE ($1 = '' OR c.name = $1)
		  AND (NOT $2 OR m.is_active)
		ORDER BY m.id
	`
	rows, err := r.pool.Query(ctx, query, opts.Category, opts.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var models []database.ModelWithCategory
	for rows.Next() {
		var m database.ModelWithCategory
		err := scanModel(func(dest ...any) error {
			return rows.Scan(append(dest, &m.CategoryName, &m.CategoryAnchorIndex)...)
		}, &m.Model)
		if err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate models: %w", err)
	}
	return models, nil
}

// GetModelByUUID returns the model with the given uuid, nil if absent
func (r *ModelRepository) GetModelByUUID(ctx context.Context, uuid string) (*database.Model, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+modelColumns+`
		FROM accessory_models m
		WHERE m.uuid = $1
	`, uuid)

	var m database.Model
	err := scanModel(row.Scan, &m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get model %q: %w", uuid, err)
	}
	return &m, nil
}

// CreateModel inserts a model and fills in its generated id
func (r *ModelRepository) CreateModel(ctx context.Context, m *database.Model) error {
	var anchor sql.NullInt64
	if m.AnchorIndex != nil {
		anchor = sql.NullInt64{Int64: int64(*m.AnchorIndex), Valid: true}
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accessory_models (
			uuid, name, description, filename, original_filename,
			file_size, file_type, thumbnail_path, category_id,
			position_x, position_y, position_z,
			rotation_x, rotation_y, rotation_z,
			scale_x, scale_y, scale_z,
			anchor_index, is_active
		) VALUES (
			$1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING id, created_at
	`,
		m.UUID, m.Name, m.Description, m.Filename, m.OriginalFilename,
		m.FileSize, m.FileType, m.ThumbnailPath, m.CategoryID,
		m.Position[0], m.Position[1], m.Position[2],
		m.Rotation[0], m.Rotation[1], m.Rotation[2],
		m.Scale[0], m.Scale[1], m.Scale[2],
		anchor, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create model %q: %w", m.Name, err)
	}
	return nil
}

// DeleteModel removes the model with the given uuid
func (r *ModelRepository) DeleteModel(ctx context.Context, uuid string) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM accessory_models WHERE uuid = $1", uuid)
	if err != nil {
		return fmt.Errorf("delete model %q: %w", uuid, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete model %q: %w", uuid, err)
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}
