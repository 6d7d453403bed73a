// Package database defines the storage records and repository interfaces for
// the accessory catalog. The postgres subpackage implements them; the mock
// subpackage provides an in-memory implementation for tests and DB-less runs.
package database

import "time"

// Category is a stored accessory category (hats, glasses, ...). AnchorIndex
// is the default facial landmark for models in this category.
type Category struct {
	ID          int64
	Name        string
	Description string
	AnchorIndex int
	CreatedAt   time.Time
}

// Model is a stored 3D accessory model record.
type Model struct {
	ID               int64
	UUID             string
	Name             string
	Description      string
	Filename         string
	OriginalFilename string
	FileSize         int64
	FileType         string // file extension (.glb or .gltf)
	ThumbnailPath    string // relative to the static mount, empty if none
	CategoryID       int64

	Position [3]float64
	Rotation [3]float64
	Scale    [3]float64
	// AnchorIndex overrides the category default when non-nil.
	AnchorIndex *int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// EffectiveAnchor returns the model's anchor override or the category
// default.
func (m *Model) EffectiveAnchor(category *Category) int {
	if m.AnchorIndex != nil {
		return *m.AnchorIndex
	}
	return category.AnchorIndex
}

// ModelWithCategory joins a model with its category for grouped listings.
type ModelWithCategory struct {
	Model
	CategoryName        string
	CategoryAnchorIndex int
}

// Anchor returns the effective anchor index for the joined row.
func (m *ModelWithCategory) Anchor() int {
	if m.AnchorIndex != nil {
		return *m.AnchorIndex
	}
	return m.CategoryAnchorIndex
}

// ListOptions filters model listings.
type ListOptions struct {
	Category   string // empty = all categories
	ActiveOnly bool
}
