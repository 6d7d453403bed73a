// Package catalog holds the accessory model catalog: descriptor types, a
// typed client for the catalog API, and a store that falls back to a
// built-in set of models when the API is unreachable.
package catalog

import "sort"

// Category names a group of accessories. The set is fixed by the catalog
// service; hats and glasses are the ones shipped by default.
type Category string

const (
	CategoryHats    Category = "hats"
	CategoryGlasses Category = "glasses"
)

// Descriptor is the metadata record for one accessory model. Immutable once
// fetched; transforms are consumed verbatim in engine units/degrees.
type Descriptor struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Filename    string     `json:"filename" yaml:"filename"`
	Thumbnail   string     `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Position    [3]float64 `json:"position" yaml:"position"`
	Rotation    [3]float64 `json:"rotation" yaml:"rotation"`
	Scale       [3]float64 `json:"scale" yaml:"scale"`
	AnchorIndex int        `json:"anchor_index" yaml:"anchor_index"`
}

// AssetPath returns the URL path the binary asset is served from.
func (d Descriptor) AssetPath() string {
	return "/models/" + d.Filename
}

// Catalog maps each category to its ordered list of descriptors.
// Order within a category is the catalog order and carries no meaning.
type Catalog map[Category][]Descriptor

// Categories returns the category names in stable (sorted) order.
func (c Catalog) Categories() []Category {
	cats := make([]Category, 0, len(c))
	for cat := range c {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Find returns the descriptor with the given id in the given category.
func (c Catalog) Find(category Category, id string) (Descriptor, bool) {
	for _, d := range c[category] {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Has reports whether any category contains a descriptor with the given id.
func (c Catalog) Has(id string) bool {
	for _, descriptors := range c {
		for _, d := range descriptors {
			if d.ID == id {
				return true
			}
		}
	}
	return false
}
