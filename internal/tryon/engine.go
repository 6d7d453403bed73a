// Package tryon implements the accessory try-on session: compatibility
// probing, on-demand asset materialization, exclusive per-category scene
// composition, and the controller that sequences startup and dispatches user
// intent. The rendering and face-tracking engine stays behind the Engine
// interface and is never mutated outside the composer.
package tryon

import (
	"context"

	"github.com/wskoly/virtual-tryon/internal/catalog"
)

// AssetEventType distinguishes the lifecycle signals of a registered asset.
type AssetEventType int

const (
	AssetLoaded AssetEventType = iota
	AssetFailed
)

// AssetEvent is a load/error signal emitted by the engine for one asset.
type AssetEvent struct {
	Type   AssetEventType
	Detail string
}

// EntitySpec describes a scene-graph node anchored to a facial landmark.
type EntitySpec struct {
	ID          string
	AssetID     string
	AnchorIndex int
	Position    [3]float64
	Rotation    [3]float64
	Scale       [3]float64
}

// Engine is the boundary to the rendering and face-tracking engine. The
// engine owns the asset pool and the scene graph; this interface exposes
// only the signals and operations the try-on session needs.
type Engine interface {
	// RegisterAsset adds a binary asset to the engine pool by URL and
	// returns its load event stream. Registering an id twice is allowed.
	RegisterAsset(id, url string) (<-chan AssetEvent, error)

	// CreateEntity creates an entity under the scene root, anchored to the
	// facial landmark named by spec.AnchorIndex.
	CreateEntity(spec EntitySpec) error

	// RemoveEntity detaches and destroys the entity. Removing an entity
	// that does not exist is a no-op, not an error.
	RemoveEntity(id string) error

	// AwaitReady blocks until the engine reports ready (render started, AR
	// session attached, or already loaded), the engine reports a fatal
	// error, or ctx is done.
	AwaitReady(ctx context.Context) error
}

// EntityID returns the scene entity id used for a descriptor.
func EntityID(d catalog.Descriptor) string {
	return "model-" + d.ID
}
