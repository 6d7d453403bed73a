package tryon

import (
	"context"
	"log"
	"sync"

	"github.com/wskoly/virtual-tryon/internal/catalog"
)

// Outcome reports which transition a Toggle performed.
type Outcome int

const (
	OutcomeSelected Outcome = iota
	OutcomeDeselected
	OutcomeReplaced
)

// categoryState is the per-category selection state machine: Empty when
// applied is nil, Applied otherwise. Its mutex makes each transition an
// atomic read-modify-write even when toggles overlap across suspension
// points; a second toggle on the same category waits for the first.
type categoryState struct {
	mu      sync.Mutex
	applied *catalog.Descriptor
}

// Composer maps selection intent onto scene entity lifecycle. It exclusively
// owns the set of live entities; at most one descriptor is applied per
// category at any time.
type Composer struct {
	engine Engine
	assets *Materializer

	mu         sync.Mutex
	categories map[catalog.Category]*categoryState
}

func NewComposer(engine Engine, assets *Materializer) *Composer {
	return &Composer{
		engine:     engine,
		assets:     assets,
		categories: make(map[catalog.Category]*categoryState),
	}
}

func (c *Composer) category(cat catalog.Category) *categoryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.categories[cat]
	if !ok {
		st = &categoryState{}
		c.categories[cat] = st
	}
	return st
}

// Toggle applies one user interaction to the category's state machine:
//
//	Empty      --select(d)-->            Applied(d)
//	Applied(d) --select(d)-->            Empty
//	Applied(o) --select(d), d != o-->    Applied(d)
//
// Replacement removes the old entity before materializing the new one, so
// two entities are never live in the same category. If materialization or
// entity creation fails the category is left with no live entity and the
// error is returned for the caller to surface.
func (c *Composer) Toggle(ctx context.Context, d catalog.Descriptor, cat catalog.Category) (Outcome, error) {
	st := c.category(cat)
	st.mu.Lock()
	defer st.mu.Unlock()

	// Same descriptor clicked again: deselect.
	if st.applied != nil && st.applied.ID == d.ID {
		if err := c.removeEntity(*st.applied); err != nil {
			return 0, err
		}
		st.applied = nil
		return OutcomeDeselected, nil
	}

	replaced := false
	if st.applied != nil {
		if err := c.removeEntity(*st.applied); err != nil {
			return 0, err
		}
		st.applied = nil
		replaced = true
	}

	if err := c.assets.Ensure(ctx, d); err != nil {
		return 0, err
	}

	spec := EntitySpec{
		ID:          EntityID(d),
		AssetID:     d.ID,
		AnchorIndex: d.AnchorIndex,
		Position:    d.Position,
		Rotation:    d.Rotation,
		Scale:       d.Scale,
	}
	if err := c.engine.CreateEntity(spec); err != nil {
		return 0, &SceneError{EntityID: spec.ID, Op: "create", Err: err}
	}

	applied := d
	st.applied = &applied
	if replaced {
		return OutcomeReplaced, nil
	}
	return OutcomeSelected, nil
}

func (c *Composer) removeEntity(d catalog.Descriptor) error {
	// Engine removal is a no-op for absent entities, so this is safe to
	// call redundantly.
	if err := c.engine.RemoveEntity(EntityID(d)); err != nil {
		return &SceneError{EntityID: EntityID(d), Op: "remove", Err: err}
	}
	return nil
}

// Applied returns the currently applied descriptor for a category, if any.
func (c *Composer) Applied(cat catalog.Category) (catalog.Descriptor, bool) {
	st := c.category(cat)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.applied == nil {
		return catalog.Descriptor{}, false
	}
	return *st.applied, true
}

// AppliedAll returns a snapshot of every applied selection by category.
func (c *Composer) AppliedAll() map[catalog.Category]catalog.Descriptor {
	c.mu.Lock()
	states := make(map[catalog.Category]*categoryState, len(c.categories))
	for cat, st := range c.categories {
		states[cat] = st
	}
	c.mu.Unlock()

	applied := make(map[catalog.Category]catalog.Descriptor)
	for cat, st := range states {
		st.mu.Lock()
		if st.applied != nil {
			applied[cat] = *st.applied
		}
		st.mu.Unlock()
	}
	return applied
}

// ClearAll transitions every Applied category to Empty. A removal failure in
// one category is logged and does not block the others; the category empties
// regardless since redundant removal is safe.
func (c *Composer) ClearAll(ctx context.Context) {
	c.mu.Lock()
	states := make([]*categoryState, 0, len(c.categories))
	for _, st := range c.categories {
		states = append(states, st)
	}
	c.mu.Unlock()

	for _, st := range states {
		st.mu.Lock()
		if st.applied != nil {
			if err := c.engine.RemoveEntity(EntityID(*st.applied)); err != nil {
				log.Printf("clear: could not remove entity %s: %v", EntityID(*st.applied), err)
			}
			st.applied = nil
		}
		st.mu.Unlock()
	}
}
