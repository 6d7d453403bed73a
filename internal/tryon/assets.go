package tryon

import (
	"context"
	"sync"
	"time"

	"github.com/wskoly/virtual-tryon/internal/catalog"
)

// assetEntry is one slot in the materializer registry: either an in-flight
// registration (done still open) or a completed one.
type assetEntry struct {
	done chan struct{}
	err  error
}

// Materializer ensures each accessory's binary asset is registered with the
// engine pool exactly once. Concurrent Ensure calls for the same descriptor
// id join the same in-flight registration instead of racing.
type Materializer struct {
	engine  Engine
	timeout time.Duration

	mu      sync.Mutex
	entries map[string]*assetEntry
}

func NewMaterializer(engine Engine, timeout time.Duration) *Materializer {
	return &Materializer{
		engine:  engine,
		timeout: timeout,
		entries: make(map[string]*assetEntry),
	}
}

// Ensure registers the descriptor's asset with the engine pool and waits for
// its load signal, bounded by the configured timeout. Idempotent per
// descriptor id: an already-loaded asset returns immediately without a
// second registration. A failed registration is forgotten so a later user
// action can try again; nothing retries automatically.
func (m *Materializer) Ensure(ctx context.Context, d catalog.Descriptor) error {
	m.mu.Lock()
	if entry, ok := m.entries[d.ID]; ok {
		m.mu.Unlock()
		select {
		case <-entry.done:
			return entry.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	entry := &assetEntry{done: make(chan struct{})}
	m.entries[d.ID] = entry
	m.mu.Unlock()

	err := m.load(ctx, d)
	if err != nil {
		m.mu.Lock()
		delete(m.entries, d.ID)
		m.mu.Unlock()
	}
	entry.err = err
	close(entry.done)
	return err
}

// Loaded reports whether the asset for the given descriptor id has completed
// loading.
func (m *Materializer) Loaded(id string) bool {
	m.mu.Lock()
	entry, ok := m.entries[id]
	m.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-entry.done:
		return entry.err == nil
	default:
		return false
	}
}

func (m *Materializer) load(ctx context.Context, d catalog.Descriptor) error {
	events, err := m.engine.RegisterAsset(d.ID, d.AssetPath())
	if err != nil {
		return &AssetError{AssetID: d.ID, Kind: AssetLoadFailed, Detail: err.Error()}
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-events:
		if !ok {
			return &AssetError{AssetID: d.ID, Kind: AssetLoadFailed, Detail: "event stream closed"}
		}
		if ev.Type == AssetFailed {
			return &AssetError{AssetID: d.ID, Kind: AssetLoadFailed, Detail: ev.Detail}
		}
		return nil
	case <-timer.C:
		return &AssetError{AssetID: d.ID, Kind: AssetTimeout}
	case <-ctx.Done():
		return ctx.Err()
	}
}
