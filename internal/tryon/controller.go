package tryon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wskoly/virtual-tryon/internal/catalog"
	"github.com/wskoly/virtual-tryon/internal/config"
)

// Intent is a discrete user action message consumed by the controller.
type Intent interface {
	isIntent()
}

// SelectRequested asks for the descriptor with the given id in the given
// category to be toggled.
type SelectRequested struct {
	Category catalog.Category
	ID       string
}

// ClearAllRequested asks for every applied accessory to be removed.
type ClearAllRequested struct{}

func (SelectRequested) isIntent()   {}
func (ClearAllRequested) isIntent() {}

// SelectionView reflects the catalog and the per-card selection indicators.
// Indicator updates are two-phase: the controller sets them optimistically
// and reverts them if the underlying scene operation fails.
type SelectionView interface {
	ShowCatalog(c catalog.Catalog)
	SetSelected(category catalog.Category, id string, selected bool)
}

// Controller owns the try-on session: it sequences startup, holds the
// current catalog, and dispatches user intent to the scene composer while
// keeping the view's indicators consistent with actual entity presence.
type Controller struct {
	prober   *Prober
	engine   Engine
	store    *catalog.Store
	composer *Composer
	view     SelectionView
	notifier Notifier

	readyTimeout time.Duration

	mu      sync.Mutex
	catalog catalog.Catalog
	ready   bool
}

func NewController(platform Platform, engine Engine, store *catalog.Store, view SelectionView, notifier Notifier, cfg config.TryonConfig) *Controller {
	assets := NewMaterializer(engine, cfg.AssetTimeout)
	return &Controller{
		prober:       NewProber(platform),
		engine:       engine,
		store:        store,
		composer:     NewComposer(engine, assets),
		view:         view,
		notifier:     notifier,
		readyTimeout: cfg.ReadyTimeout,
	}
}

// Start runs the startup sequence: compatibility probe, catalog load (never
// fatal), catalog render, then a bounded wait for the engine's ready signal.
// Phases are strictly sequential; each resolves before the next begins.
func (c *Controller) Start(ctx context.Context) error {
	c.notifier.Phase(PhaseLoading, "Checking device compatibility")
	if err := c.prober.Probe(ctx); err != nil {
		var inc *IncompatibilityError
		if errors.As(err, &inc) {
			c.notifier.Phase(PhaseError, inc.Message)
		} else {
			c.notifier.Phase(PhaseError, "Compatibility check failed")
		}
		return err
	}

	c.notifier.Phase(PhaseLoading, "Loading accessory catalog")
	models := c.store.Load(ctx)
	c.mu.Lock()
	c.catalog = models
	c.mu.Unlock()
	c.view.ShowCatalog(models)

	c.notifier.Phase(PhaseLoading, "Starting face tracking")
	readyCtx, cancel := context.WithTimeout(ctx, c.readyTimeout)
	defer cancel()
	if err := c.engine.AwaitReady(readyCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrARInitFailed
		}
		c.notifier.Phase(PhaseError, "Face tracking could not be started. Reload to try again.")
		return err
	}

	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	c.notifier.Phase(PhaseActive, "Point the camera at your face and pick an accessory")
	return nil
}

// Ready reports whether startup completed successfully.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Handle consumes one user intent message.
func (c *Controller) Handle(ctx context.Context, intent Intent) error {
	switch msg := intent.(type) {
	case SelectRequested:
		return c.handleSelect(ctx, msg)
	case ClearAllRequested:
		c.handleClearAll(ctx)
		return nil
	default:
		return fmt.Errorf("unknown intent %T", intent)
	}
}

func (c *Controller) handleSelect(ctx context.Context, msg SelectRequested) error {
	c.mu.Lock()
	models := c.catalog
	c.mu.Unlock()

	d, ok := models.Find(msg.Category, msg.ID)
	if !ok {
		c.notifier.Toastf(ToastError, "Unknown model %q", msg.ID)
		return fmt.Errorf("no descriptor %q in category %q", msg.ID, msg.Category)
	}

	// Optimistic indicator update: the card reflects intent immediately.
	prev, hadPrev := c.composer.Applied(msg.Category)
	deselecting := hadPrev && prev.ID == d.ID
	c.view.SetSelected(msg.Category, d.ID, !deselecting)
	if hadPrev && !deselecting {
		c.view.SetSelected(msg.Category, prev.ID, false)
	}

	outcome, err := c.composer.Toggle(ctx, d, msg.Category)
	if err != nil {
		c.revertIndicators(msg.Category, d, prev, hadPrev && !deselecting)
		c.notifier.Toastf(ToastError, "Could not apply %s: %v", d.Name, err)
		return err
	}

	if outcome == OutcomeDeselected {
		c.notifier.Toastf(ToastInfo, "%s removed", d.Name)
	} else {
		c.notifier.Toastf(ToastSuccess, "%s applied", d.Name)
	}
	return nil
}

// revertIndicators puts the cards back in line with actual entity presence
// after a failed toggle. The composer is the single source of truth.
func (c *Controller) revertIndicators(cat catalog.Category, d, prev catalog.Descriptor, hadPrev bool) {
	applied, ok := c.composer.Applied(cat)
	c.view.SetSelected(cat, d.ID, ok && applied.ID == d.ID)
	if hadPrev {
		c.view.SetSelected(cat, prev.ID, ok && applied.ID == prev.ID)
	}
}

func (c *Controller) handleClearAll(ctx context.Context) {
	applied := c.composer.AppliedAll()
	c.composer.ClearAll(ctx)
	for cat, d := range applied {
		c.view.SetSelected(cat, d.ID, false)
	}
	c.notifier.Toastf(ToastInfo, "All accessories removed")
}

// Reload refreshes the catalog. Selections whose descriptor is no longer
// present in the refreshed catalog are cleared so the scene never shows a
// model the catalog no longer offers; surviving selections are untouched.
func (c *Controller) Reload(ctx context.Context) {
	models := c.store.Load(ctx)
	c.mu.Lock()
	c.catalog = models
	c.mu.Unlock()
	c.view.ShowCatalog(models)

	for cat, d := range c.composer.AppliedAll() {
		if _, ok := models.Find(cat, d.ID); ok {
			continue
		}
		if _, err := c.composer.Toggle(ctx, d, cat); err != nil {
			c.notifier.Toastf(ToastWarning, "Could not remove stale %s: %v", d.Name, err)
			continue
		}
		c.view.SetSelected(cat, d.ID, false)
	}
}
