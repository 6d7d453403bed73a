package tryon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/wskoly/virtual-tryon/internal/catalog"
)

// assetBehavior controls how the fake engine answers one asset registration.
type assetBehavior int

const (
	assetOK assetBehavior = iota
	assetErrors
	assetHangs
)

// fakeEngine is an in-memory Engine with call counting and error injection.
type fakeEngine struct {
	mu            sync.Mutex
	registrations map[string]int
	entities      map[string]EntitySpec
	behaviors     map[string]assetBehavior

	registerErr error
	createErr   error
	removeErr   error
	readyErr    error
	readyHangs  bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		registrations: make(map[string]int),
		entities:      make(map[string]EntitySpec),
		behaviors:     make(map[string]assetBehavior),
	}
}

func (e *fakeEngine) RegisterAsset(id, url string) (<-chan AssetEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.registerErr != nil {
		return nil, e.registerErr
	}
	e.registrations[id]++
	ch := make(chan AssetEvent, 1)
	switch e.behaviors[id] {
	case assetErrors:
		ch <- AssetEvent{Type: AssetFailed, Detail: "decode error"}
	case assetHangs:
		// No event; the materializer timeout has to fire.
	default:
		ch <- AssetEvent{Type: AssetLoaded}
	}
	return ch, nil
}

func (e *fakeEngine) CreateEntity(spec EntitySpec) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.createErr != nil {
		return e.createErr
	}
	e.entities[spec.ID] = spec
	return nil
}

func (e *fakeEngine) RemoveEntity(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removeErr != nil {
		return e.removeErr
	}
	// Absent entities are a no-op, matching the engine contract.
	delete(e.entities, id)
	return nil
}

func (e *fakeEngine) AwaitReady(ctx context.Context) error {
	if e.readyHangs {
		<-ctx.Done()
		return ctx.Err()
	}
	return e.readyErr
}

func (e *fakeEngine) hasEntity(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.entities[id]
	return ok
}

func (e *fakeEngine) entityCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entities)
}

func (e *fakeEngine) registered(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registrations[id]
}

// fakePlatform answers the compatibility probe.
type fakePlatform struct {
	insecure   bool
	noCamera   bool
	noGraphics bool
	cameraErr  error

	probeOpened int
	probeClosed int
}

func (p *fakePlatform) SecureContext() bool      { return !p.insecure }
func (p *fakePlatform) HasCameraSupport() bool   { return !p.noCamera }
func (p *fakePlatform) HasGraphicsSupport() bool { return !p.noGraphics }

type fakeStream struct{ platform *fakePlatform }

func (s *fakeStream) Close() error {
	s.platform.probeClosed++
	return nil
}

func (p *fakePlatform) OpenCameraProbe(ctx context.Context) (io.Closer, error) {
	if p.cameraErr != nil {
		return nil, p.cameraErr
	}
	p.probeOpened++
	return &fakeStream{platform: p}, nil
}

// recordingNotifier captures phases and toasts for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	phases []string
	toasts []string
}

func (n *recordingNotifier) Phase(p Phase, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.phases = append(n.phases, fmt.Sprintf("%s: %s", p, message))
}

func (n *recordingNotifier) Toastf(level ToastLevel, format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, fmt.Sprintf("%s: ", level)+fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) lastPhase() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.phases) == 0 {
		return ""
	}
	return n.phases[len(n.phases)-1]
}

// fakeView records indicator state per card.
type fakeView struct {
	mu       sync.Mutex
	catalogs int
	selected map[string]bool
}

func newFakeView() *fakeView {
	return &fakeView{selected: make(map[string]bool)}
}

func (v *fakeView) ShowCatalog(c catalog.Catalog) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.catalogs++
}

func (v *fakeView) SetSelected(category catalog.Category, id string, selected bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected[string(category)+"/"+id] = selected
}

func (v *fakeView) isSelected(category catalog.Category, id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected[string(category)+"/"+id]
}

var errInjected = errors.New("injected failure")
