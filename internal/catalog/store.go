package catalog

import (
	_ "embed"
	"context"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Fallback returns the built-in catalog used when the catalog API is
// unreachable. Always non-empty so the try-on session stays usable.
func Fallback() Catalog {
	var raw map[string][]Descriptor
	if err := yaml.Unmarshal(fallbackYAML, &raw); err != nil {
		// Embedded file, so this can only happen on a broken build.
		panic("failed to unmarshal embedded fallback.yaml: " + err.Error())
	}
	c := make(Catalog, len(raw))
	for name, descriptors := range raw {
		c[Category(name)] = descriptors
	}
	return c
}

// Store holds the current grouped catalog. Each Load replaces the contents
// wholesale; a fetch failure is absorbed into the built-in fallback and
// reported through the warn sink, never to the caller.
type Store struct {
	mu      sync.RWMutex
	client  *Client
	warn    func(format string, args ...any)
	catalog Catalog
}

// NewStore creates a catalog store. warn receives non-blocking warnings
// (e.g. fallback notices) and may be nil.
func NewStore(client *Client, warn func(format string, args ...any)) *Store {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Store{client: client, warn: warn}
}

// Load fetches the catalog and replaces the stored contents. On any fetch
// failure the built-in fallback is installed instead, so Load always leaves
// the store with selectable descriptors.
func (s *Store) Load(ctx context.Context) Catalog {
	fetched, err := s.client.FetchModels(ctx)
	if err != nil {
		s.warn("could not load model catalog, using built-in models: %v", err)
		fetched = Fallback()
	}

	s.mu.Lock()
	s.catalog = fetched
	s.mu.Unlock()
	return fetched
}

// Current returns the last loaded catalog, or nil before the first Load.
func (s *Store) Current() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}
