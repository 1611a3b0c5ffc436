package source

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pkgdex-labs/pkgdex/internal/fetch"
	"go.uber.org/zap"
)

// HTTPSource is a registry source backed by a remote HTTP endpoint
// publishing info.json and registry.json.zip under a base URL. Queries read
// from a lazily hydrated in-memory index; only Install touches the network.
type HTTPSource struct {
	spec   Spec
	store  *Store
	client *fetch.Client

	// mu guards index and serializes overlapping Install calls on the
	// same source instance.
	mu    sync.Mutex
	index map[string]*Package
}

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithFetchClient sets a custom fetch client (useful for testing).
func WithFetchClient(c *fetch.Client) Option {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// NewHTTP creates a source for spec with its snapshot stored under rootDir.
func NewHTTP(spec Spec, rootDir string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		spec:   spec,
		store:  NewStore(rootDir),
		client: fetch.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the stable source identity used in logs and lookups.
func (s *HTTPSource) ID() string { return s.spec.ID }

// Store exposes the on-disk snapshot for inspection (status reporting).
func (s *HTTPSource) Store() *Store { return s.store }

// IsInstalled reports whether a local snapshot is present.
func (s *HTTPSource) IsInstalled() bool {
	return s.store.IsInstalled()
}

// DisplayLabel renders the human-readable source label, including the
// snapshot version when one is installed.
func (s *HTTPSource) DisplayLabel() string {
	if s.store.IsInstalled() {
		if info, err := s.store.ReadInfo(); err == nil {
			return fmt.Sprintf("%s version: %s", s.spec.Name, info.Version)
		}
	}
	return fmt.Sprintf("%s [uninstalled]", s.spec.Name)
}

// PackageSpecs returns all hydrated packages of this source.
func (s *HTTPSource) PackageSpecs() []*Package {
	idx := s.ensureIndex()
	specs := make([]*Package, 0, len(idx))
	for _, p := range idx {
		specs = append(specs, p)
	}
	return specs
}

// PackageNames returns the names of all hydrated packages.
func (s *HTTPSource) PackageNames() []string {
	idx := s.ensureIndex()
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	return names
}

// Package looks up one package by name.
func (s *HTTPSource) Package(name string) (*Package, bool) {
	p, ok := s.ensureIndex()[name]
	return p, ok
}

// Installer returns the bound install operation, letting a generic caller
// orchestrate installs across sources without knowing this concrete type.
func (s *HTTPSource) Installer() func(context.Context) error {
	return s.Install
}

// ensureIndex returns the hydrated index, building it from the persisted
// catalog on first access. A corrupt catalog is treated as an empty index
// and logged; it is not cached, so a repaired or re-synced catalog is
// picked up by the next query.
func (s *HTTPSource) ensureIndex() map[string]*Package {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index
	}

	raw, err := s.store.ReadCatalog()
	if err != nil {
		if errors.Is(err, ErrParse) {
			zap.S().Warnw("local catalog unreadable, treating as uninstalled",
				"source", s.spec.ID, "error", err)
		} else {
			zap.S().Errorw("reading local catalog", "source", s.spec.ID, "error", err)
		}
		return map[string]*Package{}
	}

	s.index = hydrate(s.spec.ID, s.index, raw)
	return s.index
}

// rebuildIndex rehydrates from raw entries, merging with any prior index.
// Caller must hold mu.
func (s *HTTPSource) rebuildIndex(raw []RawEntry) {
	s.index = hydrate(s.spec.ID, s.index, raw)
}
