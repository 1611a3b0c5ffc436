package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkgdex-labs/pkgdex/internal/source"
)

// Source is the capability set every registry source variant implements.
// Callers dispatch through this interface rather than concrete source types.
type Source interface {
	ID() string
	IsInstalled() bool
	Install(ctx context.Context) error
	Installer() func(ctx context.Context) error
	PackageSpecs() []*source.Package
	PackageNames() []string
	Package(name string) (*source.Package, bool)
	DisplayLabel() string
}

// Registry holds the configured sources in declaration order. Sources share
// no mutable state, so installs across sources may run concurrently.
type Registry struct {
	sources []Source
	byID    map[string]Source
}

// New builds a Registry over the given sources.
func New(sources ...Source) *Registry {
	r := &Registry{
		sources: sources,
		byID:    make(map[string]Source, len(sources)),
	}
	for _, s := range sources {
		r.byID[s.ID()] = s
	}
	return r
}

// FromSpecs builds a Registry of HTTP-backed sources, each rooted at
// registriesDir/<id>.
func FromSpecs(specs []source.Spec, registriesDir string, opts ...source.Option) *Registry {
	sources := make([]Source, 0, len(specs))
	for _, spec := range specs {
		sources = append(sources, source.NewHTTP(spec, filepath.Join(registriesDir, spec.ID), opts...))
	}
	return New(sources...)
}

// Sources returns all sources in declaration order.
func (r *Registry) Sources() []Source {
	return r.sources
}

// Source looks up one source by id.
func (r *Registry) Source(id string) (Source, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// SyncAll installs the named sources, or every source when ids is empty.
// Installs run concurrently, one goroutine per source; a failing source does
// not stop the others. The returned error joins all per-source failures.
func (r *Registry) SyncAll(ctx context.Context, ids ...string) error {
	targets := r.sources
	if len(ids) > 0 {
		targets = make([]Source, 0, len(ids))
		for _, id := range ids {
			s, ok := r.byID[id]
			if !ok {
				return fmt.Errorf("unknown source %q", id)
			}
			targets = append(targets, s)
		}
	}

	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, s := range targets {
		install := s.Installer()
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if err := install(ctx); err != nil {
				errs[i] = fmt.Errorf("source %s: %w", id, err)
			}
		}(i, s.ID())
	}
	wg.Wait()

	return errors.Join(errs...)
}

// FindPackage returns the first source's match for name, in declaration
// order. Sources later in the configuration never shadow earlier ones.
func (r *Registry) FindPackage(name string) (*source.Package, bool) {
	for _, s := range r.sources {
		if p, ok := s.Package(name); ok {
			return p, true
		}
	}
	return nil, false
}

// AllPackageNames returns the sorted union of package names across sources.
func (r *Registry) AllPackageNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range r.sources {
		for _, name := range s.PackageNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
