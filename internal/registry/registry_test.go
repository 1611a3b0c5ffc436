package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/pkgdex-labs/pkgdex/internal/source"
)

// fakeSource is an in-memory Source for aggregation tests.
type fakeSource struct {
	id         string
	installed  bool
	packages   map[string]*source.Package
	installErr error
	installs   int
}

func (f *fakeSource) ID() string        { return f.id }
func (f *fakeSource) IsInstalled() bool { return f.installed }

func (f *fakeSource) Install(ctx context.Context) error {
	f.installs++
	return f.installErr
}

func (f *fakeSource) Installer() func(ctx context.Context) error {
	return f.Install
}

func (f *fakeSource) PackageSpecs() []*source.Package {
	var specs []*source.Package
	for _, p := range f.packages {
		specs = append(specs, p)
	}
	return specs
}

func (f *fakeSource) PackageNames() []string {
	var names []string
	for name := range f.packages {
		names = append(names, name)
	}
	return names
}

func (f *fakeSource) Package(name string) (*source.Package, bool) {
	p, ok := f.packages[name]
	return p, ok
}

func (f *fakeSource) DisplayLabel() string { return f.id }

func TestSyncAll_InstallsEverySource(t *testing.T) {
	a := &fakeSource{id: "a"}
	b := &fakeSource{id: "b"}
	r := New(a, b)

	if err := r.SyncAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.installs != 1 || b.installs != 1 {
		t.Errorf("installs = %d/%d, want 1/1", a.installs, b.installs)
	}
}

func TestSyncAll_FailureDoesNotStopOtherSources(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeSource{id: "a", installErr: boom}
	b := &fakeSource{id: "b"}
	r := New(a, b)

	err := r.SyncAll(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
	if b.installs != 1 {
		t.Errorf("healthy source not synced: installs = %d", b.installs)
	}
}

func TestSyncAll_NamedSubset(t *testing.T) {
	a := &fakeSource{id: "a"}
	b := &fakeSource{id: "b"}
	r := New(a, b)

	if err := r.SyncAll(context.Background(), "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.installs != 0 || b.installs != 1 {
		t.Errorf("installs = %d/%d, want 0/1", a.installs, b.installs)
	}
}

func TestSyncAll_UnknownID(t *testing.T) {
	r := New(&fakeSource{id: "a"})
	if err := r.SyncAll(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown source id")
	}
}

func TestFindPackage_FirstSourceWins(t *testing.T) {
	a := &fakeSource{id: "a", packages: map[string]*source.Package{
		"foo": {Name: "foo", Version: "1.0.0", SourceID: "a"},
	}}
	b := &fakeSource{id: "b", packages: map[string]*source.Package{
		"foo": {Name: "foo", Version: "9.9.9", SourceID: "b"},
		"bar": {Name: "bar", Version: "0.1.0", SourceID: "b"},
	}}
	r := New(a, b)

	p, ok := r.FindPackage("foo")
	if !ok || p.SourceID != "a" {
		t.Errorf("expected first-declared source to win, got %+v", p)
	}

	p, ok = r.FindPackage("bar")
	if !ok || p.SourceID != "b" {
		t.Errorf("expected fallthrough to later source, got %+v", p)
	}

	if _, ok := r.FindPackage("missing"); ok {
		t.Error("expected miss for unknown package")
	}
}

func TestAllPackageNames_SortedUnion(t *testing.T) {
	a := &fakeSource{id: "a", packages: map[string]*source.Package{
		"foo": {Name: "foo"}, "bar": {Name: "bar"},
	}}
	b := &fakeSource{id: "b", packages: map[string]*source.Package{
		"foo": {Name: "foo"}, "baz": {Name: "baz"},
	}}
	r := New(a, b)

	names := r.AllPackageNames()
	want := []string{"bar", "baz", "foo"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestSource_Lookup(t *testing.T) {
	a := &fakeSource{id: "a"}
	r := New(a)

	if s, ok := r.Source("a"); !ok || s.ID() != "a" {
		t.Error("expected lookup hit for configured source")
	}
	if _, ok := r.Source("z"); ok {
		t.Error("expected lookup miss for unknown source")
	}
}
