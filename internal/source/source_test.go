package source

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func installedSource(t *testing.T, catalog, version string) *HTTPSource {
	t.Helper()
	root := filepath.Join(t.TempDir(), "core")
	st := NewStore(root)
	if err := st.EnsureRoot(); err != nil {
		t.Fatalf("ensuring root: %v", err)
	}
	info := SnapshotInfo{Version: version, DownloadTimestamp: 1756500000}
	if err := st.WriteSnapshot([]byte(catalog), info); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	return NewHTTP(Spec{ID: "core", Name: "core", URL: "http://unused"}, root)
}

func TestDisplayLabel_Installed(t *testing.T) {
	src := installedSource(t, `[]`, "3.2.0")

	if got := src.DisplayLabel(); got != "core version: 3.2.0" {
		t.Errorf("label = %q, want %q", got, "core version: 3.2.0")
	}
}

func TestDisplayLabel_Uninstalled(t *testing.T) {
	src := NewHTTP(Spec{ID: "core", Name: "core", URL: "http://unused"},
		filepath.Join(t.TempDir(), "core"))

	if got := src.DisplayLabel(); got != "core [uninstalled]" {
		t.Errorf("label = %q, want %q", got, "core [uninstalled]")
	}
}

func TestQueries_LazilyHydrateFromDisk(t *testing.T) {
	src := installedSource(t,
		`[{"name":"foo","version":"1.0.0"},{"name":"bar","version":"2.0.0"}]`, "1")

	names := src.PackageNames()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "bar" || names[1] != "foo" {
		t.Errorf("unexpected names: %v", names)
	}

	specs := src.PackageSpecs()
	if len(specs) != 2 {
		t.Errorf("expected 2 specs, got %d", len(specs))
	}

	pkg, ok := src.Package("foo")
	if !ok || pkg.Version != "1.0.0" {
		t.Errorf("unexpected foo: %+v", pkg)
	}
	if _, ok := src.Package("missing"); ok {
		t.Error("expected lookup miss for unknown package")
	}
}

func TestQueries_UninstalledSourceIsEmpty(t *testing.T) {
	src := NewHTTP(Spec{ID: "core", Name: "core", URL: "http://unused"},
		filepath.Join(t.TempDir(), "core"))

	if names := src.PackageNames(); len(names) != 0 {
		t.Errorf("expected no packages, got %v", names)
	}
}

func TestQueries_CorruptCatalogTreatedAsEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "core")
	st := NewStore(root)
	if err := st.EnsureRoot(); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(st.CatalogPath(), []byte("not json"), 0644)
	os.WriteFile(st.InfoPath(), []byte("{}"), 0644)

	src := NewHTTP(Spec{ID: "core", Name: "core", URL: "http://unused"}, root)
	if names := src.PackageNames(); len(names) != 0 {
		t.Errorf("expected corrupt catalog to read as empty, got %v", names)
	}
}

func TestInstaller_ReturnsBoundOperation(t *testing.T) {
	src := NewHTTP(Spec{ID: "core", Name: "core", URL: "http://unused"},
		filepath.Join(t.TempDir(), "core"))

	if src.Installer() == nil {
		t.Fatal("expected a bound installer")
	}
}

func TestID(t *testing.T) {
	src := NewHTTP(Spec{ID: "extras", Name: "Extras", URL: "http://unused"},
		filepath.Join(t.TempDir(), "extras"))
	if src.ID() != "extras" {
		t.Errorf("ID() = %q, want %q", src.ID(), "extras")
	}
}
