package source

import (
	"encoding/json"
	"testing"
)

func rawEntries(t *testing.T, jsons ...string) []RawEntry {
	t.Helper()
	entries := make([]RawEntry, len(jsons))
	for i, s := range jsons {
		entries[i] = json.RawMessage(s)
	}
	return entries
}

func TestHydrate_BuildsFreshIndex(t *testing.T) {
	raw := rawEntries(t,
		`{"name":"foo","version":"1.0.0","description":"a tool"}`,
		`{"name":"bar","version":"0.3.2"}`,
	)

	index := hydrate("core", nil, raw)

	if len(index) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(index))
	}
	foo := index["foo"]
	if foo == nil || foo.Version != "1.0.0" || foo.Description != "a tool" {
		t.Errorf("unexpected foo: %+v", foo)
	}
	if foo.SourceID != "core" {
		t.Errorf("expected source id to be set, got %q", foo.SourceID)
	}
}

func TestHydrate_PreservesRuntimeStateAcrossReloads(t *testing.T) {
	prev := map[string]*Package{
		"foo": {Name: "foo", Version: "1.0.0", InstalledVersion: "1.0.0", Pinned: true},
	}
	raw := rawEntries(t, `{"name":"foo","version":"2.0"}`)

	index := hydrate("core", prev, raw)

	foo := index["foo"]
	if foo == nil {
		t.Fatal("expected foo in rebuilt index")
	}
	if foo.Version != "2.0" {
		t.Errorf("version = %q, want %q", foo.Version, "2.0")
	}
	if foo.InstalledVersion != "1.0.0" {
		t.Errorf("installed version lost on reload: %q", foo.InstalledVersion)
	}
	if !foo.Pinned {
		t.Error("pinned flag lost on reload")
	}
}

func TestHydrate_DropsEntriesPreviousIndexNoLongerPublishes(t *testing.T) {
	prev := map[string]*Package{
		"gone": {Name: "gone", Version: "1.0.0"},
	}
	raw := rawEntries(t, `{"name":"foo","version":"1.0.0"}`)

	index := hydrate("core", prev, raw)

	if _, ok := index["gone"]; ok {
		t.Error("expected package absent from catalog to be dropped")
	}
	if len(index) != 1 {
		t.Errorf("expected 1 package, got %d", len(index))
	}
}

func TestHydrate_RejectsUninterpretableEntries(t *testing.T) {
	raw := rawEntries(t,
		`{"name":"good","version":"1.0.0"}`,
		`{"version":"1.0.0"}`,
		`{"name":"","version":"1.0.0"}`,
		`{"name":"bad-version","version":42}`,
		`"not an object"`,
	)

	index := hydrate("core", nil, raw)

	if len(index) != 1 {
		t.Fatalf("expected exactly 1 package, got %d", len(index))
	}
	if _, ok := index["good"]; !ok {
		t.Error("expected the well-formed entry to survive")
	}
}

func TestHydrate_LastEntryWinsPerName(t *testing.T) {
	raw := rawEntries(t,
		`{"name":"foo","version":"1.0.0"}`,
		`{"name":"foo","version":"1.1.0"}`,
	)

	index := hydrate("core", nil, raw)

	if len(index) != 1 {
		t.Fatalf("expected 1 package, got %d", len(index))
	}
	if index["foo"].Version != "1.1.0" {
		t.Errorf("expected later entry to win, got %q", index["foo"].Version)
	}
}
