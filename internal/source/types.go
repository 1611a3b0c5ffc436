package source

import "encoding/json"

// Spec is the immutable configuration of one registry source.
type Spec struct {
	ID   string
	Name string
	URL  string
}

// SnapshotInfo is the metadata persisted next to the catalog file. The
// version string is remote-assigned and opaque; it is the sole authority for
// change detection.
type SnapshotInfo struct {
	Checksums         map[string]string `json:"checksums"`
	Version           string            `json:"version"`
	DownloadTimestamp int64             `json:"download_timestamp"`
}

// remoteInfo is the payload of the remote info.json resource.
type remoteInfo struct {
	Checksums map[string]string `json:"checksums"`
	Version   string            `json:"version"`
}

// RawEntry is one undecoded record from the persisted catalog. Decoding is
// deferred to hydration so a malformed or unrecognized entry can be dropped
// without aborting the catalog parse.
type RawEntry = json.RawMessage

// entryFields is the set of catalog record fields this engine understands.
type entryFields struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description,omitempty"`
	Homepage    string          `json:"homepage,omitempty"`
	Licenses    []string        `json:"licenses,omitempty"`
	Source      json.RawMessage `json:"source,omitempty"`
}

// Package is the hydrated in-memory representation of one catalog entry.
// Name is the unique key within a source. The remote-published fields are
// replaced wholesale on every hydration; the runtime fields are attached
// locally and survive reloads.
type Package struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description,omitempty"`
	Homepage    string          `json:"homepage,omitempty"`
	Licenses    []string        `json:"licenses,omitempty"`
	Source      json.RawMessage `json:"source,omitempty"`
	SourceID    string          `json:"source_id"`

	// Runtime-only state, never published by the remote.
	InstalledVersion string `json:"installed_version,omitempty"`
	Pinned           bool   `json:"pinned,omitempty"`
}

// applyRemote overwrites the remote-published fields from a decoded entry,
// leaving runtime state untouched.
func (p *Package) applyRemote(e entryFields, sourceID string) {
	p.Name = e.Name
	p.Version = e.Version
	p.Description = e.Description
	p.Homepage = e.Homepage
	p.Licenses = e.Licenses
	p.Source = e.Source
	p.SourceID = sourceID
}
