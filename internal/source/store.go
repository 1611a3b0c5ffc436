package source

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	catalogFileName = "registry.json"
	infoFileName    = "info.json"
	archiveFileName = "registry.json.zip"
)

// Store owns the on-disk layout of one registry snapshot: the catalog file
// and its metadata under a per-source root directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory is created lazily by
// EnsureRoot, not here.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the snapshot root directory.
func (s *Store) Root() string { return s.root }

// CatalogPath returns the path of the persisted catalog file.
func (s *Store) CatalogPath() string { return filepath.Join(s.root, catalogFileName) }

// InfoPath returns the path of the persisted metadata file.
func (s *Store) InfoPath() string { return filepath.Join(s.root, infoFileName) }

// ArchivePath returns the path used for the transient downloaded archive.
func (s *Store) ArchivePath() string { return filepath.Join(s.root, archiveFileName) }

// EnsureRoot creates the snapshot root directory if needed.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("%w: creating registry directory %s: %v", ErrIO, s.root, err)
	}
	return nil
}

// IsInstalled reports whether a usable snapshot is present: both the catalog
// and the metadata file must exist. Contents are not validated here;
// corruption surfaces at parse time.
func (s *Store) IsInstalled() bool {
	if _, err := os.Stat(s.CatalogPath()); err != nil {
		return false
	}
	if _, err := os.Stat(s.InfoPath()); err != nil {
		return false
	}
	return true
}

// ReadCatalog parses the persisted catalog into raw entries. Returns nil
// when no snapshot is installed. A present but malformed catalog is a parse
// error, propagated to the caller.
func (s *Store) ReadCatalog() ([]RawEntry, error) {
	if !s.IsInstalled() {
		return nil, nil
	}

	data, err := os.ReadFile(s.CatalogPath())
	if err != nil {
		return nil, fmt.Errorf("%w: reading catalog: %v", ErrIO, err)
	}

	var entries []RawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing catalog: %v", ErrParse, err)
	}
	return entries, nil
}

// ReadInfo parses the persisted snapshot metadata. Callers should check
// IsInstalled first; a missing file reports ErrNotInstalled.
func (s *Store) ReadInfo() (SnapshotInfo, error) {
	data, err := os.ReadFile(s.InfoPath())
	if os.IsNotExist(err) {
		return SnapshotInfo{}, fmt.Errorf("%w: %s", ErrNotInstalled, s.root)
	}
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: reading snapshot info: %v", ErrIO, err)
	}

	var info SnapshotInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: parsing snapshot info: %v", ErrParse, err)
	}
	return info, nil
}

// CatalogChecksum returns the hex-encoded SHA-256 of the persisted catalog
// file, for comparison against the checksums recorded in the snapshot info.
func (s *Store) CatalogChecksum() (string, error) {
	f, err := os.Open(s.CatalogPath())
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, s.root)
	}
	if err != nil {
		return "", fmt.Errorf("%w: opening catalog: %v", ErrIO, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: hashing catalog: %v", ErrIO, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteSnapshot persists catalog bytes and metadata. The catalog is written
// first; the metadata only after the catalog write succeeded, so a failure
// in between leaves the previous metadata in place rather than metadata
// pointing at a catalog that was never written.
func (s *Store) WriteSnapshot(catalog []byte, info SnapshotInfo) error {
	if err := os.WriteFile(s.CatalogPath(), catalog, 0644); err != nil {
		return fmt.Errorf("%w: writing catalog: %v", ErrIO, err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling snapshot info: %v", ErrIO, err)
	}
	if err := os.WriteFile(s.InfoPath(), data, 0644); err != nil {
		return fmt.Errorf("%w: writing snapshot info: %v", ErrIO, err)
	}
	return nil
}
