package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkgdex-labs/pkgdex/internal/archive"
	"go.uber.org/zap"
)

const (
	infoResource    = "info.json"
	archiveResource = "registry.json.zip"
	archiveEntry    = "registry.json"
)

// Install synchronizes the local snapshot with the remote registry. It is
// idempotent: when the remote version matches the persisted one, no archive
// is fetched and nothing is written. Every failure is logged with the source
// identity and returned as an error value; committed local state is only
// touched after all fetch and unpack steps succeeded.
//
// Overlapping Install calls on the same source serialize on the source
// mutex. Install performs blocking network and disk I/O and is intended to
// run off the caller's hot path.
func (s *HTTPSource) Install(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := zap.S().With("source", s.spec.ID)

	if err := s.store.EnsureRoot(); err != nil {
		log.Errorw("preparing registry directory", "error", err)
		return err
	}

	remote, err := s.fetchRemoteInfo(ctx)
	if err != nil {
		log.Errorw("fetching registry metadata", "error", err)
		return err
	}

	// Change detection: the persisted version string is the sole authority.
	if s.store.IsInstalled() {
		if info, err := s.store.ReadInfo(); err == nil && info.Version == remote.Version {
			log.Debugw("registry up to date", "version", remote.Version)
			return nil
		}
	}

	archivePath := s.store.ArchivePath()
	if err := s.client.ToFile(ctx, s.spec.URL+"/"+archiveResource, archivePath); err != nil {
		derr := &DownloadError{Stage: StageArchive, Err: err}
		log.Errorw("fetching registry archive", "error", derr)
		return derr
	}

	var catalog []byte
	var unpackErr error
	data, readErr := os.ReadFile(archivePath)
	if readErr == nil {
		catalog, unpackErr = archive.ExtractEntry(data, archiveEntry)
	}
	// The downloaded archive is transient; deletion failures are advisory.
	_ = os.Remove(archivePath)

	if readErr != nil {
		err := fmt.Errorf("%w: reading downloaded archive: %v", ErrIO, readErr)
		log.Errorw("reading registry archive", "error", err)
		return err
	}
	if unpackErr != nil {
		err := fmt.Errorf("%w: %v", ErrUnpack, unpackErr)
		log.Errorw("unpacking registry archive", "error", err)
		return err
	}

	info := SnapshotInfo{
		Checksums:         remote.Checksums,
		Version:           remote.Version,
		DownloadTimestamp: time.Now().Unix(),
	}
	if err := s.store.WriteSnapshot(catalog, info); err != nil {
		log.Errorw("persisting registry snapshot", "error", err)
		return err
	}

	raw, err := s.store.ReadCatalog()
	if err != nil {
		log.Errorw("reading persisted catalog", "error", err)
		return err
	}
	s.rebuildIndex(raw)

	log.Infow("registry synchronized", "version", remote.Version, "packages", len(s.index))
	return nil
}

// fetchRemoteInfo retrieves and parses the remote info.json. Fetch and parse
// failures are both metadata-stage download errors.
func (s *HTTPSource) fetchRemoteInfo(ctx context.Context) (remoteInfo, error) {
	body, err := s.client.Bytes(ctx, s.spec.URL+"/"+infoResource)
	if err != nil {
		return remoteInfo{}, &DownloadError{Stage: StageMetadata, Err: err}
	}

	var remote remoteInfo
	if err := json.Unmarshal(body, &remote); err != nil {
		return remoteInfo{}, &DownloadError{Stage: StageMetadata, Err: fmt.Errorf("parsing info.json: %w", err)}
	}
	return remote, nil
}

// RemoteVersion fetches the currently published remote version without
// touching the local snapshot. Used for status reporting.
func (s *HTTPSource) RemoteVersion(ctx context.Context) (string, error) {
	remote, err := s.fetchRemoteInfo(ctx)
	if err != nil {
		return "", err
	}
	return remote.Version, nil
}
