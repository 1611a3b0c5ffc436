package source

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying sync and read failures. Callers inspect them
// with errors.Is; the concrete wrapped error carries the detail.
var (
	ErrIO           = errors.New("filesystem operation failed")
	ErrDownload     = errors.New("download failed")
	ErrUnpack       = errors.New("archive unpack failed")
	ErrParse        = errors.New("malformed registry data")
	ErrNotInstalled = errors.New("registry snapshot not installed")
)

// Download stages distinguish which remote resource failed.
const (
	StageMetadata = "metadata"
	StageArchive  = "archive"
)

// DownloadError tags a fetch failure with the stage it occurred in.
type DownloadError struct {
	Stage string
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.Stage, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Is reports a match for the ErrDownload sentinel so callers need not know
// the concrete type.
func (e *DownloadError) Is(target error) bool { return target == ErrDownload }
