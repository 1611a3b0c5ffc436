// Package archive extracts entries from in-memory zip archives.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// ExtractEntry returns the decompressed contents of the named entry from a
// zip archive held in memory. Entry names match on the path as stored in the
// archive.
func ExtractEntry(data []byte, entryName string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}

	for _, f := range r.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", entryName, err)
		}
		defer rc.Close()

		contents, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("extracting zip entry %s: %w", entryName, err)
		}
		return contents, nil
	}

	return nil, fmt.Errorf("entry %s not found in archive", entryName)
}
