// Package version compares registry version strings for status reporting.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// UpdateAvailable reports whether remote is newer than local. Both versions
// are compared as semver when they parse; registries that publish opaque
// version strings (dates, serials) fall back to plain inequality.
func UpdateAvailable(local, remote string) bool {
	lv, lerr := parse(local)
	rv, rerr := parse(remote)
	if lerr != nil || rerr != nil {
		return local != remote
	}
	return rv.GreaterThan(lv)
}

// parse strips a leading "v" and parses the version string.
func parse(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(v, "v"))
}
