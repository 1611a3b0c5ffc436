// Package cli wires the cobra command surface: sync, list, show, status,
// sources, and version.
package cli
