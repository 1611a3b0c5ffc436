// Package fetch provides the HTTP retrieval primitives used by the sync
// engine: fetch a URL into memory, or stream it to a file on disk.
package fetch
