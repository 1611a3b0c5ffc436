// Package source implements one remote-backed registry source: the on-disk
// snapshot store, the fetch-unzip-persist sync engine, the catalog hydrator,
// and the query surface the aggregating registry layer consumes.
package source
