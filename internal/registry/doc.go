// Package registry aggregates the configured registry sources behind one
// interface, fanning synchronization out across sources and answering
// package queries in configuration order.
package registry
