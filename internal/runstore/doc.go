// Package runstore persists a ledger of synchronization runs in SQLite.
// The ledger is append-only from the pipeline's point of view; it exists so
// `dubsync history` can answer what ran, when, and how it went.
package runstore
