// Package catalog records the outcome of every document read by a scan in a
// local SQLite database.
//
// A scan opens one run (identified by a UUID) and appends one entry per
// document: the surface kind and scalars for successful reads, the error kind
// and message for failures. The catalog is a convenience index, not a source
// of truth; schema changes bump catalogSchemaVersion and users delete the database
// to adopt them.
//
// Writers hold the sidecar lock returned by AcquireLock so concurrent scans do
// not interleave runs in the same database.
package catalog
