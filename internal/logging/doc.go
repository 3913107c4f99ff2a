// Package logging assembles the slog loggers used by the faultline CLI and
// the rupture reader.
//
// It owns the console and JSON handlers, level parsing, output fan-out to
// stderr and an optional log file, and per-component level overrides. The
// context helpers tag log lines with the scan run id and the source document
// so parallel reads stay distinguishable. NewNop gives tests and library
// callers a logger that cannot fail.
package logging
