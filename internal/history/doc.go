// Package history keeps the last successfully observed stock status.
//
// It is a single-slot store: every Save replaces the previous record and
// nothing older is retained.
//
// Backends:
//   - "file": indented JSON object (default)
//   - "sqlite": one row in a SQLite database (pure Go driver)
package history
