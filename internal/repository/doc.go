// Package repository persists annotation collections.
//
// # Repository Interface
//
// A Repository is bound to one location and always loads or saves the
// whole collection; there are no per-record writes. Open picks the
// implementation from the file extension.
//
// # File Repository
//
// FileRepository stores a single document using the codec package:
// JSON by default (manual.json), YAML for .yaml/.yml.
//
// # SQLite Implementation
//
// The sqlite subpackage keeps the same snapshot in a table, one row per
// address, ordered by a position column.
//
// # Missing Data
//
// Loading from a location that does not exist yet yields an error matching
// fs.ErrNotExist so callers can treat first runs as an empty store.
package repository
