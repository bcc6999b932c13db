// Package history persists one row per sweep in SQLite.
//
// A run row is inserted when the pool starts and completed when it drains;
// rows that never received a finish mark show up as interrupted, which is
// how `flacsmith history` surfaces crashes alongside clean runs. The
// database is informational only; resumption never depends on it, only on
// the resume cache.
//
// Schema changes bump schemaVersion; users clear the database to adopt the
// new schema.
package history
