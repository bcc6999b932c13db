// Package checker supplies the canonical per-item operation: verifying an
// audio stream with an external decoder. It is one consumer of the batch
// engine, not part of it; the engine sees only the Operation closure.
//
// Failures are tagged by kind (decode error, timeout, missing file) for the
// failure journal, and the parent directory of every failed item is recorded
// once in the attention channel so follow-up work is grouped by album.
package checker
