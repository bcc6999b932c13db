// Package journal provides named, durable, append-only report channels.
//
// Each channel is a newline-delimited file of "timestamp | category | item |
// detail" records guarded by its own mutex, so many workers can append to
// the same channel without interleaved or partial lines while writers to
// different channels never block each other. Channels are created lazily on
// first append and persist until explicitly cleared.
//
// Semantic deduplication is the caller's concern; AppendUnique runs the
// membership check and the append inside one critical section so two workers
// cannot both write the first occurrence of a key.
package journal
