// Package batch drains a static work list through a bounded pool of
// workers, applying an opaque per-item operation and feeding each outcome to
// the shared progress counter, the terminal failure channel, and the resume
// cache.
//
// The engine never inspects what an operation does. Operations run outside
// every lock and may block on arbitrarily slow I/O without affecting other
// workers; only the counter increment and journal appends suspend. Item
// failures never abort the batch.
package batch
