// Package progress tracks and renders batch completion state.
//
// Counter is the single shared completion count for a run; every worker
// funnels through its mutex so post-increment values are unique and
// monotonic. Render and Row are pure formatting helpers producing the
// deterministic bar and fixed-width status line printed per completed item.
package progress
