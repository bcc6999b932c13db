// Package resume lets interrupted sweeps pick up where they stopped.
//
// The durable cache is a newline-delimited append-only list of absolute item
// paths; Filter subtracts it from the work universe with a sorted merge so
// million-item libraries resolve in seconds. A missing or unreadable cache
// fails open to a full re-scan rather than blocking the run.
package resume
