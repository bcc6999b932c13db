// Package registry tracks ephemeral run resources and guarantees each is
// released exactly once on every exit path, including interrupt and
// termination signals. Callers pair it with signal.NotifyContext and a
// deferred ReleaseAll; release order is unspecified.
package registry

import (
	"log/slog"
	"sync"

	"flacsmith/internal/logging"
)

// ReleaseFunc frees one resource. Errors are logged, never propagated; a
// failed release must not block the remaining ones.
type ReleaseFunc func() error

type resource struct {
	name    string
	release ReleaseFunc
	once    sync.Once
}

// Registry collects the coordination resources of one run.
type Registry struct {
	mu        sync.Mutex
	resources []*resource
	released  bool
	logger    *slog.Logger
}

// New returns an empty registry.
func New(logger *slog.Logger) *Registry {
	return &Registry{logger: logging.NewComponentLogger(logger, "registry")}
}

// Register adds a named resource. Registration after ReleaseAll releases the
// resource immediately rather than leaking it.
func (r *Registry) Register(name string, release ReleaseFunc) {
	if release == nil {
		return
	}
	res := &resource{name: name, release: release}
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		r.releaseOne(res)
		return
	}
	r.resources = append(r.resources, res)
	r.mu.Unlock()
}

// ReleaseAll releases every registered resource exactly once. Safe to call
// multiple times and from signal handlers; later calls are no-ops for
// already-released resources.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	resources := r.resources
	r.resources = nil
	r.released = true
	r.mu.Unlock()

	for _, res := range resources {
		r.releaseOne(res)
	}
}

func (r *Registry) releaseOne(res *resource) {
	res.once.Do(func() {
		if err := res.release(); err != nil {
			r.logger.Warn("release resource failed",
				logging.String("resource", res.name), logging.Error(err))
		} else {
			r.logger.Debug("released resource", logging.String("resource", res.name))
		}
	})
}
