package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"flacsmith/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LibraryRoots = []string{filepath.Join(base, "library")}
	if err := os.MkdirAll(cfgVal.Paths.LibraryRoots[0], 0o755); err != nil {
		t.Fatalf("mkdir library root: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWorkers overrides the worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.Workers = workers
	}
}

// WithVerifyTool points the test config at the given verifier command.
func WithVerifyTool(tool string, args ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Verify.Tool = tool
		b.cfg.Verify.Args = args
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
