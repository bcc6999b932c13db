package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flacsmith/internal/config"
)

func TestLoadDefaultsWhenNoConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "flacsmith", "state")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Engine.Workers != 4 {
		t.Fatalf("unexpected default workers: %d", cfg.Engine.Workers)
	}
	if cfg.Verify.Tool != "flac" {
		t.Fatalf("unexpected default tool: %q", cfg.Verify.Tool)
	}
	if cfg.Journal.FailureChannel != "failures" {
		t.Fatalf("unexpected failure channel: %q", cfg.Journal.FailureChannel)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfgPath := filepath.Join(tempHome, "flacsmith.toml")
	body := strings.Join([]string{
		"[paths]",
		`library_roots = ["~/music", "~/music", "  "]`,
		`state_dir = "~/state"`,
		"[engine]",
		"workers = 9",
		"[verify]",
		`extensions = ["FLAC", ".ogg", "flac"]`,
	}, "\n")
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if len(cfg.Paths.LibraryRoots) != 1 {
		t.Fatalf("expected duplicate/blank roots collapsed, got %v", cfg.Paths.LibraryRoots)
	}
	if cfg.Paths.LibraryRoots[0] != filepath.Join(tempHome, "music") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.LibraryRoots[0])
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, "state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Engine.Workers != 9 {
		t.Fatalf("unexpected workers: %d", cfg.Engine.Workers)
	}
	want := []string{".flac", ".ogg"}
	if len(cfg.Verify.Extensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Verify.Extensions)
	}
	for i, ext := range want {
		if cfg.Verify.Extensions[i] != ext {
			t.Fatalf("unexpected extension at %d: got %q want %q", i, cfg.Verify.Extensions[i], ext)
		}
	}
}

func TestValidateRejectsMatchingChannels(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.FailureChannel = "report"
	cfg.Journal.AttentionChannel = "report"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for duplicate channel names")
	}
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero workers")
	}
}

func TestVerifyToolEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("FLACSMITH_VERIFY_TOOL", "ffmpeg")

	cfgPath := filepath.Join(tempHome, "flacsmith.toml")
	if err := os.WriteFile(cfgPath, []byte("[verify]\ntool = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Verify.Tool != "ffmpeg" {
		t.Fatalf("expected env fallback, got %q", cfg.Verify.Tool)
	}
}

func TestEnsureDirectoriesCreatesStateAndLogs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q, err=%v", dir, err)
		}
	}
}

func TestSampleConfigMentionsEverySection(t *testing.T) {
	sample := config.SampleConfig()
	for _, section := range []string{"[paths]", "[engine]", "[verify]", "[journal]", "[history]", "[logging]"} {
		if !strings.Contains(sample, section) {
			t.Fatalf("sample config missing section %s", section)
		}
	}
}
