package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeVerify()
	c.normalizeJournal()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	roots := make([]string, 0, len(c.Paths.LibraryRoots))
	seen := make(map[string]struct{}, len(c.Paths.LibraryRoots))
	for _, root := range c.Paths.LibraryRoots {
		trimmed := strings.TrimSpace(root)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("paths.library_roots: %w", err)
		}
		if _, ok := seen[expanded]; ok {
			continue
		}
		seen[expanded] = struct{}{}
		roots = append(roots, expanded)
	}
	c.Paths.LibraryRoots = roots
	return nil
}

func (c *Config) normalizeEngine() {
	if c.Engine.Workers <= 0 {
		c.Engine.Workers = defaultWorkers
	}
	if c.Engine.BarWidth <= 0 {
		c.Engine.BarWidth = defaultBarWidth
	}
}

func (c *Config) normalizeVerify() {
	c.Verify.Tool = strings.TrimSpace(c.Verify.Tool)
	if c.Verify.Tool == "" {
		if value, ok := os.LookupEnv("FLACSMITH_VERIFY_TOOL"); ok {
			c.Verify.Tool = strings.TrimSpace(value)
		}
	}
	if c.Verify.Tool == "" {
		c.Verify.Tool = defaultVerifyTool
	}
	if len(c.Verify.Args) == 0 {
		c.Verify.Args = defaultVerifyArgs()
	}
	if c.Verify.TimeoutSeconds <= 0 {
		c.Verify.TimeoutSeconds = defaultTimeoutSeconds
	}

	exts := make([]string, 0, len(c.Verify.Extensions))
	seen := make(map[string]struct{}, len(c.Verify.Extensions))
	for _, ext := range c.Verify.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultExtensions()
	}
	c.Verify.Extensions = exts
}

func (c *Config) normalizeJournal() {
	c.Journal.FailureChannel = strings.TrimSpace(c.Journal.FailureChannel)
	if c.Journal.FailureChannel == "" {
		c.Journal.FailureChannel = defaultFailureChannel
	}
	c.Journal.AttentionChannel = strings.TrimSpace(c.Journal.AttentionChannel)
	if c.Journal.AttentionChannel == "" {
		c.Journal.AttentionChannel = defaultAttentionChann
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
