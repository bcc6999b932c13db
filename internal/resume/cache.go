package resume

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"flacsmith/internal/logging"
)

// Cache persists completed item identifiers across runs. Appends are
// serialized by a per-cache mutex; the on-disk form is one absolute path per
// line, append-only, deduplicated only at read time by Filter's set
// semantics.
type Cache struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewCache returns a cache backed by the file at path. The file is created
// lazily on first append.
func NewCache(path string, logger *slog.Logger) *Cache {
	return &Cache{
		path:   path,
		logger: logging.NewComponentLogger(logger, "resume"),
	}
}

// Path returns the backing file location.
func (c *Cache) Path() string {
	return c.path
}

// Load reads the completed set. A missing, unreadable, or partially written
// cache fails open: the run proceeds against the full universe and a warning
// is logged. Blank lines (including a torn final line from an interrupted
// run) are skipped.
func (c *Cache) Load() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Open(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("resume cache unreadable, re-scanning full library",
				logging.String("path", c.path), logging.Error(err))
		}
		return nil
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		c.logger.Warn("resume cache truncated while reading, continuing with partial set",
			logging.String("path", c.path), logging.Error(err))
	}
	return entries
}

// Append durably records one completed item. The write happens inside the
// cache's critical section so concurrent workers never interleave lines.
func (c *Cache) Append(item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("ensure resume cache dir: %w", err)
	}
	file, err := os.OpenFile(c.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open resume cache: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(item + "\n"); err != nil {
		return fmt.Errorf("append resume cache: %w", err)
	}
	return file.Close()
}

// Clear removes the cache so the next run starts fresh.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear resume cache: %w", err)
	}
	return nil
}
