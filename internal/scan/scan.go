// Package scan enumerates the work-item universe: it walks library roots
// and collects files matching the configured audio extensions. Results are
// absolute, sorted, and deduplicated so resume diffs stay stable between
// runs.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flacsmith/internal/logging"
)

// Library walks every root and returns the matching files. Unreadable
// subtrees are logged and skipped rather than aborting the enumeration; a
// root that does not exist at all is an error, since a sweep over nothing
// usually means a typo in the config.
func Library(roots []string, extensions []string, logger *slog.Logger) ([]string, error) {
	if len(roots) == 0 {
		return nil, errors.New("scan: no library roots configured")
	}
	log := logging.NewComponentLogger(logger, "scan")

	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var items []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scan: library root %q: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("scan: library root %q is not a directory", root)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				log.Warn("skipping unreadable path",
					logging.String("path", path), logging.Error(walkErr))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if _, ok := wanted[ext]; !ok {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				log.Warn("skipping unresolvable path",
					logging.String("path", path), logging.Error(err))
				return nil
			}
			if _, dup := seen[abs]; dup {
				return nil
			}
			seen[abs] = struct{}{}
			items = append(items, abs)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan: walk %q: %w", root, err)
		}
	}

	sort.Strings(items)
	return items, nil
}
