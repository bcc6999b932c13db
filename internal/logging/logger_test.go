package logging_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flacsmith/internal/logging"
)

func TestConsoleLoggerWritesToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "console.log")

	opts := logging.Options{
		Format:           "console",
		Level:            "info",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	}

	logger, err := logging.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("library sweep started", logging.Int("items", 42))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO") {
		t.Fatalf("expected INFO label, got %q", line)
	}
	if !strings.Contains(line, "library sweep started") {
		t.Fatalf("expected message in output, got %q", line)
	}
	if !strings.Contains(line, "items=42") {
		t.Fatalf("expected attr rendering, got %q", line)
	}
}

func TestConsoleLoggerHoistsComponent(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "component.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "dispatcher").Info("pool drained")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "dispatcher: pool drained") {
		t.Fatalf("expected component prefix, got %q", content)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "level.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "warn",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "suppressed") {
		t.Fatalf("expected info line suppressed, got %q", content)
	}
	if !strings.Contains(string(content), "kept") {
		t.Fatalf("expected warn line kept, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunAndItemFields(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "context.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-123")
	ctx = logging.WithItem(ctx, "/music/a.flac")
	logging.WithContext(ctx, logger).Info("item verified")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "run_id=run-123") {
		t.Fatalf("expected run_id field, got %q", line)
	}
	if !strings.Contains(line, "item=/music/a.flac") {
		t.Fatalf("expected item field, got %q", line)
	}
}

func TestErrorAttrHandlesNil(t *testing.T) {
	attr := logging.Error(nil)
	if attr.Value.String() != "<nil>" {
		t.Fatalf("expected <nil> marker, got %q", attr.Value.String())
	}
	attr = logging.Error(errors.New("boom"))
	if !strings.Contains(attr.Value.String(), "boom") {
		t.Fatalf("expected wrapped error, got %q", attr.Value.String())
	}
}
