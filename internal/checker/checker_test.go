package checker_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flacsmith/internal/batch"
	"flacsmith/internal/checker"
	"flacsmith/internal/journal"
	"flacsmith/internal/logging"
	"flacsmith/internal/testsupport"
)

func newVerifier(t *testing.T, script string, timeoutSeconds int) (*checker.Verifier, *journal.Journal, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.Verify.Tool = testsupport.StubBinary(t, "fakeflac", script)
	cfg.Verify.Args = nil
	cfg.Verify.TimeoutSeconds = timeoutSeconds

	j := journal.New(cfg.JournalDir())
	return checker.New(cfg, j, logging.NewNop()), j, cfg.Journal.AttentionChannel
}

func audioFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fLaC"), 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}
	return path
}

func TestCheckSuccess(t *testing.T) {
	v, j, attention := newVerifier(t, "#!/bin/sh\nexit 0\n", 30)
	item := audioFile(t, "good.flac")

	outcome := v.Check(context.Background(), item)
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if n, _ := j.Count(attention); n != 0 {
		t.Fatalf("success must not touch the attention channel, got %d records", n)
	}
}

func TestCheckDecodeFailureCapturesStderrTail(t *testing.T) {
	script := "#!/bin/sh\necho 'noise' >&2\necho 'ERROR: MD5 signature mismatch' >&2\nexit 1\n"
	v, _, _ := newVerifier(t, script, 30)
	item := audioFile(t, "bad.flac")

	outcome := v.Check(context.Background(), item)
	if outcome.Succeeded() {
		t.Fatal("expected failure")
	}
	if outcome.Category != checker.CategoryDecodeError {
		t.Fatalf("unexpected category %q", outcome.Category)
	}
	if !strings.Contains(outcome.Detail, "MD5 signature mismatch") {
		t.Fatalf("expected stderr tail in detail, got %q", outcome.Detail)
	}
}

func TestCheckTimeoutReleasesSlot(t *testing.T) {
	v, _, _ := newVerifier(t, "#!/bin/sh\nsleep 30\n", 1)
	item := audioFile(t, "hung.flac")

	outcome := v.Check(context.Background(), item)
	if outcome.Succeeded() {
		t.Fatal("expected failure")
	}
	if outcome.Category != checker.CategoryTimeout {
		t.Fatalf("unexpected category %q", outcome.Category)
	}
}

func TestCheckMissingFile(t *testing.T) {
	v, _, _ := newVerifier(t, "#!/bin/sh\nexit 0\n", 30)

	outcome := v.Check(context.Background(), filepath.Join(t.TempDir(), "gone.flac"))
	if outcome.Succeeded() {
		t.Fatal("expected failure")
	}
	if outcome.Category != checker.CategoryMissing {
		t.Fatalf("unexpected category %q", outcome.Category)
	}
}

func TestFailuresRecordParentDirectoryOnce(t *testing.T) {
	v, j, attention := newVerifier(t, "#!/bin/sh\nexit 1\n", 30)

	album := t.TempDir()
	for _, name := range []string{"01.flac", "02.flac", "03.flac"} {
		path := filepath.Join(album, name)
		if err := os.WriteFile(path, []byte("fLaC"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if outcome := v.Check(context.Background(), path); outcome.Succeeded() {
			t.Fatal("expected failure")
		}
	}

	records, err := j.Read(attention)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one attention record per directory, got %d", len(records))
	}
	if records[0].Item != album {
		t.Fatalf("expected directory key %q, got %q", album, records[0].Item)
	}
}

func TestPreflightMissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Verify.Tool = "definitely-not-installed-anywhere"

	v := checker.New(cfg, nil, logging.NewNop())
	err := v.Preflight()
	if err == nil {
		t.Fatal("expected preflight error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found classification, got %v", err)
	}
}

func TestOperationDrivesBatchRun(t *testing.T) {
	v, j, _ := newVerifier(t, "#!/bin/sh\ncase \"$1\" in *bad*) exit 1;; *) exit 0;; esac\n", 30)

	dir := t.TempDir()
	items := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		name := "ok"
		if i == 4 {
			name = "bad"
		}
		path := filepath.Join(dir, name+string(rune('0'+i))+".flac")
		if err := os.WriteFile(path, []byte("fLaC"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		items = append(items, path)
	}

	summary, err := batch.Run(context.Background(), items, v.Operation(), batch.Options{
		Concurrency:    4,
		Journal:        j,
		FailureChannel: "failures",
		Logger:         logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Completed != 10 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
