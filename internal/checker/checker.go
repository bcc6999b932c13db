package checker

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"flacsmith/internal/batch"
	"flacsmith/internal/config"
	"flacsmith/internal/journal"
	"flacsmith/internal/logging"
)

// Categories tagged on failure records.
const (
	CategoryDecodeError = "decode_error"
	CategoryTimeout     = "timeout"
	CategoryMissing     = "missing_file"
	CategoryToolError   = "tool_error"
)

// Verifier runs the configured external decoder against single items.
type Verifier struct {
	tool             string
	args             []string
	timeout          time.Duration
	journal          *journal.Journal
	attentionChannel string
	logger           *slog.Logger
}

// New builds a verifier from configuration. The journal is optional; when
// present, parent directories of failed items are recorded once in the
// attention channel.
func New(cfg *config.Config, j *journal.Journal, logger *slog.Logger) *Verifier {
	return &Verifier{
		tool:             cfg.Verify.Tool,
		args:             append([]string(nil), cfg.Verify.Args...),
		timeout:          time.Duration(cfg.Verify.TimeoutSeconds) * time.Second,
		journal:          j,
		attentionChannel: cfg.Journal.AttentionChannel,
		logger:           logging.NewComponentLogger(logger, "checker"),
	}
}

// Preflight confirms the verifier binary is resolvable before a run starts.
func (v *Verifier) Preflight() error {
	if strings.TrimSpace(v.tool) == "" {
		return Wrap(ErrConfiguration, "preflight", "verify.tool is empty", nil)
	}
	if _, err := exec.LookPath(v.tool); err != nil {
		return Wrap(ErrNotFound, "preflight", "verifier binary "+v.tool, err)
	}
	return nil
}

// Operation adapts the verifier to the engine's per-item contract.
func (v *Verifier) Operation() batch.Operation {
	return v.Check
}

// Check verifies one item. The external process runs outside every engine
// lock and is bounded by the configured per-item timeout so a wedged decoder
// eventually releases its worker slot.
func (v *Verifier) Check(ctx context.Context, item string) batch.Outcome {
	if _, err := os.Stat(item); err != nil {
		category := CategoryToolError
		if errors.Is(err, fs.ErrNotExist) {
			category = CategoryMissing
		}
		return v.failure(item, category, err.Error())
	}

	runCtx := ctx
	if v.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), v.args...), item)
	cmd := exec.CommandContext(runCtx, v.tool, args...)
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return batch.Outcome{Item: item, Status: batch.StatusSuccess}
	}

	// a canceled run kills the child; the item is simply retried next run,
	// so it gets no attention record
	if ctx.Err() != nil {
		return batch.Outcome{
			Item:     item,
			Status:   batch.StatusFailure,
			Category: CategoryToolError,
			Detail:   "interrupted: " + ctx.Err().Error(),
		}
	}
	if runCtx.Err() == context.DeadlineExceeded {
		return v.failure(item, CategoryTimeout, "verifier exceeded "+v.timeout.String())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return v.failure(item, CategoryDecodeError, diagnosticTail(stderr.String()))
	}
	return v.failure(item, CategoryToolError, err.Error())
}

func (v *Verifier) failure(item, category, detail string) batch.Outcome {
	v.recordAttention(item, category)
	return batch.Outcome{
		Item:     item,
		Status:   batch.StatusFailure,
		Category: category,
		Detail:   detail,
	}
}

// recordAttention writes one row per parent directory to the attention
// channel. AppendUnique keeps the check and the write in one critical
// section, so two workers failing in the same album cannot both win.
func (v *Verifier) recordAttention(item, category string) {
	if v.journal == nil || v.attentionChannel == "" {
		return
	}
	dir := filepath.Dir(item)
	rec := journal.Record{
		Category: category,
		Item:     dir,
		Detail:   "first failure: " + filepath.Base(item),
	}
	if _, err := v.journal.AppendUnique(v.attentionChannel, dir, rec); err != nil {
		v.logger.Error("attention append failed",
			logging.String(logging.FieldChannel, v.attentionChannel),
			logging.String(logging.FieldItem, item),
			logging.Error(err))
	}
}

// diagnosticTail collapses decoder stderr to its last informative line.
func diagnosticTail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "verifier reported failure"
}
