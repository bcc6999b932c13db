package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"flacsmith/internal/journal"
	"flacsmith/internal/logging"
	"flacsmith/internal/progress"
	"flacsmith/internal/resume"
)

// Options configures one pool run.
type Options struct {
	// Concurrency is the number of worker slots. Values below 1 are raised
	// to 1; no unbounded concurrency regardless of input size.
	Concurrency int

	// Journal receives terminal failure records. Optional.
	Journal        *journal.Journal
	FailureChannel string

	// Cache records successfully completed items for later resumption.
	// Optional.
	Cache *resume.Cache

	// ProgressWriter receives one rendered status row per completed item.
	// Nil disables row output.
	ProgressWriter io.Writer
	BarWidth       int

	Logger *slog.Logger
}

// Summary is what the caller reads after the pool drains.
type Summary struct {
	Total     int
	Completed int
	Failed    int
	Elapsed   time.Duration
}

// OK reports whether every dispatched item succeeded. Callers map this to
// the process exit status.
func (s Summary) OK() bool {
	return s.Failed == 0
}

const defaultBarWidth = 30

// Run drains items through a pool of exactly opts.Concurrency workers and
// returns once every dispatched item has been counted. Consumption order is
// unspecified. Cancellation stops dispatching new items; in-flight
// operations finish and are counted, so the final counter always equals the
// number of items actually dispatched.
func Run(ctx context.Context, items []string, op Operation, opts Options) (Summary, error) {
	started := time.Now()
	if op == nil {
		return Summary{}, errors.New("batch: operation is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	barWidth := opts.BarWidth
	if barWidth < 1 {
		barWidth = defaultBarWidth
	}
	logger := logging.NewComponentLogger(opts.Logger, "batch")

	counter := progress.NewCounter(len(items))
	var failed atomic.Int64

	queue := make(chan string)
	go func() {
		defer close(queue)
		for _, item := range items {
			select {
			case queue <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for item := range queue {
				outcome := op(ctx, item)
				outcome.Item = item

				current := counter.Increment()
				if outcome.Succeeded() {
					recordSuccess(logger, opts.Cache, item)
				} else {
					failed.Add(1)
					recordFailure(logger, opts.Journal, opts.FailureChannel, outcome)
				}

				if opts.ProgressWriter != nil {
					label := "OK"
					if !outcome.Succeeded() {
						label = "FAIL"
					}
					row := progress.Row(item, current, counter.Total(), barWidth, label)
					if _, err := fmt.Fprintln(opts.ProgressWriter, row); err != nil {
						logger.Debug("write progress row", logging.Error(err))
					}
				}
			}
		}()
	}
	wg.Wait()

	summary := Summary{
		Total:     counter.Total(),
		Completed: counter.Read(),
		Failed:    int(failed.Load()),
		Elapsed:   time.Since(started),
	}
	logger.Info("pool drained",
		logging.Int("total", summary.Total),
		logging.Int("completed", summary.Completed),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// recordSuccess appends the item to the resume cache. A failed append only
// costs resumability for this item, so it is logged and the run continues.
func recordSuccess(logger *slog.Logger, cache *resume.Cache, item string) {
	if cache == nil {
		return
	}
	if err := cache.Append(item); err != nil {
		logger.Warn("resume cache append failed",
			logging.String(logging.FieldItem, item), logging.Error(err))
	}
}

// recordFailure routes a failed outcome to the terminal failure channel.
// Append failures are fatal for that single attempt only, never for the
// worker or the pool.
func recordFailure(logger *slog.Logger, j *journal.Journal, channel string, outcome Outcome) {
	if j == nil || channel == "" {
		return
	}
	category := outcome.Category
	if category == "" {
		category = "failure"
	}
	rec := journal.Record{
		Category: category,
		Item:     outcome.Item,
		Detail:   outcome.Detail,
	}
	if err := j.Append(channel, rec); err != nil {
		logger.Error("journal append failed",
			logging.String(logging.FieldChannel, channel),
			logging.String(logging.FieldItem, outcome.Item),
			logging.Error(err))
	}
}
