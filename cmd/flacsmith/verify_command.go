package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"flacsmith/internal/batch"
	"flacsmith/internal/checker"
	"flacsmith/internal/history"
	"flacsmith/internal/journal"
	"flacsmith/internal/logging"
	"flacsmith/internal/registry"
	"flacsmith/internal/resume"
	"flacsmith/internal/scan"
)

func newVerifyCommand(cctx *commandContext) *cobra.Command {
	var fresh bool
	var workers int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify every audio stream under the configured library roots",
		Long: "Verify walks the configured library roots, skips items already recorded in the\n" +
			"resume cache, and runs the external verifier over the remainder with a bounded\n" +
			"worker pool. Failures are appended to the failure journal and grouped by\n" +
			"directory in the attention journal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			ctx := logging.WithRunID(cmd.Context(), runID)
			log := logging.WithContext(ctx, logger)

			reg := registry.New(log)
			defer reg.ReleaseAll()

			runLock := flock.New(cfg.RunLockPath())
			ok, err := runLock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !ok {
				return errors.New("another flacsmith run is already in progress")
			}
			reg.Register("run lock", runLock.Unlock)

			jnl := journal.New(cfg.JournalDir())
			cache := resume.NewCache(cfg.ResumeCachePath(), log)
			if fresh {
				if err := cache.Clear(); err != nil {
					return err
				}
				for _, channel := range []string{cfg.Journal.FailureChannel, cfg.Journal.AttentionChannel} {
					if err := jnl.Clear(channel); err != nil {
						return err
					}
				}
				log.Info("cleared resume cache and journals")
			}

			verifier := checker.New(cfg, jnl, log)
			if err := verifier.Preflight(); err != nil {
				return err
			}

			universe, err := scan.Library(cfg.Paths.LibraryRoots, cfg.Verify.Extensions, log)
			if err != nil {
				return err
			}
			items := resume.Filter(universe, cache.Load())
			skipped := len(universe) - len(items)
			log.Info("library enumerated",
				logging.Int("universe", len(universe)),
				logging.Int("remaining", len(items)),
				logging.Int("skipped", skipped))

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				reg.Register("history store", store.Close)
				if err := store.StartRun(ctx, runID, len(items), time.Now()); err != nil {
					log.Warn("record run start failed", logging.Error(err))
					store = nil
				}
			}

			concurrency := cfg.Engine.Workers
			if workers > 0 {
				concurrency = workers
			}

			var progressOut io.Writer
			if isatty.IsTerminal(os.Stdout.Fd()) {
				progressOut = os.Stdout
			}

			summary, runErr := batch.Run(ctx, items, verifier.Operation(), batch.Options{
				Concurrency:    concurrency,
				Journal:        jnl,
				FailureChannel: cfg.Journal.FailureChannel,
				Cache:          cache,
				ProgressWriter: progressOut,
				BarWidth:       cfg.Engine.BarWidth,
				Logger:         log,
			})

			// an interrupted run keeps its open history row, which is how
			// `flacsmith history` marks it as interrupted
			if store != nil && runErr == nil {
				if err := store.FinishRun(ctx, runID, summary.Completed, summary.Failed, time.Now()); err != nil {
					log.Warn("record run finish failed", logging.Error(err))
				}
			}

			printVerifySummary(cmd.OutOrStdout(), summary, skipped)
			if summary.Failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "failure journal: %s\n", jnl.Path(cfg.Journal.FailureChannel))
				fmt.Fprintf(cmd.OutOrStdout(), "attention journal: %s\n", jnl.Path(cfg.Journal.AttentionChannel))
			}

			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d items failed verification", summary.Failed, summary.Completed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Clear the resume cache and journals before verifying")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Override engine.workers for this run")

	return cmd
}

func printVerifySummary(out io.Writer, summary batch.Summary, skipped int) {
	rows := [][]string{
		{"Items", strconv.Itoa(summary.Total)},
		{"Verified", strconv.Itoa(summary.Completed - summary.Failed)},
		{"Failed", strconv.Itoa(summary.Failed)},
		{"Skipped (resume)", strconv.Itoa(skipped)},
		{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
	}
	fmt.Fprintln(out, renderTable([]string{"Summary", ""}, rows, []columnAlignment{alignLeft, alignRight}))
}
