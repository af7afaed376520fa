package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"scribe/internal/asr/whisperx"
	"scribe/internal/batch"
	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/preflight"
	"scribe/internal/queue"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Process every recording in the input directory",
		Long: "Run discovers recordings, drives each through transcription, alignment,\n" +
			"diarization, speaker labeling, and artifact generation, then prints a\n" +
			"summary. A recording failure is recorded and the batch continues; the\n" +
			"command only exits non-zero on setup problems. An optional directory\n" +
			"argument overrides the configured input directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				inputDir, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve input directory: %w", err)
				}
				cfg.Paths.InputDir = inputDir
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				OutputPaths: []string{
					"stderr",
					filepath.Join(cfg.Paths.LogDir, "scribe.log"),
				},
			})
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !skipPreflight {
				results := preflight.RunAll(runCtx, cfg)
				if failed := preflight.Failed(results); len(failed) > 0 {
					out := cmd.ErrOrStderr()
					for _, result := range failed {
						fmt.Fprintf(out, "preflight: %s: %s\n", result.Name, result.Detail)
					}
					return fmt.Errorf("%d preflight check(s) failed", len(failed))
				}
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open outcome store: %w", err)
			}
			defer store.Close()

			gateway := whisperx.NewService(whisperx.FromAppConfig(cfg), "")
			pipe := pipeline.New(cfg, store, gateway, nil, logger)
			driver := batch.NewDriver(cfg, store, pipe, logger)

			summary, runErr := driver.Run(runCtx)
			fmt.Fprintln(cmd.OutOrStdout(), summary.String())
			if runErr != nil {
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip readiness checks before processing")
	return cmd
}
