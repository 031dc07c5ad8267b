package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mixdown/internal/config"
	"mixdown/internal/export"
	"mixdown/internal/history"
	"mixdown/internal/hwaccel"
	"mixdown/internal/logging"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var preset string
	var noGPU bool

	cmd := &cobra.Command{
		Use:   "export <project> <output>",
		Short: "Render a project to a finished media file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache, err := ctx.ensureDurations()
			if err != nil {
				return err
			}
			exporter, err := ctx.newExporter()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, projectPath, err := loadProject(runCtx, cache, args[0])
			if err != nil {
				return err
			}
			outputPath, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			opts := export.Options{
				OutputPath:  outputPath,
				UseHardware: p.Settings.UseGPU && !noGPU,
				SpeedPreset: p.Settings.SpeedPreset,
			}
			if preset != "" {
				if !hwaccel.ValidPreset(preset) {
					return fmt.Errorf("unknown speed preset %q", preset)
				}
				opts.SpeedPreset = preset
			}

			lock := flock.New(cfg.ExportLockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire export lock: %w", err)
			}
			if !locked {
				return errors.New("another export is already running")
			}
			defer func() { _ = lock.Unlock() }()

			reporter := newProgressReporter(cmd.OutOrStdout())
			result, err := exporter.Export(runCtx, p, opts, reporter.update)
			reporter.finish()
			if err != nil {
				return err
			}

			recordExport(ctx, cfg, projectPath, outputPath, result)

			out := cmd.OutOrStdout()
			switch {
			case result.Cancelled:
				fmt.Fprintln(out, "Export cancelled")
				return nil
			case !result.Success:
				return fmt.Errorf("export failed: %s", result.Error)
			}

			fmt.Fprintf(out, "Exported %s in %s\n", outputPath, result.Elapsed.Round(time.Second))
			fmt.Fprintf(out, "Encoder: %s (hardware: %s)\n", result.Encoder, yesNo(result.HardwareAccelerated))
			if info, statErr := os.Stat(outputPath); statErr == nil {
				fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(uint64(info.Size())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Speed preset (ultrafast, fast, balanced, quality)")
	cmd.Flags().BoolVar(&noGPU, "no-gpu", false, "Force software encoding")
	return cmd
}

// recordExport persists the run to history. Failure to record never fails
// the export itself.
func recordExport(ctx *commandContext, cfg *config.Config, projectPath, outputPath string, result export.Result) {
	record := history.Record{
		SessionID:      uuid.NewString(),
		ProjectPath:    projectPath,
		OutputPath:     outputPath,
		Encoder:        result.Encoder,
		Hardware:       result.HardwareAccelerated,
		Success:        result.Success,
		Cancelled:      result.Cancelled,
		ErrorMessage:   result.Error,
		ElapsedSeconds: result.Elapsed.Seconds(),
	}
	if info, err := os.Stat(outputPath); err == nil {
		record.OutputBytes = info.Size()
	}

	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		ctx.ensureLogger().Warn("history unavailable", logging.Args(logging.Error(err))...)
		return
	}
	defer store.Close()

	if _, err := store.Add(context.Background(), record); err != nil {
		ctx.ensureLogger().Warn("record export", logging.Args(logging.Error(err))...)
	}
}

// progressReporter renders a terminal progress bar when stderr is a TTY and
// falls back to coarse percentage lines otherwise.
type progressReporter struct {
	bar  *progressbar.ProgressBar
	out  io.Writer
	last int
}

func newProgressReporter(out io.Writer) *progressReporter {
	reporter := &progressReporter{out: out, last: -1}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		reporter.bar = progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Exporting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	return reporter
}

func (r *progressReporter) update(percent float64) {
	value := int(percent)
	if value == r.last {
		return
	}
	r.last = value
	if r.bar != nil {
		_ = r.bar.Set(value)
		return
	}
	if value%10 == 0 {
		fmt.Fprintf(r.out, "progress %d%%\n", value)
	}
}

func (r *progressReporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
