package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"dubsync/internal/config"
	"dubsync/internal/logging"
	"dubsync/internal/runstore"
	"dubsync/internal/videosync"
)

func newSyncCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		maxSlowdown float64
		minSpeedup  float64
		workers     int
		audioLang   string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "sync <video> <audio> <timing> <output>",
		Short: "Re-time a video to its dubbed audio track",
		Long: `Re-times each subtitle-aligned segment of the video so it spans the
duration of the corresponding dubbed audio, splices the adjusted segments
back together, and muxes the dubbed track onto the result.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			req := videosync.Request{}
			for i, target := range []*string{&req.VideoPath, &req.AudioPath, &req.TimingPath, &req.OutputPath} {
				expanded, err := config.ExpandPath(args[i])
				if err != nil {
					return err
				}
				*target = expanded
			}

			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: logOutputs(cfg, quiet),
			})
			if err != nil {
				return err
			}

			opts := controllerOptions(cfg)
			if cmd.Flags().Changed("max-slowdown") {
				opts.MaxSlowdown = maxSlowdown
			}
			if cmd.Flags().Changed("min-speedup") {
				opts.MinSpeedup = minSpeedup
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("language") {
				opts.AudioLanguage = audioLang
			}

			controller := videosync.NewController(opts, logger)
			if !quiet && stdoutIsTerminal() {
				attachProgressBar(controller)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, runErr := controller.Run(ctx, req)
			// The run context may already be canceled; history still records.
			recordRun(context.Background(), cfg, logger, req, report, runErr)
			if runErr != nil {
				return runErr
			}

			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().Float64Var(&maxSlowdown, "max-slowdown", 0, "Cap on the per-segment stretch factor")
	cmd.Flags().Float64Var(&minSpeedup, "min-speedup", 0, "Floor on the per-segment scale factor (0 leaves speed-up unclamped)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent segment workers")
	cmd.Flags().StringVar(&audioLang, "language", "", "ISO 639-1 language tag for the muxed audio track")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output; log only to file")
	return cmd
}

func controllerOptions(cfg *config.Config) videosync.Options {
	return videosync.Options{
		WorkDir:           cfg.Paths.WorkDir,
		MaxSlowdown:       cfg.Sync.MaxSlowdown,
		MinSpeedup:        cfg.Sync.MinSpeedup,
		Workers:           cfg.Sync.Workers,
		AudioLanguage:     cfg.Sync.AudioLanguage,
		DurationTolerance: cfg.Sync.DurationToleranceSeconds,
		SegmentTimeout:    time.Duration(cfg.Sync.SegmentTimeoutSeconds) * time.Second,
		RunTimeout:        time.Duration(cfg.Sync.RunTimeoutSeconds) * time.Second,
		FFmpegBinary:      cfg.FFmpegBinary(),
		FFprobeBinary:     cfg.FFprobeBinary(),
		VideoCodec:        cfg.FFmpeg.VideoCodec,
		AudioCodec:        cfg.FFmpeg.AudioCodec,
		ExtractPreset:     cfg.FFmpeg.ExtractPreset,
		RescalePreset:     cfg.FFmpeg.RescalePreset,
	}
}

func logOutputs(cfg *config.Config, quiet bool) []string {
	logFile := filepath.Join(cfg.Paths.LogDir, "dubsync.log")
	if quiet {
		return []string{logFile}
	}
	return []string{"stderr", logFile}
}

// attachProgressBar wires a terminal progress bar to the controller. The bar
// is created on the first callback because the segment count is only known
// once the timing file has been loaded.
func attachProgressBar(controller *videosync.Controller) {
	var once sync.Once
	var bar *progressbar.ProgressBar
	controller.SetProgress(func(done, total int) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("re-timing segments"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = bar.Set(done)
	})
}

func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, req videosync.Request, report videosync.Report, runErr error) {
	if !cfg.History.Enabled || report.RunID == "" {
		return
	}
	store, err := runstore.Open(cfg.History.Dir)
	if err != nil {
		logger.Warn("failed to open run history", logging.Error(err))
		return
	}
	defer store.Close()

	run := runstore.Run{
		ID:         report.RunID,
		VideoPath:  req.VideoPath,
		AudioPath:  req.AudioPath,
		TimingPath: req.TimingPath,
		OutputPath: req.OutputPath,
		Status:     string(report.State),
		Segments:   report.Stats.Total,
		Skipped:    report.Stats.Skipped,
		Clamped:    report.Stats.Clamped,
		AvgScale:   report.Stats.AvgScale,
		MaxScale:   report.Stats.MaxScale,
		FinishedAt: time.Now().UTC(),
	}
	run.StartedAt = run.FinishedAt.Add(-report.Elapsed)
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	}
	if info, err := os.Stat(req.OutputPath); err == nil {
		run.OutputBytes = info.Size()
	}
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("failed to record run history", logging.Error(err))
	}
}

func printReport(cmd *cobra.Command, report videosync.Report) {
	out := cmd.OutOrStdout()

	rows := [][]string{
		{"Segments", strconv.Itoa(report.Stats.Total)},
		{"Succeeded", strconv.Itoa(report.Stats.Succeeded)},
		{"Skipped", strconv.Itoa(report.Stats.Skipped)},
		{"Clamped", strconv.Itoa(report.Stats.Clamped)},
		{"Avg scale", formatScale(report.Stats.AvgScale)},
		{"Max scale", formatScale(report.Stats.MaxScale)},
		{"Video duration", formatClock(report.VideoDuration)},
		{"Audio duration", formatClock(report.AudioDuration)},
		{"Elapsed", report.Elapsed.Round(time.Second).String()},
	}
	if info, err := os.Stat(report.OutputPath); err == nil {
		rows = append(rows, []string{"Output size", humanize.Bytes(uint64(info.Size()))})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))

	for _, skipped := range report.Skipped {
		fmt.Fprintf(out, "skipped segment %d: %s\n", skipped.Index, skipped.Reason)
	}
	fmt.Fprintf(out, "Wrote %s\n", report.OutputPath)
}

func formatScale(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + "x"
}

func formatClock(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return d.Round(time.Millisecond).String()
}
