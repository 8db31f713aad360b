package videosync

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"dubsync/internal/logging"
	"dubsync/internal/media/ffprobe"
	"dubsync/internal/services"
	"dubsync/internal/timing"
)

// State tracks where a run is in its lifecycle.
type State string

const (
	StateIdle          State = "idle"
	StateLoadingTiming State = "loading_timing"
	StatePerSegment    State = "per_segment"
	StateAssembling    State = "assembling"
	StateMuxing        State = "muxing"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// Request names the four artifacts a run works with.
type Request struct {
	VideoPath  string
	AudioPath  string
	TimingPath string
	OutputPath string
}

// Options carries the controller's configuration.
type Options struct {
	WorkDir string

	MaxSlowdown       float64
	MinSpeedup        float64
	Workers           int
	AudioLanguage     string
	DurationTolerance float64 // seconds; 0 selects one frame interval
	SegmentTimeout    time.Duration
	RunTimeout        time.Duration

	FFmpegBinary  string
	FFprobeBinary string
	VideoCodec    string
	AudioCodec    string
	ExtractPreset string
	RescalePreset string
}

// Report is the read-only outcome of one run.
type Report struct {
	RunID      string
	State      State
	Stats      Stats
	Skipped    []SkippedSegment
	OutputPath string

	// VideoDuration is the probed duration of the assembled stream,
	// AudioDuration that of the replacement audio. The final artifact is
	// truncated to the shorter of the two.
	VideoDuration float64
	AudioDuration float64
	// DriftSeconds is the difference between the assembled stream's actual
	// duration and the sum of declared clip durations.
	DriftSeconds float64

	Elapsed time.Duration
}

type probeFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// Controller owns the per-segment loop and the run lifecycle.
type Controller struct {
	opts      Options
	logger    *slog.Logger
	extractor *Extractor
	rescaler  *Rescaler
	assembler *Assembler
	muxer     *Muxer
	probe     probeFunc
	progress  func(done, total int)
}

// NewController constructs a controller from options.
func NewController(opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Controller{
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "sync"),
		extractor: NewExtractor(opts.FFmpegBinary, opts.VideoCodec, opts.ExtractPreset, logger),
		rescaler:  NewRescaler(opts.FFmpegBinary, opts.VideoCodec, opts.RescalePreset, logger),
		assembler: NewAssembler(opts.FFmpegBinary, opts.VideoCodec, opts.RescalePreset, logger),
		muxer:     NewMuxer(opts.FFmpegBinary, opts.AudioCodec, logger),
	}
	c.probe = func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, opts.FFprobeBinary, path)
	}
	return c
}

// SetProgress installs a callback invoked after each segment finishes,
// successful or not. Calls are serialized.
func (c *Controller) SetProgress(fn func(done, total int)) {
	c.progress = fn
}

// withCommandRunner swaps the runner on every stage. Test seam.
func (c *Controller) withCommandRunner(run commandRunner) {
	c.extractor.run = run
	c.rescaler.run = run
	c.assembler.run = run
	c.muxer.run = run
}

// withProbe swaps the media prober. Test seam.
func (c *Controller) withProbe(probe probeFunc) {
	c.probe = probe
}

// Run executes the full pipeline. The returned report is meaningful even
// when err is non-nil: its State and Stats describe how far the run got.
func (c *Controller) Run(ctx context.Context, req Request) (Report, error) {
	started := time.Now()
	report := Report{State: StateIdle, OutputPath: req.OutputPath}
	fail := func(err error) (Report, error) {
		report.State = StateFailed
		report.Elapsed = time.Since(started)
		return report, err
	}

	if c.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.RunTimeout)
		defer cancel()
	}

	report.State = StateLoadingTiming
	store, err := timing.Load(req.TimingPath)
	if err != nil {
		return fail(err)
	}

	source, err := c.probe(ctx, req.VideoPath)
	if err != nil {
		return fail(services.Wrap(services.ErrValidation, "sync", "probe source", req.VideoPath, err))
	}
	if source.VideoStreamCount() == 0 {
		return fail(services.Wrap(services.ErrValidation, "sync", "probe source", "no video stream in "+req.VideoPath, nil))
	}
	audio, err := c.probe(ctx, req.AudioPath)
	if err != nil {
		return fail(services.Wrap(services.ErrValidation, "sync", "probe audio", req.AudioPath, err))
	}
	report.AudioDuration = audio.DurationSeconds()

	// One run per work directory: concurrent runs would race on scratch
	// space and, with equal output paths, on the final artifact.
	if err := os.MkdirAll(c.opts.WorkDir, 0o755); err != nil {
		return fail(services.Wrap(services.ErrConfiguration, "sync", "work dir", c.opts.WorkDir, err))
	}
	lock := flock.New(filepath.Join(c.opts.WorkDir, "dubsync.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fail(services.Wrap(services.ErrConfiguration, "sync", "lock work dir", c.opts.WorkDir, err))
	}
	if !locked {
		return fail(services.Wrap(services.ErrConfiguration, "sync", "lock work dir", "another dubsync run is using "+c.opts.WorkDir, nil))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Warn("failed to release work dir lock", logging.Error(err))
		}
	}()

	report.RunID = uuid.NewString()
	tempDir := filepath.Join(c.opts.WorkDir, "run-"+report.RunID)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return fail(services.Wrap(services.ErrConfiguration, "sync", "temp dir", tempDir, err))
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			c.logger.Warn("failed to remove temp dir", logging.Error(err), logging.String("dir", tempDir))
		}
	}()

	runLogger := c.logger.With(logging.String(logging.FieldRunID, report.RunID))
	segments := store.Segments()
	runLogger.Info("starting smart video synchronization",
		logging.Int("segments", len(segments)),
		logging.Float64("source_duration", source.DurationSeconds()),
		logging.Float64("audio_duration", report.AudioDuration),
		logging.Int("workers", c.workers()),
	)

	report.State = StatePerSegment
	plans, skipped := c.processSegments(ctx, runLogger, req.VideoPath, segments, source.DurationSeconds(), tempDir)
	report.Skipped = skipped
	report.Stats = computeStats(plans, skipped, len(segments))
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if len(plans) == 0 {
		return fail(services.Wrap(ErrAssembly, "sync", "segments", "no segments succeeded", nil))
	}

	report.State = StateAssembling
	clips := make([]Clip, 0, len(plans))
	for _, plan := range plans {
		clips = append(clips, Clip{Index: plan.seg.Index, Path: plan.rescaledPath, Duration: plan.rescaledDuration()})
	}
	assembledPath := filepath.Join(tempDir, "assembled.mp4")
	if err := c.assembler.Assemble(ctx, tempDir, clips, assembledPath); err != nil {
		return fail(err)
	}

	assembled, err := c.probe(ctx, assembledPath)
	if err != nil {
		return fail(services.Wrap(ErrAssembly, "sync", "probe assembled", assembledPath, err))
	}
	report.VideoDuration = assembled.DurationSeconds()
	if report.VideoDuration <= 0 {
		return fail(services.Wrap(ErrAssembly, "sync", "assembled stream", "zero duration output", nil))
	}
	c.checkDrift(runLogger, &report, assembled, clips)

	report.State = StateMuxing
	if err := c.muxer.Mux(ctx, MuxRequest{
		VideoPath:     assembledPath,
		AudioPath:     req.AudioPath,
		OutputPath:    req.OutputPath,
		AudioLanguage: c.opts.AudioLanguage,
	}); err != nil {
		return fail(err)
	}

	report.State = StateDone
	report.Elapsed = time.Since(started)
	runLogger.Info("synchronization complete",
		logging.String("output", req.OutputPath),
		logging.Int("succeeded", report.Stats.Succeeded),
		logging.Int("skipped", report.Stats.Skipped),
		logging.Float64("avg_scale", report.Stats.AvgScale),
		logging.Float64("max_scale", report.Stats.MaxScale),
		logging.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (c *Controller) workers() int {
	if c.opts.Workers < 1 {
		return 1
	}
	return c.opts.Workers
}

// processSegments runs extract+rescale for every segment through a bounded
// worker pool. Results are collected positionally so assembly order never
// depends on completion order, and one worker's failure only skips its own
// segment.
func (c *Controller) processSegments(ctx context.Context, logger *slog.Logger, videoPath string, segments []timing.Segment, sourceDuration float64, tempDir string) ([]*segmentPlan, []SkippedSegment) {
	type result struct {
		plan *segmentPlan
		err  error
	}

	results := make([]result, len(segments))
	sem := make(chan struct{}, c.workers())
	var wg sync.WaitGroup
	var progressMu sync.Mutex
	done := 0

	for i, seg := range segments {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, seg timing.Segment) {
			defer wg.Done()
			defer func() { <-sem }()

			plan, err := c.processSegment(ctx, videoPath, seg, sourceDuration, tempDir)
			results[i] = result{plan: plan, err: err}

			progressMu.Lock()
			done++
			if c.progress != nil {
				c.progress(done, len(segments))
			}
			progressMu.Unlock()
		}(i, seg)
	}
	wg.Wait()

	var plans []*segmentPlan
	var skipped []SkippedSegment
	for i, res := range results {
		switch {
		case res.err == nil:
			plans = append(plans, res.plan)
		case IsSegmentError(res.err):
			logger.Warn("skipping segment",
				logging.Int(logging.FieldSegment, i),
				logging.Error(res.err),
			)
			skipped = append(skipped, SkippedSegment{Index: i, Reason: res.err.Error()})
		default:
			// Cancellation or other non-segment failure; surface via ctx.
			logger.Warn("segment aborted",
				logging.Int(logging.FieldSegment, i),
				logging.Error(res.err),
			)
			skipped = append(skipped, SkippedSegment{Index: i, Reason: res.err.Error()})
		}
	}
	return plans, skipped
}

func (c *Controller) processSegment(ctx context.Context, videoPath string, seg timing.Segment, sourceDuration float64, tempDir string) (*segmentPlan, error) {
	plan, err := buildPlan(seg, sourceDuration, ClampPolicy{MaxSlowdown: c.opts.MaxSlowdown, MinSpeedup: c.opts.MinSpeedup})
	if err != nil {
		return nil, err
	}

	segCtx := ctx
	if c.opts.SegmentTimeout > 0 {
		var cancel context.CancelFunc
		segCtx, cancel = context.WithTimeout(ctx, c.opts.SegmentTimeout)
		defer cancel()
	}

	plan.extractedPath = filepath.Join(tempDir, fmt.Sprintf("video_%04d.mp4", seg.Index))
	if err := c.extractor.Extract(segCtx, videoPath, seg.SubtitleStart, seg.SubtitleEnd, plan.extractedPath); err != nil {
		return nil, err
	}

	plan.rescaledPath = filepath.Join(tempDir, fmt.Sprintf("adjusted_%04d.mp4", seg.Index))
	if err := c.rescaler.Rescale(segCtx, plan.extractedPath, plan.scale, plan.rescaledPath); err != nil {
		return nil, err
	}
	return plan, nil
}

// checkDrift compares the assembled stream's probed duration against the
// sum of declared clip durations. Drift grows with clip count, so the
// tolerance scales with it: one frame interval (or the configured override)
// per clip.
func (c *Controller) checkDrift(logger *slog.Logger, report *Report, assembled ffprobe.Result, clips []Clip) {
	declared := DeclaredDuration(clips)
	report.DriftSeconds = report.VideoDuration - declared

	perSegment := c.opts.DurationTolerance
	if perSegment <= 0 {
		perSegment = assembled.FrameInterval()
	}
	if perSegment <= 0 {
		return
	}
	budget := perSegment * float64(len(clips))
	if math.Abs(report.DriftSeconds) > budget {
		logger.Warn("assembled stream drifted beyond tolerance",
			logging.Float64("declared", declared),
			logging.Float64("actual", report.VideoDuration),
			logging.Float64("drift", report.DriftSeconds),
			logging.Float64("budget", budget),
		)
	}
}
