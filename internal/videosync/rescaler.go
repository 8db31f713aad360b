package videosync

import (
	"context"
	"fmt"
	"log/slog"

	"dubsync/internal/logging"
)

// Rescaler time-remaps extracted clips via the setpts filter, preserving
// content order while changing playback duration.
type Rescaler struct {
	binary string
	codec  string
	preset string
	run    commandRunner
	logger *slog.Logger
}

// NewRescaler constructs a rescaler around the given ffmpeg binary.
func NewRescaler(binary, codec, preset string, logger *slog.Logger) *Rescaler {
	return &Rescaler{
		binary: binary,
		codec:  codec,
		preset: preset,
		run:    defaultCommandRunner,
		logger: logging.NewComponentLogger(logger, "rescaler"),
	}
}

// Rescale writes a copy of src whose playback duration is factor times the
// original.
func (r *Rescaler) Rescale(ctx context.Context, src string, factor float64, dest string) error {
	if factor <= 0 {
		return fmt.Errorf("%w: non-positive scale factor %v", ErrRescale, factor)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-filter:v", fmt.Sprintf("setpts=%s*PTS", formatFactor(factor)),
		"-an",
		"-c:v", r.codec,
		"-preset", r.preset,
		dest,
	}
	r.logger.Debug("rescaling segment",
		logging.Float64("factor", factor),
		logging.String("dest", dest),
	)
	if err := r.run(ctx, r.binary, args...); err != nil {
		return fmt.Errorf("%w: factor %v: %w", ErrRescale, factor, err)
	}
	return nil
}
