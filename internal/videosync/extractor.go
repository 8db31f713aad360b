package videosync

import (
	"context"
	"fmt"
	"log/slog"

	"dubsync/internal/logging"
)

// Extractor cuts intervals of the source video into standalone video-only
// clips. Clips are throwaway intermediates, so extraction favors encode
// speed over size.
type Extractor struct {
	binary string
	codec  string
	preset string
	run    commandRunner
	logger *slog.Logger
}

// NewExtractor constructs an extractor around the given ffmpeg binary.
func NewExtractor(binary, codec, preset string, logger *slog.Logger) *Extractor {
	return &Extractor{
		binary: binary,
		codec:  codec,
		preset: preset,
		run:    defaultCommandRunner,
		logger: logging.NewComponentLogger(logger, "extractor"),
	}
}

// Extract cuts [start, end) seconds from source into dest, audio stripped.
func (e *Extractor) Extract(ctx context.Context, source string, start, end float64, dest string) error {
	if start < 0 || end <= start {
		return fmt.Errorf("%w: [%.3f, %.3f)", ErrInvalidInterval, start, end)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-an",
		"-c:v", e.codec,
		"-preset", e.preset,
		dest,
	}
	e.logger.Debug("extracting segment",
		logging.Float64("start", start),
		logging.Float64("end", end),
		logging.String("dest", dest),
	)
	if err := e.run(ctx, e.binary, args...); err != nil {
		return fmt.Errorf("%w: [%.3f, %.3f): %w", ErrExtraction, start, end, err)
	}
	return nil
}
