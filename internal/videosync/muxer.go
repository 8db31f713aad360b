package videosync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dubsync/internal/fileutil"
	"dubsync/internal/language"
	"dubsync/internal/logging"
)

// MuxRequest describes the inputs for the final audio/video attachment.
type MuxRequest struct {
	VideoPath     string // assembled video-only stream
	AudioPath     string // full replacement audio track
	OutputPath    string // final artifact, overwritten if present
	AudioLanguage string // ISO 639-1 tag for the audio track, empty to skip
}

// Muxer attaches the replacement audio track to the assembled video. The
// video stream is copied, the audio re-encoded, and the output truncated to
// the shorter of the two streams.
type Muxer struct {
	binary     string
	audioCodec string
	run        commandRunner
	logger     *slog.Logger
}

// NewMuxer constructs a muxer around the given ffmpeg binary.
func NewMuxer(binary, audioCodec string, logger *slog.Logger) *Muxer {
	return &Muxer{
		binary:     binary,
		audioCodec: audioCodec,
		run:        defaultCommandRunner,
		logger:     logging.NewComponentLogger(logger, "muxer"),
	}
}

// Mux writes the final artifact. The operation is atomic with respect to the
// output path: ffmpeg writes a hidden temp file in the destination
// directory which is only moved into place on success.
func (m *Muxer) Mux(ctx context.Context, req MuxRequest) error {
	if strings.TrimSpace(req.VideoPath) == "" || strings.TrimSpace(req.AudioPath) == "" {
		return fmt.Errorf("%w: video and audio paths are required", ErrMux)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return fmt.Errorf("%w: output path is required", ErrMux)
	}

	dir := filepath.Dir(req.OutputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create output directory: %w", ErrMux, err)
	}
	// Temp name keeps the container extension so ffmpeg can infer the format.
	tmpPath := filepath.Join(dir, ".mux."+filepath.Base(req.OutputPath))

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.VideoPath,
		"-i", req.AudioPath,
		"-c:v", "copy",
		"-c:a", m.audioCodec,
		"-map", "0:v",
		"-map", "1:a",
	}
	if lang := strings.TrimSpace(req.AudioLanguage); lang != "" {
		args = append(args, "-metadata:s:a:0", "language="+language.ToISO3(lang))
	}
	args = append(args, "-shortest", tmpPath)

	m.logger.Debug("muxing final output",
		logging.String("video", req.VideoPath),
		logging.String("audio", req.AudioPath),
		logging.String("output", req.OutputPath),
	)
	if err := m.run(ctx, m.binary, args...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrMux, err)
	}
	if _, err := os.Stat(tmpPath); err != nil {
		return fmt.Errorf("%w: ffmpeg produced no output: %w", ErrMux, err)
	}
	if err := fileutil.MoveFile(tmpPath, req.OutputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: move into place: %w", ErrMux, err)
	}
	return nil
}
