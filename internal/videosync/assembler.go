package videosync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dubsync/internal/logging"
)

// Clip is one rescaled segment ready for splicing. Duration is the expected
// duration of the clip after rescaling; the assembler declares it in the
// concat manifest but performs no timing computation of its own.
type Clip struct {
	Index    int
	Path     string
	Duration float64
}

// Assembler splices rescaled clips into one contiguous video-only stream.
// Ordering is owned here: clips are always concatenated in ascending
// original index, never in completion order.
type Assembler struct {
	binary string
	codec  string
	preset string
	run    commandRunner
	logger *slog.Logger
}

// NewAssembler constructs an assembler around the given ffmpeg binary.
func NewAssembler(binary, codec, preset string, logger *slog.Logger) *Assembler {
	return &Assembler{
		binary: binary,
		codec:  codec,
		preset: preset,
		run:    defaultCommandRunner,
		logger: logging.NewComponentLogger(logger, "assembler"),
	}
}

// Assemble concatenates clips into dest. The manifest is written next to the
// clips so the concat demuxer resolves their relative paths.
func (a *Assembler) Assemble(ctx context.Context, dir string, clips []Clip, dest string) error {
	if len(clips) == 0 {
		return fmt.Errorf("%w: no clips to assemble", ErrAssembly)
	}

	ordered := make([]Clip, len(clips))
	copy(ordered, clips)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	manifest, err := writeManifest(dir, ordered)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssembly, err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-an",
		"-c:v", a.codec,
		"-preset", a.preset,
		dest,
	}
	a.logger.Debug("concatenating clips",
		logging.Int("clips", len(ordered)),
		logging.String("dest", dest),
	)
	if err := a.run(ctx, a.binary, args...); err != nil {
		return fmt.Errorf("%w: concat: %w", ErrAssembly, err)
	}
	if info, err := os.Stat(dest); err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: concat produced no output at %s", ErrAssembly, dest)
	}
	return nil
}

// DeclaredDuration returns the sum of clip durations, the duration the
// assembled stream should have.
func DeclaredDuration(clips []Clip) float64 {
	var total float64
	for _, clip := range clips {
		total += clip.Duration
	}
	return total
}

func writeManifest(dir string, ordered []Clip) (string, error) {
	var b strings.Builder
	for _, clip := range ordered {
		if _, err := os.Stat(clip.Path); err != nil {
			return "", fmt.Errorf("clip %d missing: %w", clip.Index, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", filepath.Base(clip.Path))
		fmt.Fprintf(&b, "duration %s\n", formatSeconds(clip.Duration))
	}
	path := filepath.Join(dir, "segments.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
