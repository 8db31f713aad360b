package videosync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"dubsync/internal/logging"
)

func TestMuxMovesOutputIntoPlace(t *testing.T) {
	dir := t.TempDir()
	var gotArgs []string
	m := NewMuxer("ffmpeg", "aac", logging.NewNop())
	m.run = func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		return os.WriteFile(args[len(args)-1], []byte("muxed"), 0o644)
	}

	out := filepath.Join(dir, "final.mp4")
	err := m.Mux(context.Background(), MuxRequest{
		VideoPath:     filepath.Join(dir, "video.mp4"),
		AudioPath:     filepath.Join(dir, "audio.wav"),
		OutputPath:    out,
		AudioLanguage: "de",
	})
	if err != nil {
		t.Fatalf("mux: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".mux.final.mp4")); !os.IsNotExist(err) {
		t.Fatal("temp file should be gone after mux")
	}

	if !slices.Contains(gotArgs, "-shortest") {
		t.Fatalf("mux must truncate to the shorter stream: %v", gotArgs)
	}
	if !slices.Contains(gotArgs, "language=deu") {
		t.Fatalf("expected ISO 639-2 language metadata: %v", gotArgs)
	}
	for i, arg := range gotArgs {
		if arg == "-c:v" && gotArgs[i+1] != "copy" {
			t.Fatalf("assembled video must be stream-copied, got %v", gotArgs[i+1])
		}
	}
}

func TestMuxSkipsLanguageWhenUnset(t *testing.T) {
	dir := t.TempDir()
	var gotArgs []string
	m := NewMuxer("ffmpeg", "aac", logging.NewNop())
	m.run = func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		return os.WriteFile(args[len(args)-1], []byte("muxed"), 0o644)
	}

	err := m.Mux(context.Background(), MuxRequest{
		VideoPath:  filepath.Join(dir, "video.mp4"),
		AudioPath:  filepath.Join(dir, "audio.wav"),
		OutputPath: filepath.Join(dir, "final.mp4"),
	})
	if err != nil {
		t.Fatalf("mux: %v", err)
	}
	if slices.Contains(gotArgs, "-metadata:s:a:0") {
		t.Fatalf("no language metadata expected: %v", gotArgs)
	}
}

func TestMuxCleansUpOnRunnerFailure(t *testing.T) {
	dir := t.TempDir()
	m := NewMuxer("ffmpeg", "aac", logging.NewNop())
	m.run = func(ctx context.Context, name string, args ...string) error {
		_ = os.WriteFile(args[len(args)-1], []byte("partial"), 0o644)
		return fmt.Errorf("exit status 1")
	}

	out := filepath.Join(dir, "final.mp4")
	err := m.Mux(context.Background(), MuxRequest{
		VideoPath:  filepath.Join(dir, "video.mp4"),
		AudioPath:  filepath.Join(dir, "audio.wav"),
		OutputPath: out,
	})
	if !errors.Is(err, ErrMux) {
		t.Fatalf("expected ErrMux, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("failed mux must not leave an output file")
	}
	if _, statErr := os.Stat(filepath.Join(dir, ".mux.final.mp4")); !os.IsNotExist(statErr) {
		t.Fatal("failed mux must remove its temp file")
	}
}

func TestMuxValidatesRequest(t *testing.T) {
	m := NewMuxer("ffmpeg", "aac", logging.NewNop())
	if err := m.Mux(context.Background(), MuxRequest{}); !errors.Is(err, ErrMux) {
		t.Fatalf("expected ErrMux for empty request, got %v", err)
	}
}
