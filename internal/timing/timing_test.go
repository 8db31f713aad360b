package timing

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `[
  {"index": 0, "subtitle_start": 1.0, "subtitle_end": 3.0, "subtitle_duration": 2.0,
   "audio_start": 0.0, "audio_end": 3.0, "audio_duration": 3.0, "content": "hello"},
  {"index": 1, "subtitle_start": 4.0, "subtitle_end": 5.0, "subtitle_duration": 1.0,
   "audio_start": 3.0, "audio_end": 5.5, "audio_duration": 2.5, "content": "world"}
]`

func TestLoadValidSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timing.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 segments, got %d", store.Len())
	}
	segs := store.Segments()
	if segs[0].Content != "hello" || segs[1].AudioDuration != 2.5 {
		t.Fatalf("unexpected segments: %+v", segs)
	}
	if got := store.TotalAudioDuration(); math.Abs(got-5.5) > 1e-9 {
		t.Fatalf("expected total audio duration 5.5, got %v", got)
	}
}

func TestLoadMissingFileIsCorrupt(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestParseRejectsEmptySequence(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for empty sequence, got %v", err)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"not": "an array"}`))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for invalid JSON shape, got %v", err)
	}
}

func TestParseRejectsIndexMismatch(t *testing.T) {
	data := `[{"index": 3, "subtitle_start": 0, "subtitle_end": 1, "subtitle_duration": 1,
	  "audio_start": 0, "audio_end": 1, "audio_duration": 1}]`
	_, err := Parse([]byte(data))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for index mismatch, got %v", err)
	}
}

func TestParseRejectsOverlappingIntervals(t *testing.T) {
	data := `[
	  {"index": 0, "subtitle_start": 0, "subtitle_end": 2, "subtitle_duration": 2,
	   "audio_start": 0, "audio_end": 2, "audio_duration": 2},
	  {"index": 1, "subtitle_start": 1.5, "subtitle_end": 3, "subtitle_duration": 1.5,
	   "audio_start": 2, "audio_end": 3, "audio_duration": 1}
	]`
	_, err := Parse([]byte(data))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for overlap, got %v", err)
	}
}

func TestParseKeepsPerRecordProblemsForPlanner(t *testing.T) {
	// A zero-duration cue is a per-segment precondition failure, not a
	// structural one: the sequence still loads and the planner skips it.
	data := `[
	  {"index": 0, "subtitle_start": 0, "subtitle_end": 2, "subtitle_duration": 2,
	   "audio_start": 0, "audio_end": 0, "audio_duration": 0},
	  {"index": 1, "subtitle_start": 3, "subtitle_end": 4, "subtitle_duration": 1,
	   "audio_start": 0, "audio_end": 1, "audio_duration": 1}
	]`
	store, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("zero-duration cue should not fail the load: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 segments, got %d", store.Len())
	}
}

func TestConsistentDurations(t *testing.T) {
	seg := Segment{SubtitleStart: 1, SubtitleEnd: 3, SubtitleDuration: 2}
	if !seg.ConsistentDurations() {
		t.Fatal("matching durations should be consistent")
	}
	seg.SubtitleDuration = 2.5
	if seg.ConsistentDurations() {
		t.Fatal("mismatched durations should be inconsistent")
	}
}
