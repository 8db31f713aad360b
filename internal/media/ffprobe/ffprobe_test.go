package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", AvgFrameRate: "30000/1001"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "2048",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 2048 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if rate := result.FrameRate(); math.Abs(rate-29.97) > 0.01 {
		t.Fatalf("unexpected frame rate: %v", rate)
	}
	if interval := result.FrameInterval(); math.Abs(interval-1.0/29.97) > 1e-6 {
		t.Fatalf("unexpected frame interval: %v", interval)
	}
}

func TestResultHelpersHandleMissingValues(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", AvgFrameRate: "0/0"}},
		Format:  Format{Duration: "bad", Size: "-1"},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", result.FrameRate())
	}
	if result.FrameInterval() != 0 {
		t.Fatalf("expected frame interval 0, got %v", result.FrameInterval())
	}
}

func TestParseRatio(t *testing.T) {
	cases := map[string]float64{
		"25/1":       25,
		"24":         24,
		"30000/1001": 29.97002997,
		"":           0,
		"x/1":        0,
		"1/0":        0,
	}
	for input, want := range cases {
		if got := parseRatio(input); math.Abs(got-want) > 1e-6 {
			t.Fatalf("parseRatio(%q) = %v, want %v", input, got, want)
		}
	}
}
