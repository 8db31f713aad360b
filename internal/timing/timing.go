package timing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrCorrupt marks structurally invalid timing data. No segment can be
// trusted once the sequence itself is broken, so loading aborts the run.
var ErrCorrupt = errors.New("timing data corrupt")

// durationConsistencyTolerance bounds the allowed difference between the
// stored subtitle_duration and end-start before a record is considered
// inconsistent. Synthesis writes both from the same floats; anything beyond
// rounding noise indicates upstream corruption.
const durationConsistencyTolerance = 0.005

// Segment correlates one subtitle cue's interval on the original timeline
// with its interval on the replacement-audio timeline. Field names match the
// JSON written by the synthesis stage.
type Segment struct {
	Index            int     `json:"index"`
	SubtitleStart    float64 `json:"subtitle_start"`
	SubtitleEnd      float64 `json:"subtitle_end"`
	SubtitleDuration float64 `json:"subtitle_duration"`
	AudioStart       float64 `json:"audio_start"`
	AudioEnd         float64 `json:"audio_end"`
	AudioDuration    float64 `json:"audio_duration"`
	Content          string  `json:"content"`
}

// SourceDuration returns the cue's duration on the original timeline.
func (s Segment) SourceDuration() float64 {
	return s.SubtitleEnd - s.SubtitleStart
}

// ConsistentDurations reports whether the stored subtitle duration agrees
// with the start/end pair.
func (s Segment) ConsistentDurations() bool {
	return math.Abs(s.SourceDuration()-s.SubtitleDuration) <= durationConsistencyTolerance
}

// Store is the ordered, immutable sequence of segment records for one run.
type Store struct {
	segments []Segment
}

// Load reads and structurally validates a timing JSON file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCorrupt, path, err)
	}
	return Parse(data)
}

// Parse decodes and structurally validates timing JSON.
func Parse(data []byte) (*Store, error) {
	var segments []Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrCorrupt, err)
	}
	if err := validateSequence(segments); err != nil {
		return nil, err
	}
	return &Store{segments: segments}, nil
}

// validateSequence enforces the invariants every downstream stage depends
// on: a non-empty sequence, indexes matching position, and source intervals
// ordered without overlap. Per-record duration problems are left for the
// planner, which can skip a single bad cue without failing the run.
func validateSequence(segments []Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty segment sequence", ErrCorrupt)
	}
	for i, seg := range segments {
		if seg.Index != i {
			return fmt.Errorf("%w: segment at position %d carries index %d", ErrCorrupt, i, seg.Index)
		}
		if math.IsNaN(seg.SubtitleStart) || math.IsNaN(seg.SubtitleEnd) || math.IsNaN(seg.AudioDuration) {
			return fmt.Errorf("%w: segment %d contains NaN timing", ErrCorrupt, i)
		}
		if i > 0 && seg.SubtitleStart < segments[i-1].SubtitleEnd {
			return fmt.Errorf("%w: segment %d starts at %.3f before segment %d ends at %.3f",
				ErrCorrupt, i, seg.SubtitleStart, i-1, segments[i-1].SubtitleEnd)
		}
	}
	return nil
}

// Len returns the number of segments.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.segments)
}

// Segments returns a copy of the segment sequence.
func (s *Store) Segments() []Segment {
	if s == nil {
		return nil
	}
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// TotalAudioDuration returns the sum of audio_duration across segments.
func (s *Store) TotalAudioDuration() float64 {
	var total float64
	for _, seg := range s.segments {
		total += seg.AudioDuration
	}
	return total
}
