package videosync

import (
	"fmt"

	"dubsync/internal/timing"
)

// intervalEpsilon absorbs float rounding when comparing a cue's end against
// the probed source duration. Probed durations are themselves only accurate
// to a few milliseconds.
const intervalEpsilon = 0.010

// ClampPolicy bounds the per-segment scale factor.
//
// MaxSlowdown caps stretching so a short original utterance mapped to a long
// dubbed one never turns into extreme slow motion. MinSpeedup optionally
// floors the factor; zero leaves speed-up unclamped, which is the historical
// behavior of this pipeline.
type ClampPolicy struct {
	MaxSlowdown float64
	MinSpeedup  float64
}

// Apply clamps factor into the policy's band and reports whether clamping
// occurred.
func (p ClampPolicy) Apply(factor float64) (float64, bool) {
	clamped := false
	if p.MaxSlowdown > 0 && factor > p.MaxSlowdown {
		factor = p.MaxSlowdown
		clamped = true
	}
	if p.MinSpeedup > 0 && factor < p.MinSpeedup {
		factor = p.MinSpeedup
		clamped = true
	}
	return factor, clamped
}

// segmentPlan carries everything one segment needs through extract and
// rescale. Plans and their backing files are scoped to a single run.
type segmentPlan struct {
	seg     timing.Segment
	scale   float64
	clamped bool

	extractedPath string
	rescaledPath  string
}

// rescaledDuration returns the duration the rescaled clip is expected to
// have. This is the duration declared in the concat manifest; when the scale
// factor was clamped it deliberately differs from the audio segment
// duration.
func (p *segmentPlan) rescaledDuration() float64 {
	return p.scale * p.seg.SourceDuration()
}

// buildPlan validates one segment's preconditions and computes its scale
// factor. sourceVideoDuration is the probed duration of the source video.
func buildPlan(seg timing.Segment, sourceVideoDuration float64, policy ClampPolicy) (*segmentPlan, error) {
	srcDur := seg.SourceDuration()
	if srcDur <= 0 {
		return nil, fmt.Errorf("%w: segment %d source duration %.3fs", ErrZeroDurationSegment, seg.Index, srcDur)
	}
	if seg.AudioDuration <= 0 {
		return nil, fmt.Errorf("%w: segment %d audio duration %.3fs", ErrZeroDurationSegment, seg.Index, seg.AudioDuration)
	}
	if seg.SubtitleStart < 0 {
		return nil, fmt.Errorf("%w: segment %d starts at %.3fs", ErrInvalidInterval, seg.Index, seg.SubtitleStart)
	}
	if sourceVideoDuration > 0 && seg.SubtitleEnd > sourceVideoDuration+intervalEpsilon {
		return nil, fmt.Errorf("%w: segment %d ends at %.3fs beyond source duration %.3fs",
			ErrInvalidInterval, seg.Index, seg.SubtitleEnd, sourceVideoDuration)
	}
	if !seg.ConsistentDurations() {
		return nil, fmt.Errorf("%w: segment %d stored duration %.3fs disagrees with interval %.3fs",
			ErrInvalidInterval, seg.Index, seg.SubtitleDuration, srcDur)
	}

	scale, clamped := policy.Apply(seg.AudioDuration / srcDur)
	return &segmentPlan{seg: seg, scale: scale, clamped: clamped}, nil
}
