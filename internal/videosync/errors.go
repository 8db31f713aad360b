package videosync

import "errors"

// Per-segment errors. A segment hitting one of these is skipped; the run
// continues with the remaining segments.
var (
	ErrInvalidInterval     = errors.New("invalid segment interval")
	ErrZeroDurationSegment = errors.New("zero duration segment")
	ErrExtraction          = errors.New("segment extraction failed")
	ErrRescale             = errors.New("segment rescale failed")
)

// Structural errors. Any of these aborts the run.
var (
	ErrAssembly = errors.New("assembly failed")
	ErrMux      = errors.New("mux failed")
)

// IsSegmentError reports whether err is recoverable by skipping the segment.
func IsSegmentError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrZeroDurationSegment) ||
		errors.Is(err, ErrExtraction) ||
		errors.Is(err, ErrRescale)
}
