package videosync

// Stats aggregates per-run numbers. Derived at the end of a run; never
// persisted by this package.
type Stats struct {
	Total     int
	Succeeded int
	Skipped   int
	// Clamped counts segments whose scale factor hit a policy bound.
	Clamped int
	// AvgScale and MaxScale cover applied (post-clamp) factors of
	// succeeded segments.
	AvgScale float64
	MaxScale float64
}

// SkippedSegment records why one segment was excluded from the output.
type SkippedSegment struct {
	Index  int
	Reason string
}

func computeStats(plans []*segmentPlan, skipped []SkippedSegment, total int) Stats {
	stats := Stats{
		Total:     total,
		Succeeded: len(plans),
		Skipped:   len(skipped),
	}
	if len(plans) == 0 {
		return stats
	}
	var sum float64
	for _, plan := range plans {
		sum += plan.scale
		if plan.scale > stats.MaxScale {
			stats.MaxScale = plan.scale
		}
		if plan.clamped {
			stats.Clamped++
		}
	}
	stats.AvgScale = sum / float64(len(plans))
	return stats
}
