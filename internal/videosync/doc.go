// Package videosync re-times a source video against a dubbed audio track.
//
// The pipeline works per subtitle cue: extract the cue's interval from the
// source video, rescale it so its playback duration matches the dubbed
// segment duration (stretch capped by the configured slowdown ceiling),
// splice the rescaled clips back together in cue order, and mux the dubbed
// audio onto the assembled stream. A single bad cue is skipped and counted;
// the run only fails when no cue can be processed or a structural step
// (timing load, assembly, mux) breaks.
package videosync
