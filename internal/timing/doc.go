// Package timing loads the per-cue timing metadata produced by the audio
// synthesis stage. Each record correlates a cue's interval on the original
// video timeline with its interval on the continuous replacement-audio
// timeline. The loaded sequence is read-only input for the sync pipeline.
package timing
