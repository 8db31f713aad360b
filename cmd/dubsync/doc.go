// Command dubsync re-times a video against dubbed audio using per-segment
// timing data and attaches the new track to the adjusted stream.
package main
