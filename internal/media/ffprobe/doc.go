// Package ffprobe wraps ffprobe JSON inspection of media files.
package ffprobe
