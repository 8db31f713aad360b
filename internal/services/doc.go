// Package services holds cross-cutting error classification shared by the
// pipeline stages and the CLI.
package services
