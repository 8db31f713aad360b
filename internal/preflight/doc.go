// Package preflight verifies the environment before a sync run starts:
// external binaries, directory permissions, and scratch space.
package preflight
