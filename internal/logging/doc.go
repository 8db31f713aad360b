// Package logging builds the slog loggers used across dubsync.
//
// Two handler formats are supported: "console" renders compact
// human-readable lines with flattened key=value attributes, and "json"
// emits structured records for log collectors. Component loggers carry a
// stable "component" attribute so console output can prefix messages with
// the subsystem that produced them.
package logging
