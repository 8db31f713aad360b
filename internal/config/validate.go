package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.MaxSlowdown <= 0 {
		return errors.New("sync.max_slowdown must be positive")
	}
	if c.Sync.MinSpeedup < 0 {
		return errors.New("sync.min_speedup must not be negative")
	}
	if c.Sync.MinSpeedup > 0 && c.Sync.MinSpeedup > c.Sync.MaxSlowdown {
		return errors.New("sync.min_speedup must not exceed sync.max_slowdown")
	}
	if c.Sync.Workers < 1 {
		return errors.New("sync.workers must be at least 1")
	}
	if c.Sync.DurationToleranceSeconds < 0 {
		return errors.New("sync.duration_tolerance_seconds must not be negative")
	}
	if c.Sync.SegmentTimeoutSeconds <= 0 {
		return errors.New("sync.segment_timeout_seconds must be positive")
	}
	if c.Sync.RunTimeoutSeconds < 0 {
		return errors.New("sync.run_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
