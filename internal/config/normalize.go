package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeSync()
	c.normalizeLogging()
	return c.normalizeHistory()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	c.FFmpeg.ProbeBinary = strings.TrimSpace(c.FFmpeg.ProbeBinary)
	if c.FFmpeg.VideoCodec = strings.TrimSpace(c.FFmpeg.VideoCodec); c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = defaultVideoCodec
	}
	if c.FFmpeg.AudioCodec = strings.TrimSpace(c.FFmpeg.AudioCodec); c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = defaultAudioCodec
	}
	if c.FFmpeg.ExtractPreset = strings.TrimSpace(c.FFmpeg.ExtractPreset); c.FFmpeg.ExtractPreset == "" {
		c.FFmpeg.ExtractPreset = defaultExtractPreset
	}
	if c.FFmpeg.RescalePreset = strings.TrimSpace(c.FFmpeg.RescalePreset); c.FFmpeg.RescalePreset == "" {
		c.FFmpeg.RescalePreset = defaultRescalePreset
	}
}

func (c *Config) normalizeSync() {
	if c.Sync.MaxSlowdown == 0 {
		c.Sync.MaxSlowdown = defaultMaxSlowdown
	}
	if c.Sync.Workers == 0 {
		c.Sync.Workers = defaultWorkers
	}
	if c.Sync.SegmentTimeoutSeconds == 0 {
		c.Sync.SegmentTimeoutSeconds = defaultSegmentTimeout
	}
	c.Sync.AudioLanguage = strings.ToLower(strings.TrimSpace(c.Sync.AudioLanguage))
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Dir) == "" {
		c.History.Dir = defaultHistoryDir
	}
	var err error
	if c.History.Dir, err = expandPath(c.History.Dir); err != nil {
		return fmt.Errorf("history.dir: %w", err)
	}
	return nil
}
