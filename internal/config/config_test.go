package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Sync.MaxSlowdown != 2.0 {
		t.Fatalf("expected default max_slowdown 2.0, got %v", cfg.Sync.MaxSlowdown)
	}
	if cfg.Sync.Workers != 1 {
		t.Fatalf("expected default workers 1, got %d", cfg.Sync.Workers)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("expected PATH binaries, got %q/%q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
	if !filepath.IsAbs(cfg.Paths.WorkDir) {
		t.Fatalf("work dir should be expanded to absolute, got %q", cfg.Paths.WorkDir)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[sync]
max_slowdown = 1.5
min_speedup = 0.5
workers = 4
audio_language = "DE"

[ffmpeg]
binary = "/opt/ffmpeg/bin/ffmpeg"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Sync.MaxSlowdown != 1.5 || cfg.Sync.MinSpeedup != 0.5 || cfg.Sync.Workers != 4 {
		t.Fatalf("unexpected sync config: %+v", cfg.Sync)
	}
	if cfg.Sync.AudioLanguage != "de" {
		t.Fatalf("audio language should normalize to lowercase, got %q", cfg.Sync.AudioLanguage)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary %q", cfg.FFmpegBinary())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero max_slowdown", func(c *Config) { c.Sync.MaxSlowdown = -1 }, "max_slowdown"},
		{"negative min_speedup", func(c *Config) { c.Sync.MinSpeedup = -0.1 }, "min_speedup"},
		{"floor above ceiling", func(c *Config) { c.Sync.MinSpeedup = 3.0 }, "min_speedup"},
		{"zero workers", func(c *Config) { c.Sync.Workers = 0 }, "workers"},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}
	for _, tc := range cases {
		cfg := Default()
		if err := cfg.normalize(); err != nil {
			t.Fatalf("%s: normalize: %v", tc.name, err)
		}
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q should mention %q", tc.name, err, tc.want)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist after creation")
	}
	if cfg.Sync.MaxSlowdown != 2.0 {
		t.Fatalf("sample should carry default max_slowdown, got %v", cfg.Sync.MaxSlowdown)
	}
}
