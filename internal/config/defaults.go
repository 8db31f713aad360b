package config

const (
	defaultWorkDir        = "~/.local/share/dubsync/work"
	defaultLogDir         = "~/.local/share/dubsync/logs"
	defaultHistoryDir     = "~/.local/share/dubsync/history"
	defaultMaxSlowdown    = 2.0
	defaultWorkers        = 1
	defaultSegmentTimeout = 300
	defaultVideoCodec     = "libx264"
	defaultAudioCodec     = "aac"
	defaultExtractPreset  = "ultrafast"
	defaultRescalePreset  = "medium"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Sync: Sync{
			MaxSlowdown:           defaultMaxSlowdown,
			Workers:               defaultWorkers,
			SegmentTimeoutSeconds: defaultSegmentTimeout,
		},
		FFmpeg: FFmpeg{
			VideoCodec:    defaultVideoCodec,
			AudioCodec:    defaultAudioCodec,
			ExtractPreset: defaultExtractPreset,
			RescalePreset: defaultRescalePreset,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Dir:     defaultHistoryDir,
		},
	}
}
