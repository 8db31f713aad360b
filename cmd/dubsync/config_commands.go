package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dubsync/internal/config"
	"dubsync/internal/language"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return err
			}

			audioLang := cfg.Sync.AudioLanguage
			if audioLang != "" {
				audioLang += " (" + language.DisplayName(audioLang) + ")"
			} else {
				audioLang = "(untagged)"
			}

			rows := [][]string{
				{"Work directory", cfg.Paths.WorkDir},
				{"Log directory", cfg.Paths.LogDir},
				{"Max slowdown", formatScale(cfg.Sync.MaxSlowdown)},
				{"Min speedup", formatScale(cfg.Sync.MinSpeedup)},
				{"Workers", strconv.Itoa(cfg.Sync.Workers)},
				{"Audio language", audioLang},
				{"Segment timeout", strconv.Itoa(cfg.Sync.SegmentTimeoutSeconds) + "s"},
				{"FFmpeg", cfg.FFmpegBinary()},
				{"FFprobe", cfg.FFprobeBinary()},
				{"Video codec", cfg.FFmpeg.VideoCodec},
				{"Audio codec", cfg.FFmpeg.AudioCodec},
				{"Extract preset", cfg.FFmpeg.ExtractPreset},
				{"Rescale preset", cfg.FFmpeg.RescalePreset},
				{"Log level", cfg.Logging.Level},
				{"Log format", cfg.Logging.Format},
				{"History enabled", yesNo(cfg.History.Enabled)},
				{"History directory", cfg.History.Dir},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s (exists: %s)\n", path, yesNo(exists))
			fmt.Fprintln(out, renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
