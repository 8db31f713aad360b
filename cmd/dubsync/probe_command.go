package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dubsync/internal/config"
	"dubsync/internal/media/ffprobe"
)

func newProbeCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"File", result.Format.Filename},
				{"Container", result.Format.FormatName},
				{"Duration", formatClock(result.DurationSeconds())},
				{"Size", humanize.Bytes(uint64(result.SizeBytes()))},
				{"Video streams", strconv.Itoa(result.VideoStreamCount())},
				{"Audio streams", strconv.Itoa(result.AudioStreamCount())},
			}
			if rate := result.FrameRate(); rate > 0 {
				rows = append(rows, []string{"Frame rate", strconv.FormatFloat(rate, 'f', 3, 64) + " fps"})
			}
			for _, stream := range result.Streams {
				label := fmt.Sprintf("Stream %d", stream.Index)
				detail := stream.CodecType + "/" + stream.CodecName
				if stream.Width > 0 {
					detail += fmt.Sprintf(" %dx%d", stream.Width, stream.Height)
				}
				if stream.Channels > 0 {
					detail += fmt.Sprintf(" %dch @ %s Hz", stream.Channels, stream.SampleRate)
				}
				rows = append(rows, []string{label, detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
