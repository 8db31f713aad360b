package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dubsync/internal/runstore"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent synchronization runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled in the configuration")
			}

			store, err := runstore.Open(cfg.History.Dir)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				size := "-"
				if run.OutputBytes > 0 {
					size = humanize.Bytes(uint64(run.OutputBytes))
				}
				rows = append(rows, []string{
					humanize.Time(run.StartedAt),
					filepath.Base(run.OutputPath),
					run.Status,
					strconv.Itoa(run.Segments),
					strconv.Itoa(run.Skipped),
					formatScale(run.AvgScale),
					formatScale(run.MaxScale),
					size,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Output", "Status", "Segments", "Skipped", "Avg", "Max", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
