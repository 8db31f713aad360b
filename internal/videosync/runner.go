package videosync

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// commandRunner executes an external command. Tests inject fakes so no
// ffmpeg binary is needed to exercise the pipeline.
type commandRunner func(ctx context.Context, name string, args ...string) error

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// formatSeconds renders a seconds value the way ffmpeg expects on the
// command line.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// formatFactor renders a scale factor for the setpts filter expression.
func formatFactor(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
