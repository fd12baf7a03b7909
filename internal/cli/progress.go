package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sddkit/sddkit/internal/template/model"
)

// newProgressPrinter returns a progress callback rendering an in-place
// progress line on a terminal, or nil when progress output is disabled
// or stdout is not a TTY (progress spam in logs helps nobody).
func newProgressPrinter(enabled bool) model.ProgressFunc {
	if !enabled || globalQuiet || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}

	var lastPhase model.ProgressPhase
	return func(info model.ProgressInfo) {
		if info.Phase != lastPhase && lastPhase != "" {
			fmt.Println()
		}
		lastPhase = info.Phase

		label := "Downloading"
		if info.Phase == model.PhaseExtract {
			label = "Extracting"
		}

		line := fmt.Sprintf("\r%s... %s", label, formatBytes(info.Bytes))
		if info.TotalBytes > 0 {
			line = fmt.Sprintf("\r%s... %.1f%% (%s/%s)",
				label, info.Percent, formatBytes(info.Bytes), formatBytes(info.TotalBytes))
		}
		if info.BytesPerSec > 0 {
			line += fmt.Sprintf(" %s/s", formatBytes(int64(info.BytesPerSec)))
		}
		if info.ETASeconds >= 0 {
			line += fmt.Sprintf(" ETA %.0fs", info.ETASeconds)
		}
		fmt.Print(line)
	}
}

// finishProgressLine terminates the in-place progress line, if any.
func finishProgressLine(progress model.ProgressFunc) {
	if progress != nil {
		fmt.Println()
	}
}
