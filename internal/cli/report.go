package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/sddkit/sddkit/internal/template/model"
)

// Attempt log rendering. Every resolution prints which sources were
// checked and why the winner won; silent fallback to a stale source
// would be a usability defect.

var (
	reportFound   = color.New(color.FgGreen)
	reportMissed  = color.New(color.FgYellow)
	reportSkipped = color.New(color.FgHiBlack)
	reportFailed  = color.New(color.FgRed)
)

// printResolutionReport prints the per-source attempt log and notes.
func printResolutionReport(result *model.ResolutionResult) {
	if globalQuiet {
		return
	}

	fmt.Println("Template sources:")
	for _, attempt := range result.Attempts {
		c := attemptColor(attempt.Outcome)
		line := fmt.Sprintf("  %-8s %s", attempt.Source, attempt.Outcome)
		if attempt.Detail != "" {
			line += fmt.Sprintf("  %s", attempt.Detail)
		}
		c.Println(line)
	}

	for _, note := range result.Notes {
		printInfo("  " + note)
	}
}

// attemptColor maps an attempt outcome to its display color.
func attemptColor(outcome model.AttemptOutcome) *color.Color {
	switch outcome {
	case model.AttemptFound:
		return reportFound
	case model.AttemptNotFound:
		return reportMissed
	case model.AttemptSkipped:
		return reportSkipped
	default:
		return reportFailed
	}
}
