package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sddkit/sddkit/internal/app"
	"github.com/sddkit/sddkit/internal/template/model"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which template sources are available",
	Long: `Report the availability of each template source for the current
directory, in priority order, and which one an init would use. No
network requests are made; the GitHub source is reported from
configuration alone.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	result, err := app.Check(app.CheckOptions{ProjectDir: cwd, Config: cfg})
	if err != nil {
		return err
	}

	fmt.Println("Template sources:")
	for _, src := range result.Sources {
		printSourceStatus(src)
	}

	fmt.Println()
	if result.WouldUse == model.SourceNone {
		printErrorMsg("No template source is available; init would fail")
	} else {
		printSuccess(fmt.Sprintf("init would use: %s", result.WouldUse))
	}
	return nil
}

// printSourceStatus prints one tier's availability line.
func printSourceStatus(src app.SourceStatus) {
	var line string
	if src.Path != "" {
		line = fmt.Sprintf("%-8s %s", src.Source, src.Path)
	} else {
		line = fmt.Sprintf("%-8s %s", src.Source, src.Detail)
	}

	if src.Available {
		printSuccess(line)
		return
	}
	if src.Path != "" && src.Detail != "" {
		line += fmt.Sprintf(" (%s)", src.Detail)
	}
	printWarning(line)
}
