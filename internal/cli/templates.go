package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sddkit/sddkit/internal/app"
	"github.com/sddkit/sddkit/internal/assets"
)

// templates export flags
var (
	exportDest      string
	exportOverwrite bool
)

// templatesCmd groups template management subcommands.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage bundled templates",
}

// templatesExportCmd writes the embedded starter templates to disk.
var templatesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the embedded starter templates to the bundled directory",
	Long: `Write the starter template set embedded in the binary to disk.

By default the templates go to the bundled directory next to the
executable, where init picks them up without any network access.`,
	Example: `  sddkit templates export
  sddkit templates export --dest ./my-templates --overwrite`,
	Args: cobra.NoArgs,
	RunE: runTemplatesExport,
}

// templatesListCmd lists the embedded starter templates.
var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the embedded starter templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := assets.TemplateNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	templatesExportCmd.Flags().StringVar(&exportDest, FlagDest, "", DescDest)
	templatesExportCmd.Flags().BoolVar(&exportOverwrite, FlagOverwrite, false, DescOverwrite)

	templatesCmd.AddCommand(templatesExportCmd)
	templatesCmd.AddCommand(templatesListCmd)
}

func runTemplatesExport(cmd *cobra.Command, args []string) error {
	result, err := app.Export(app.ExportOptions{
		DestDir:   exportDest,
		Overwrite: exportOverwrite,
	})
	if err != nil {
		return err
	}

	if result.FilesWritten == 0 {
		printWarning(fmt.Sprintf("No files written to %s (already present; use --%s to replace)", result.DestDir, FlagOverwrite))
		return nil
	}
	printSuccess(fmt.Sprintf("Exported %d template files to %s", result.FilesWritten, result.DestDir))
	return nil
}
