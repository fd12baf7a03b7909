package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sddkit/sddkit/internal/app"
	"github.com/sddkit/sddkit/internal/config"
	"github.com/sddkit/sddkit/internal/debug"
)

// init command flags
var (
	initHere          bool
	initAssistant     string
	initOffline       bool
	initForceDownload bool
	initTemplateRepo  string
	initRef           string
	initNoCleanup     bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize a spec-driven development project",
	Long: `Initialize a project with the spec-driven development templates.

Creates <project>/.sdd/templates from the highest-priority available
source: a local override directory, the bundled template set, or a
download from the configured GitHub repository. A provenance record
describing where the templates came from is written alongside them.`,
	Example: `  sddkit init my-service
  sddkit init my-service --ai claude
  sddkit init --here --offline
  sddkit init my-service --template-repo myorg/templates --ref v2.1.0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initHere, FlagHere, false, DescHere)
	initCmd.Flags().StringVar(&initAssistant, FlagAI, "", DescAI)
	initCmd.Flags().BoolVar(&initOffline, FlagOffline, false, DescOffline)
	initCmd.Flags().BoolVar(&initForceDownload, FlagForceDownload, false, DescForceDownload)
	initCmd.Flags().StringVar(&initTemplateRepo, FlagTemplateRepo, "", DescTemplateRepo)
	initCmd.Flags().StringVar(&initRef, FlagRef, "", DescRef)
	initCmd.Flags().BoolVar(&initNoCleanup, FlagNoCleanup, false, DescNoCleanup)
}

func runInit(cmd *cobra.Command, args []string) error {
	projectDir, err := resolveProjectDir(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInitFlags(cfg, cmd)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	assistant := initAssistant
	if assistant == "" {
		assistant, err = promptForAssistant()
		if err != nil {
			return err
		}
	}
	if !isKnownAssistant(assistant) {
		return fmt.Errorf("unknown assistant %q (supported: %v)", assistant, assistants)
	}

	debug.DebugSection("[cli] init command")
	debug.DebugValue("[cli] project dir", projectDir)

	printStep(fmt.Sprintf("Initializing project in %s", projectDir))

	progress := newProgressPrinter(cfg.Output.Progress)
	result, err := app.Init(cmd.Context(), app.InitOptions{
		ProjectDir: projectDir,
		Assistant:  assistant,
		Config:     cfg,
		NoCleanup:  initNoCleanup || cfg.Cache.NoCleanup,
		Progress:   progress,
	})
	finishProgressLine(progress)
	if err != nil {
		return err
	}

	printResolutionReport(result.Resolution)
	if result.FilesCopied > 0 {
		printSuccess(fmt.Sprintf("Copied %d template files to %s", result.FilesCopied, result.TemplatesDir))
	} else {
		printSuccess(fmt.Sprintf("Using local templates in place at %s", result.TemplatesDir))
	}
	if result.PreservedCacheDir != "" {
		printWarning(fmt.Sprintf("Cache directory preserved at %s", result.PreservedCacheDir))
	}

	printNextSteps(projectDir)
	return nil
}

// resolveProjectDir determines the project directory from the
// positional argument and the --here flag.
func resolveProjectDir(args []string) (string, error) {
	if initHere {
		if len(args) > 0 {
			return "", fmt.Errorf("cannot combine a project name with --%s", FlagHere)
		}
		return os.Getwd()
	}
	if len(args) == 0 {
		return "", fmt.Errorf("project name required (or pass --%s)", FlagHere)
	}
	return filepath.Abs(args[0])
}

// applyInitFlags overlays command-line flags onto the loaded config.
// Only flags the user actually set override config file values.
func applyInitFlags(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed(FlagOffline) {
		cfg.Templates.Offline = initOffline
	}
	if cmd.Flags().Changed(FlagForceDownload) {
		cfg.Templates.ForceDownload = initForceDownload
	}
	if initTemplateRepo != "" {
		cfg.Templates.Repo = initTemplateRepo
	}
	if initRef != "" {
		cfg.Templates.Ref = initRef
	}
}

// printNextSteps prints guidance after successful initialization.
func printNextSteps(projectDir string) {
	if globalQuiet {
		return
	}
	fmt.Println()
	printInfo("Next steps:")
	printInfo(fmt.Sprintf("  cd %s", projectDir))
	printInfo("  Fill in .sdd/templates/spec.md with your feature requirements")
	printInfo("  Derive plan.md and tasks.md from the approved spec")
}
