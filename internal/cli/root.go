package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sddkit/sddkit/internal/config"
	"github.com/sddkit/sddkit/internal/debug"
	"github.com/sddkit/sddkit/internal/template/cache"
	"github.com/sddkit/sddkit/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalConfigPath string
	globalNoColor    bool
	globalQuiet      bool
	globalDebug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sddkit",
	Short: "Spec-driven development project scaffolding",
	Long: `sddkit scaffolds projects for spec-driven development.

Use "sddkit init <project>" to set up a project with the
Requirements -> Design -> Tasks -> Implementation templates. Templates
are resolved in priority order: a local override in the project, the
bundled set installed next to the tool, then a download from the
configured GitHub template repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
		if globalNoColor {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		// os.Exit skips deferred cleanup in main, so sweep here too.
		cache.ExitCleanup()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, FlagConfig, "", DescConfig)
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the tool configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalConfigPath)
	if err != nil {
		return nil, err
	}
	if globalQuiet {
		cfg.Output.Quiet = true
	}
	if globalNoColor {
		cfg.Output.Color = false
	}
	if !cfg.Output.Color {
		globalNoColor = true
		color.NoColor = true
	}
	if cfg.Output.Quiet {
		globalQuiet = true
	}
	return cfg, nil
}

// printError prints an error message to stderr
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
