package main

import (
	"github.com/sddkit/sddkit/internal/cli"
	"github.com/sddkit/sddkit/internal/template/cache"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version info from build-time variables
	cli.Version = version
	cli.GitCommit = gitCommit
	cli.BuildDate = buildDate

	// Remove any cache directories this process still owns before exit.
	defer cache.ExitCleanup()

	// Execute the root command
	cli.Execute()
}
