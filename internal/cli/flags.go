package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig        = "config"
	FlagHere          = "here"
	FlagAI            = "ai"
	FlagOffline       = "offline"
	FlagForceDownload = "force-download"
	FlagTemplateRepo  = "template-repo"
	FlagRef           = "ref"
	FlagNoCleanup     = "no-cleanup"
	FlagDest          = "dest"
	FlagOverwrite     = "overwrite"
	FlagNoColor       = "no-color"
	FlagQuiet         = "quiet"
	FlagDebug         = "debug"

	// Flag descriptions
	DescConfig        = "Path to config file"
	DescHere          = "Initialize in the current directory"
	DescAI            = "AI assistant flavor (copilot, claude, gemini, cursor)"
	DescOffline       = "Never contact GitHub; use local or bundled templates only"
	DescForceDownload = "Skip bundled templates and download from GitHub"
	DescTemplateRepo  = "Template repository as owner/repo"
	DescRef           = "Git branch, tag, or commit SHA to download"
	DescNoCleanup     = "Keep the download cache directory for inspection"
	DescDest          = "Destination directory"
	DescOverwrite     = "Overwrite existing files"
	DescNoColor       = "Disable colored output"
	DescQuiet         = "Suppress non-error output"
	DescDebug         = "Enable debug logging"
)

// assistants are the supported AI assistant flavors.
var assistants = []string{"copilot", "claude", "gemini", "cursor"}

// isKnownAssistant reports whether name is a supported assistant flavor.
func isKnownAssistant(name string) bool {
	for _, a := range assistants {
		if a == name {
			return true
		}
	}
	return false
}
