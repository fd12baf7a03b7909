package config

import (
	"os"
	"path/filepath"
)

// Default template source values.
const (
	// DefaultTemplateRepo is the GitHub repository templates are
	// downloaded from when no override is configured.
	DefaultTemplateRepo = "sddkit/sdd-templates"
	// DefaultTemplateRef is the git ref downloaded by default.
	DefaultTemplateRef = "main"
	// DefaultTemplateSubfolder is the template directory inside the
	// repository archive.
	DefaultTemplateSubfolder = "templates"
	// DefaultLocalDir is the local override directory checked under the
	// invocation root.
	DefaultLocalDir = ".sdd/templates"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Templates: TemplatesConfig{
			Repo:      DefaultTemplateRepo,
			Ref:       DefaultTemplateRef,
			Subfolder: DefaultTemplateSubfolder,
			LocalDir:  DefaultLocalDir,
		},
		GitHub: GitHubConfig{
			Token:          "",
			TimeoutSeconds: 30,
		},
		Output: OutputConfig{
			Color:    true,
			Progress: true,
			Quiet:    false,
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "sddkit", "config.json")
}
