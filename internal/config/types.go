package config

// Config represents the global sddkit configuration.
type Config struct {
	// Templates configures where templates are resolved from.
	Templates TemplatesConfig `json:"templates" mapstructure:"templates"`
	// GitHub configures repository access.
	GitHub GitHubConfig `json:"github" mapstructure:"github"`
	// Cache configures cache directory behavior.
	Cache CacheConfig `json:"cache" mapstructure:"cache"`
	// Output configures display behavior.
	Output OutputConfig `json:"output" mapstructure:"output"`
}

// TemplatesConfig represents template resolution settings.
type TemplatesConfig struct {
	// Repo is the GitHub template repository in "owner/repo" form.
	Repo string `json:"repo" mapstructure:"repo"`
	// Ref is the branch, tag, or commit SHA to download.
	Ref string `json:"ref" mapstructure:"ref"`
	// Subfolder is the template directory inside the repository.
	Subfolder string `json:"subfolder" mapstructure:"subfolder"`
	// LocalDir is the local override directory, relative to the
	// invocation root.
	LocalDir string `json:"local_dir" mapstructure:"local_dir"`
	// BundledDir overrides the bundled template directory location.
	// Empty means the templates directory next to the executable.
	BundledDir string `json:"bundled_dir,omitempty" mapstructure:"bundled_dir"`
	// Offline forbids network access during resolution.
	Offline bool `json:"offline" mapstructure:"offline"`
	// ForceDownload skips the bundled tier during resolution.
	ForceDownload bool `json:"force_download" mapstructure:"force_download"`
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// Token is the GitHub personal access token for private repositories.
	Token string `json:"token,omitempty" mapstructure:"token"`
	// TimeoutSeconds is the archive request timeout in seconds.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// CacheConfig represents cache settings.
type CacheConfig struct {
	// NoCleanup preserves cache directories after the run for inspection.
	NoCleanup bool `json:"no_cleanup" mapstructure:"no_cleanup"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `json:"color" mapstructure:"color"`
	// Progress shows progress indicators during downloads.
	Progress bool `json:"progress" mapstructure:"progress"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet" mapstructure:"quiet"`
}
