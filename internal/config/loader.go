package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/sddkit/sddkit/internal/debug"
)

// envPrefix is the prefix for environment overrides, e.g.
// SDDKIT_TEMPLATES_REPO or SDDKIT_GITHUB_TOKEN.
const envPrefix = "SDDKIT"

// Load reads the configuration file at path, layering it over defaults
// and under SDDKIT_* environment overrides. An empty path loads the
// default location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			if explicit || !isNotFound(err) {
				typ := ConfigReadFailed
				var parseErr viper.ConfigParseError
				if errors.As(err, &parseErr) {
					typ = ConfigParseFailed
				}
				return nil, NewConfigError(typ, path, "failed to load configuration file", err)
			}
			debug.Debug("[config] no config file at %s, using defaults", path)
		} else {
			debug.Debug("[config] loaded config file: %s", v.ConfigFileUsed())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewConfigError(ConfigParseFailed, path, "invalid configuration structure", err)
	}

	// Tokens from the conventional environment variables win over the
	// config file; CI commonly provides GITHUB_TOKEN.
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = GitHubTokenFromEnv()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults seeds viper with the default configuration values.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("templates.repo", defaults.Templates.Repo)
	v.SetDefault("templates.ref", defaults.Templates.Ref)
	v.SetDefault("templates.subfolder", defaults.Templates.Subfolder)
	v.SetDefault("templates.local_dir", defaults.Templates.LocalDir)
	v.SetDefault("templates.bundled_dir", defaults.Templates.BundledDir)
	v.SetDefault("templates.offline", defaults.Templates.Offline)
	v.SetDefault("templates.force_download", defaults.Templates.ForceDownload)
	v.SetDefault("github.token", defaults.GitHub.Token)
	v.SetDefault("github.timeout_seconds", defaults.GitHub.TimeoutSeconds)
	v.SetDefault("cache.no_cleanup", defaults.Cache.NoCleanup)
	v.SetDefault("output.color", defaults.Output.Color)
	v.SetDefault("output.progress", defaults.Output.Progress)
	v.SetDefault("output.quiet", defaults.Output.Quiet)
}

// isNotFound reports whether err means the config file does not exist.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}

// GitHubTokenFromEnv retrieves the GitHub token from environment
// variables. Checks GITHUB_TOKEN first, then falls back to GH_TOKEN.
func GitHubTokenFromEnv() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return ""
}
