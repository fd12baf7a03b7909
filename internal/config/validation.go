package config

import (
	"path/filepath"
	"strings"

	"github.com/sddkit/sddkit/internal/template/model"
)

// Validate checks a configuration for invalid values. Returns the first
// failure as a ConfigError naming the field.
func Validate(cfg *Config) error {
	if cfg.Templates.Repo == "" {
		return NewFieldError("templates.repo", "template repository must not be empty")
	}
	if _, err := model.ParseRepo(cfg.Templates.Repo); err != nil {
		return NewFieldError("templates.repo", err.Error())
	}

	if cfg.Templates.Ref == "" {
		return NewFieldError("templates.ref", "template ref must not be empty")
	}
	if strings.ContainsAny(cfg.Templates.Ref, " \t") {
		return NewFieldError("templates.ref", "template ref must not contain whitespace")
	}

	if cfg.Templates.LocalDir == "" {
		return NewFieldError("templates.local_dir", "local template directory must not be empty")
	}
	if filepath.IsAbs(cfg.Templates.LocalDir) {
		return NewFieldError("templates.local_dir", "local template directory must be relative to the invocation root")
	}

	if strings.HasPrefix(cfg.Templates.Subfolder, "/") || strings.Contains(cfg.Templates.Subfolder, "..") {
		return NewFieldError("templates.subfolder", "template subfolder must be a relative path without '..'")
	}

	if cfg.GitHub.TimeoutSeconds <= 0 {
		return NewFieldError("github.timeout_seconds", "timeout must be positive")
	}

	if cfg.Templates.Offline && cfg.Templates.ForceDownload {
		return NewFieldError("templates.force_download", "force_download cannot be combined with offline")
	}

	return nil
}
