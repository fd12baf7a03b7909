package app

import (
	"path/filepath"

	"github.com/sddkit/sddkit/internal/config"
	"github.com/sddkit/sddkit/internal/debug"
	"github.com/sddkit/sddkit/internal/template/model"
	"github.com/sddkit/sddkit/internal/template/resolver"
)

// CheckOptions contains options for the environment check.
type CheckOptions struct {
	// ProjectDir is the directory the local override is checked under.
	ProjectDir string
	// Config is the loaded tool configuration.
	Config *config.Config
}

// SourceStatus reports the availability of one template tier.
type SourceStatus struct {
	// Source is the tier being reported.
	Source model.SourceType
	// Path is the directory that was checked, if any.
	Path string
	// Available indicates the tier could serve templates right now.
	Available bool
	// Detail explains an unavailable tier, or names the remote for the
	// github tier.
	Detail string
}

// CheckResult describes which template sources are available and which
// one a resolution would pick.
type CheckResult struct {
	// Sources lists each tier in priority order.
	Sources []SourceStatus
	// WouldUse is the tier a resolution would pick, or SourceNone when
	// every tier is unavailable without contacting the network.
	WouldUse model.SourceType
}

// Check reports template source availability without writing anything
// and without any network access: the github tier is reported from
// configuration only.
func Check(opts CheckOptions) (*CheckResult, error) {
	if opts.ProjectDir == "" {
		return nil, NewValidationError("project directory must not be empty", nil)
	}
	if opts.Config == nil {
		return nil, NewValidationError("configuration is required", nil)
	}
	cfg := opts.Config

	debug.DebugSection("[app] check workflow start")

	localDir := filepath.Join(opts.ProjectDir, filepath.FromSlash(cfg.Templates.LocalDir))
	localOK, localDetail := resolver.CheckDir(localDir)

	bundledDir := cfg.Templates.BundledDir
	if bundledDir == "" {
		bundledDir = resolver.DefaultBundledDir()
	}
	bundledOK, bundledDetail := resolver.CheckDir(bundledDir)

	githubDetail := cfg.Templates.Repo + "@" + cfg.Templates.Ref
	githubAvailable := !cfg.Templates.Offline
	if cfg.Templates.Offline {
		githubDetail = "disabled by offline mode"
	}

	result := &CheckResult{
		Sources: []SourceStatus{
			{Source: model.SourceLocal, Path: localDir, Available: localOK, Detail: localDetail},
			{Source: model.SourceBundled, Path: bundledDir, Available: bundledOK, Detail: bundledDetail},
			{Source: model.SourceGitHub, Available: githubAvailable, Detail: githubDetail},
		},
		WouldUse: model.SourceNone,
	}

	switch {
	case localOK:
		result.WouldUse = model.SourceLocal
	case bundledOK && !cfg.Templates.ForceDownload:
		result.WouldUse = model.SourceBundled
	case githubAvailable:
		result.WouldUse = model.SourceGitHub
	}

	return result, nil
}
