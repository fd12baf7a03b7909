// Package app implements the workflows behind the CLI commands: project
// initialization from resolved templates, environment checks, and
// bundled template export.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sddkit/sddkit/internal/config"
	"github.com/sddkit/sddkit/internal/debug"
	"github.com/sddkit/sddkit/internal/template/model"
	"github.com/sddkit/sddkit/internal/template/resolver"
)

// sddDirName is the project directory initialized templates live under.
const sddDirName = ".sdd"

// InitOptions contains options for project initialization.
type InitOptions struct {
	// ProjectDir is the directory the project is initialized in.
	ProjectDir string
	// Assistant is the AI assistant flavor recorded in provenance.
	Assistant string
	// Config is the loaded tool configuration.
	Config *config.Config
	// NoCleanup preserves the download cache directory for inspection.
	NoCleanup bool
	// Progress receives download/extraction progress. May be nil.
	Progress model.ProgressFunc
}

// InitResult contains the results of project initialization.
type InitResult struct {
	// Resolution is the full template resolution outcome.
	Resolution *model.ResolutionResult
	// TemplatesDir is where the templates ended up inside the project.
	TemplatesDir string
	// FilesCopied is the number of template files copied.
	FilesCopied int
	// PreservedCacheDir is the cache directory kept when NoCleanup is
	// set. Empty otherwise.
	PreservedCacheDir string
}

// Init initializes a project: resolves the template source, copies the
// templates into <project>/.sdd/templates, and records provenance. The
// resolution cache is cleaned up afterwards unless NoCleanup is set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := validateInitOptions(opts); err != nil {
		return nil, err
	}
	cfg := opts.Config

	debug.DebugSection("[app] init workflow start")
	debug.DebugValue("[app] project dir", opts.ProjectDir)
	debug.DebugValue("[app] assistant", opts.Assistant)

	repo, err := model.ParseRepo(cfg.Templates.Repo)
	if err != nil {
		return nil, NewValidationError("invalid template repository", err)
	}
	repo.Ref = cfg.Templates.Ref
	repo.Subfolder = cfg.Templates.Subfolder

	r, err := resolver.New(resolver.Config{
		InvocationRoot: opts.ProjectDir,
		LocalDirName:   cfg.Templates.LocalDir,
		BundledDir:     cfg.Templates.BundledDir,
		Repo:           repo,
		Offline:        cfg.Templates.Offline,
		ForceDownload:  cfg.Templates.ForceDownload,
		GitHubToken:    cfg.GitHub.Token,
		Timeout:        time.Duration(cfg.GitHub.TimeoutSeconds) * time.Second,
		Progress:       opts.Progress,
	})
	if err != nil {
		return nil, NewInitError("failed to create template resolver", err)
	}

	resolution, err := r.Resolve(ctx)
	if err != nil {
		return nil, NewResolveError("template resolution failed", err)
	}

	result := &InitResult{
		Resolution:   resolution,
		TemplatesDir: filepath.Join(opts.ProjectDir, sddDirName, "templates"),
	}

	// A local override that already sits at the target location is left
	// untouched; copying a directory onto itself would mutate user files.
	if filepath.Clean(resolution.Path) == filepath.Clean(result.TemplatesDir) {
		debug.Debug("[app] local override already in place, skipping copy")
	} else {
		if err := os.MkdirAll(result.TemplatesDir, 0o755); err != nil {
			return nil, NewCopyError("failed to create project template directory", err)
		}
		copied, err := copyDir(resolution.Path, result.TemplatesDir)
		if err != nil {
			return nil, NewCopyError("failed to copy templates into project", err)
		}
		result.FilesCopied = copied
	}

	prov := newProvenance(resolution, repo, opts.Assistant)
	debug.DebugJSON("[app] provenance", prov)
	if err := writeProvenance(filepath.Join(opts.ProjectDir, sddDirName), prov); err != nil {
		return nil, NewInitError("failed to write provenance record", err)
	}

	if resolution.CacheDir != "" {
		if opts.NoCleanup {
			// Untrack the directory so the exit hook leaves it in place;
			// the printed path must still exist after the process ends.
			r.Cache().Preserve(resolution.CacheDir)
			result.PreservedCacheDir = resolution.CacheDir
		} else {
			r.Cache().CleanupCache(resolution.CacheDir)
		}
	}

	return result, nil
}

// validateInitOptions checks init options for obvious mistakes.
func validateInitOptions(opts InitOptions) error {
	if opts.ProjectDir == "" {
		return NewValidationError("project directory must not be empty", nil)
	}
	if opts.Config == nil {
		return NewValidationError("configuration is required", nil)
	}
	if info, err := os.Stat(opts.ProjectDir); err == nil && !info.IsDir() {
		return NewValidationError(fmt.Sprintf("project path %s exists and is not a directory", opts.ProjectDir), nil)
	}
	return nil
}
