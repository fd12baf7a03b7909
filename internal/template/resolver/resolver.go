// Package resolver selects which template source an invocation uses, in
// strict priority order: a user-owned local override, the bundled set
// shipped with the tool, then a GitHub download into a cache directory.
// Every resolution reports all sources it checked and why, so the caller
// can show exactly how the winner was chosen.
package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sddkit/sddkit/internal/debug"
	"github.com/sddkit/sddkit/internal/template/cache"
	"github.com/sddkit/sddkit/internal/template/github"
	"github.com/sddkit/sddkit/internal/template/model"
)

// DefaultLocalDirName is the conventional local override directory,
// relative to the invocation root.
const DefaultLocalDirName = ".sdd/templates"

// Config holds the read-only configuration for a resolver. The resolver
// keeps no other state across Resolve calls.
type Config struct {
	// InvocationRoot is the directory the local override is checked
	// under. Defaults to the current working directory.
	InvocationRoot string
	// LocalDirName is the local override directory name relative to
	// InvocationRoot. Defaults to DefaultLocalDirName.
	LocalDirName string
	// BundledDir is the template directory shipped next to the
	// executable. Defaults to DefaultBundledDir().
	BundledDir string
	// Repo is the GitHub repository templates are downloaded from.
	Repo model.RepoRef
	// Offline forbids any network access.
	Offline bool
	// ForceDownload skips the bundled tier. The local override still
	// wins; a user-created directory is an explicit signal.
	ForceDownload bool
	// GitHubToken optionally authenticates archive downloads.
	GitHubToken string
	// Timeout bounds each archive request. Zero keeps the downloader's
	// default timeout.
	Timeout time.Duration
	// Progress receives download/extraction progress. May be nil.
	Progress model.ProgressFunc
}

// Resolver resolves the template source for one invocation at a time.
type Resolver struct {
	cfg        Config
	cache      *cache.Manager
	downloader *github.Downloader
}

// New creates a resolver, applying config defaults and sweeping orphaned
// cache directories left behind by dead processes. Sweep failures are
// logged and ignored; they must not block resolution.
func New(cfg Config) (*Resolver, error) {
	if cfg.InvocationRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine invocation root: %w", err)
		}
		cfg.InvocationRoot = cwd
	}
	if cfg.LocalDirName == "" {
		cfg.LocalDirName = DefaultLocalDirName
	}
	if cfg.BundledDir == "" {
		cfg.BundledDir = DefaultBundledDir()
	}

	downloader := github.NewDownloader()
	if cfg.GitHubToken != "" {
		downloader = github.NewDownloaderWithToken(cfg.GitHubToken)
	}
	if cfg.Timeout > 0 {
		downloader.HTTPClient.Timeout = cfg.Timeout
	}

	r := &Resolver{
		cfg:        cfg,
		cache:      cache.NewManager(),
		downloader: downloader,
	}

	if removed, err := r.cache.CleanupOrphanedCaches(); err != nil {
		debug.Debug("[resolver] orphan sweep failed: %v", err)
	} else if removed > 0 {
		debug.Debug("[resolver] orphan sweep removed %d stale cache dir(s)", removed)
	}

	return r, nil
}

// Cache exposes the resolver's cache manager so the caller can clean up
// a GitHub-resolved cache directory once the templates are consumed.
func (r *Resolver) Cache() *cache.Manager {
	return r.cache
}

// LocalDir returns the local override path this resolver checks.
func (r *Resolver) LocalDir() string {
	return filepath.Join(r.cfg.InvocationRoot, filepath.FromSlash(r.cfg.LocalDirName))
}

// Resolve walks the priority chain and returns the winning source with
// the full attempt log. Sources are checked strictly in order; no step
// begins before the previous one has definitively failed. On total
// failure it returns a ResolverError naming every attempt.
func (r *Resolver) Resolve(ctx context.Context) (*model.ResolutionResult, error) {
	debug.DebugSection("[resolver] resolve templates")
	result := &model.ResolutionResult{Source: model.SourceNone}

	// Tier 1: local override. User-owned; read-only for us, and it wins
	// unconditionally, force-download included.
	localDir := r.LocalDir()
	found, detail := checkTemplateDir(localDir)
	if found {
		result.Path = localDir
		result.Source = model.SourceLocal
		result.Attempts = append(result.Attempts, model.Attempt{
			Source:  model.SourceLocal,
			Outcome: model.AttemptFound,
			Detail:  localDir,
		})
		result.Notes = append(result.Notes, fmt.Sprintf("using local template override at %s", localDir))
		return result, nil
	}
	result.Attempts = append(result.Attempts, model.Attempt{
		Source:  model.SourceLocal,
		Outcome: model.AttemptNotFound,
		Detail:  detail,
	})

	// Tier 2: bundled templates, unless force-download bypasses them.
	if r.cfg.ForceDownload {
		result.Attempts = append(result.Attempts, model.Attempt{
			Source:  model.SourceBundled,
			Outcome: model.AttemptSkipped,
			Detail:  "bypassed by --force-download",
		})
		result.Notes = append(result.Notes, "bundled templates bypassed by --force-download")
	} else {
		found, detail = checkTemplateDir(r.cfg.BundledDir)
		if found {
			result.Path = r.cfg.BundledDir
			result.Source = model.SourceBundled
			result.Attempts = append(result.Attempts, model.Attempt{
				Source:  model.SourceBundled,
				Outcome: model.AttemptFound,
				Detail:  r.cfg.BundledDir,
			})
			result.Notes = append(result.Notes, fmt.Sprintf("using bundled templates at %s", r.cfg.BundledDir))
			return result, nil
		}
		result.Attempts = append(result.Attempts, model.Attempt{
			Source:  model.SourceBundled,
			Outcome: model.AttemptNotFound,
			Detail:  detail,
		})
	}

	// Tier 3: GitHub download, forbidden in offline mode.
	if r.cfg.Offline {
		result.Attempts = append(result.Attempts, model.Attempt{
			Source:  model.SourceGitHub,
			Outcome: model.AttemptSkipped,
			Detail:  "offline mode is set; GitHub is never contacted",
		})
		return nil, NewResolverError(result.Attempts, true, localDir)
	}

	path, cacheDir, err := r.downloadFromGitHub(ctx)
	if err != nil {
		result.Attempts = append(result.Attempts, model.Attempt{
			Source:  model.SourceGitHub,
			Outcome: model.AttemptError,
			Detail:  err.Error(),
			Err:     err,
		})
		return nil, NewResolverError(result.Attempts, false, localDir)
	}

	result.Path = path
	result.Source = model.SourceGitHub
	result.CacheDir = cacheDir
	result.Attempts = append(result.Attempts, model.Attempt{
		Source:  model.SourceGitHub,
		Outcome: model.AttemptFound,
		Detail:  r.cfg.Repo.String(),
	})
	result.Notes = append(result.Notes,
		fmt.Sprintf("downloaded templates from %s into %s", r.cfg.Repo.String(), cacheDir),
		"cache directory is removed after the templates are consumed")
	return result, nil
}

// downloadFromGitHub fetches the configured repository into a fresh
// cache directory. The cache directory is not cleaned up on success;
// the caller still needs the files and schedules cleanup itself. On
// failure the directory is removed immediately.
func (r *Resolver) downloadFromGitHub(ctx context.Context) (string, string, error) {
	cacheDir, err := r.cache.CreateCacheDir()
	if err != nil {
		return "", "", err
	}

	path, err := r.downloader.DownloadTemplates(ctx, r.cfg.Repo, cacheDir, r.cfg.Progress)
	if err != nil {
		r.cache.CleanupCache(cacheDir)
		return "", "", err
	}
	return path, cacheDir, nil
}

// CheckDir reports whether dir exists and holds at least one template
// file, with a detail string explaining a negative answer. Used by
// dry-run status reporting.
func CheckDir(dir string) (bool, string) {
	return checkTemplateDir(dir)
}

// checkTemplateDir reports whether dir exists and contains at least one
// entry. The detail string explains a negative answer.
func checkTemplateDir(dir string) (bool, string) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Sprintf("%s does not exist", dir)
		}
		return false, fmt.Sprintf("%s is not accessible: %v", dir, err)
	}
	if !info.IsDir() {
		return false, fmt.Sprintf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Sprintf("%s is not readable: %v", dir, err)
	}
	if len(entries) == 0 {
		return false, fmt.Sprintf("%s is empty", dir)
	}
	return true, ""
}

// DefaultBundledDir returns the template directory shipped next to the
// executable. Empty when the executable path cannot be determined.
func DefaultBundledDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "templates")
}
