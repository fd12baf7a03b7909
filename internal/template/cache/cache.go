// Package cache manages ephemeral extraction directories in the system
// temp root. Directories are named with the creating PID plus a random
// suffix so concurrent invocations never collide and a later run can
// attribute leftovers to a dead process and sweep them.
package cache

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/sddkit/sddkit/internal/debug"
)

// dirPrefix is the naming prefix for all cache directories.
const dirPrefix = "sddkit-cache-"

// dirPattern matches cache directory names and captures the owning PID.
var dirPattern = regexp.MustCompile(`^sddkit-cache-(\d+)-[0-9a-f]{8}$`)

// Manager creates, tracks and removes cache directories for one process.
// It owns only directories it created in-process; orphans from dead
// processes are adopted as cleanup targets by CleanupOrphanedCaches.
type Manager struct {
	// TempRoot is the directory cache entries are created under.
	// Defaults to os.TempDir() when empty.
	TempRoot string
	// Checker determines whether the process owning an orphan candidate
	// is still alive. Defaults to the platform checker when nil.
	Checker ProcessChecker

	mu       sync.Mutex
	tracked  map[string]struct{}
	exitOnce sync.Once
}

// NewManager creates a cache manager rooted at the system temp directory.
func NewManager() *Manager {
	return &Manager{
		tracked: make(map[string]struct{}),
	}
}

// tempRoot returns the effective temp root.
func (m *Manager) tempRoot() string {
	if m.TempRoot != "" {
		return m.TempRoot
	}
	return os.TempDir()
}

// checker returns the effective liveness checker.
func (m *Manager) checker() ProcessChecker {
	if m.Checker != nil {
		return m.Checker
	}
	return platformChecker{}
}

// CreateCacheDir creates a new uniquely-named cache directory under the
// temp root and registers it for exit-time cleanup. The directory is
// guaranteed not to contain, equal, or be contained by the current
// working directory.
func (m *Manager) CreateCacheDir() (string, error) {
	root := m.tempRoot()

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", NewCacheError(CacheCreateFailed, root, "failed to generate cache suffix", err)
	}
	name := fmt.Sprintf("%s%d-%s", dirPrefix, os.Getpid(), hex.EncodeToString(suffix))
	dir := filepath.Join(root, name)

	if err := validateOutsideWorkingDir(dir); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", NewCacheError(CacheCreateFailed, dir, "temp root is not writable", err)
	}

	m.mu.Lock()
	m.tracked[dir] = struct{}{}
	m.mu.Unlock()

	// Arm exit-time cleanup the first time any directory is created.
	m.exitOnce.Do(func() {
		registerExitManager(m)
	})

	debug.Debug("[cache] created cache dir: %s", dir)
	return dir, nil
}

// CleanupCache removes the given cache directory. Only directories this
// manager created, or that match the cache naming pattern, are touched.
// Removal failures are logged and swallowed; cleanup must never abort
// the caller's primary workflow. Calling it twice on the same path is
// harmless.
func (m *Manager) CleanupCache(path string) {
	if path == "" {
		return
	}

	m.mu.Lock()
	_, isTracked := m.tracked[path]
	delete(m.tracked, path)
	m.mu.Unlock()

	if !isTracked && !dirPattern.MatchString(filepath.Base(path)) {
		debug.Debug("[cache] refusing to remove non-cache path: %s", path)
		return
	}

	if err := os.RemoveAll(path); err != nil {
		debug.Debug("[cache] warning: failed to remove cache dir %s: %v", path, err)
		return
	}
	debug.Debug("[cache] removed cache dir: %s", path)
}

// Preserve removes path from this manager's tracking so neither the
// exit hook nor CleanupAll deletes it. The directory itself stays on
// disk for the caller to inspect.
func (m *Manager) Preserve(path string) {
	m.mu.Lock()
	delete(m.tracked, path)
	m.mu.Unlock()
	debug.Debug("[cache] preserving cache dir: %s", path)
}

// CleanupAll removes every directory tracked by this manager.
// Invoked by the exit hook and safe to call explicitly.
func (m *Manager) CleanupAll() {
	m.mu.Lock()
	dirs := make([]string, 0, len(m.tracked))
	for dir := range m.tracked {
		dirs = append(dirs, dir)
	}
	m.mu.Unlock()

	for _, dir := range dirs {
		m.CleanupCache(dir)
	}
}

// CleanupOrphanedCaches scans the temp root for cache directories whose
// owning process is no longer alive and removes them. One unreadable or
// unremovable entry never prevents sweeping the rest. Returns the number
// of orphans removed.
func (m *Manager) CleanupOrphanedCaches() (int, error) {
	root := m.tempRoot()

	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, NewCacheError(CacheSweepFailed, root, "failed to scan temp root", err)
	}

	checker := m.checker()
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match := dirPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		pid, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if pid == os.Getpid() {
			// Our own live caches; exit hook handles them.
			continue
		}
		if checker.IsProcessAlive(pid) {
			continue
		}

		orphan := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(orphan); err != nil {
			debug.Debug("[cache] warning: failed to remove orphan %s: %v", orphan, err)
			continue
		}
		debug.Debug("[cache] removed orphaned cache dir: %s (pid %d dead)", orphan, pid)
		removed++
	}

	return removed, nil
}

// validateOutsideWorkingDir rejects cache paths that are inside the
// current working directory, or that are the working directory or one of
// its ancestors. Writing scratch data anywhere near the invocation root
// risks clobbering user files.
func validateOutsideWorkingDir(dir string) error {
	cwd, err := os.Getwd()
	if err != nil {
		// No working directory to protect; nothing to validate against.
		return nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return NewCacheError(CacheUnsafePath, dir, "failed to resolve cache path", err)
	}
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return NewCacheError(CacheUnsafePath, cwd, "failed to resolve working directory", err)
	}

	// Resolve symlinks best-effort so /tmp vs /private/tmp style aliases
	// cannot defeat the containment check.
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(absDir)); err == nil {
		absDir = filepath.Join(resolved, filepath.Base(absDir))
	}
	if resolved, err := filepath.EvalSymlinks(absCwd); err == nil {
		absCwd = resolved
	}

	if isContained(absCwd, absDir) {
		return NewCacheError(CacheUnsafePath, absDir, "cache directory would be inside the working directory", nil)
	}
	if isContained(absDir, absCwd) {
		return NewCacheError(CacheUnsafePath, absDir, "cache directory would contain the working directory", nil)
	}

	return nil
}

// isContained reports whether child is parent or lies underneath it.
func isContained(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)
	if parent == child {
		return true
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}
