package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeChecker reports liveness from a fixed table.
type fakeChecker struct {
	alive map[int]bool
}

func (f fakeChecker) IsProcessAlive(pid int) bool {
	return f.alive[pid]
}

func TestCreateCacheDir(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	m.TempRoot = root

	dir, err := m.CreateCacheDir()
	if err != nil {
		t.Fatalf("CreateCacheDir() error: %v", err)
	}

	if filepath.Dir(dir) != root {
		t.Errorf("cache dir %s not under temp root %s", dir, root)
	}
	if !dirPattern.MatchString(filepath.Base(dir)) {
		t.Errorf("cache dir name %q does not match naming pattern", filepath.Base(dir))
	}
	if !strings.Contains(filepath.Base(dir), fmt.Sprintf("-%d-", os.Getpid())) {
		t.Errorf("cache dir name %q does not encode current pid", filepath.Base(dir))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("cache dir %s was not created: %v", dir, err)
	}
}

func TestCreateCacheDirUniqueness(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	m.TempRoot = root

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		dir, err := m.CreateCacheDir()
		if err != nil {
			t.Fatalf("CreateCacheDir() error: %v", err)
		}
		if _, dup := seen[dir]; dup {
			t.Fatalf("duplicate cache dir: %s", dir)
		}
		seen[dir] = struct{}{}
	}
}

func TestCreateCacheDirNeverUnderWorkingDir(t *testing.T) {
	tests := []struct {
		name     string
		tempRoot func(t *testing.T, cwd string) string
		wantErr  bool
	}{
		{
			name: "temp root inside cwd",
			tempRoot: func(t *testing.T, cwd string) string {
				return filepath.Join(cwd, "tmp")
			},
			wantErr: true,
		},
		{
			name: "temp root equals cwd",
			tempRoot: func(t *testing.T, cwd string) string {
				return cwd
			},
			wantErr: true,
		},
		{
			name: "temp root disjoint from cwd",
			tempRoot: func(t *testing.T, cwd string) string {
				return t.TempDir()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := t.TempDir()
			prevWD, err := os.Getwd()
			if err != nil {
				t.Fatalf("failed to get working directory: %v", err)
			}
			if err := os.Chdir(cwd); err != nil {
				t.Fatalf("failed to chdir: %v", err)
			}
			t.Cleanup(func() {
				if err := os.Chdir(prevWD); err != nil {
					t.Fatalf("failed to restore working directory: %v", err)
				}
			})

			m := NewManager()
			m.TempRoot = tt.tempRoot(t, cwd)
			if err := os.MkdirAll(m.TempRoot, 0o755); err != nil {
				t.Fatalf("failed to create temp root: %v", err)
			}

			dir, err := m.CreateCacheDir()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CreateCacheDir() = %s, want unsafe-path error", dir)
				}
				cacheErr, ok := err.(*CacheError)
				if !ok || cacheErr.Type != CacheUnsafePath {
					t.Errorf("CreateCacheDir() error = %v, want CacheUnsafePath", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCacheDir() error: %v", err)
			}
			if isContained(cwd, dir) {
				t.Errorf("cache dir %s is inside working directory %s", dir, cwd)
			}
		})
	}
}

func TestCleanupCache(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	m.TempRoot = root

	dir, err := m.CreateCacheDir()
	if err != nil {
		t.Fatalf("CreateCacheDir() error: %v", err)
	}

	m.CleanupCache(dir)
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache dir %s still exists after cleanup", dir)
	}

	// Second cleanup of the same path must not panic or fail.
	m.CleanupCache(dir)
}

func TestCleanupCacheRefusesForeignPath(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	m.TempRoot = root

	foreign := filepath.Join(root, "user-data")
	if err := os.MkdirAll(foreign, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	m.CleanupCache(foreign)
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("untracked non-cache dir %s was removed", foreign)
	}
}

func TestCleanupOrphanedCaches(t *testing.T) {
	root := t.TempDir()

	deadDir := filepath.Join(root, "sddkit-cache-99991-0a1b2c3d")
	aliveDir := filepath.Join(root, "sddkit-cache-99992-0a1b2c3d")
	ownDir := filepath.Join(root, fmt.Sprintf("sddkit-cache-%d-0a1b2c3d", os.Getpid()))
	unrelated := filepath.Join(root, "some-other-tool")
	for _, dir := range []string{deadDir, aliveDir, ownDir, unrelated} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create dir %s: %v", dir, err)
		}
	}

	m := NewManager()
	m.TempRoot = root
	m.Checker = fakeChecker{alive: map[int]bool{99991: false, 99992: true}}

	removed, err := m.CleanupOrphanedCaches()
	if err != nil {
		t.Fatalf("CleanupOrphanedCaches() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanupOrphanedCaches() removed = %d, want 1", removed)
	}

	if _, err := os.Stat(deadDir); !os.IsNotExist(err) {
		t.Errorf("orphan %s was not removed", deadDir)
	}
	for _, dir := range []string{aliveDir, ownDir, unrelated} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("dir %s was removed but should survive the sweep", dir)
		}
	}
}

func TestExitCleanup(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	m.TempRoot = root

	first, err := m.CreateCacheDir()
	if err != nil {
		t.Fatalf("CreateCacheDir() error: %v", err)
	}
	second, err := m.CreateCacheDir()
	if err != nil {
		t.Fatalf("CreateCacheDir() error: %v", err)
	}

	ExitCleanup()

	for _, dir := range []string{first, second} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("tracked dir %s still exists after exit cleanup", dir)
		}
	}

	// Running exit cleanup again must be harmless.
	ExitCleanup()
}

func TestPreserveSurvivesExitCleanup(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	m.TempRoot = root

	kept, err := m.CreateCacheDir()
	if err != nil {
		t.Fatalf("CreateCacheDir() error: %v", err)
	}
	removed, err := m.CreateCacheDir()
	if err != nil {
		t.Fatalf("CreateCacheDir() error: %v", err)
	}

	m.Preserve(kept)
	ExitCleanup()

	if _, err := os.Stat(kept); err != nil {
		t.Errorf("preserved cache dir %s was removed by the exit hook: %v", kept, err)
	}
	if _, err := os.Stat(removed); !os.IsNotExist(err) {
		t.Errorf("tracked dir %s still exists after exit cleanup", removed)
	}

	// A preserved path is also off-limits for CleanupAll.
	m.CleanupAll()
	if _, err := os.Stat(kept); err != nil {
		t.Errorf("preserved cache dir %s was removed by CleanupAll: %v", kept, err)
	}
}

func TestPlatformCheckerSelf(t *testing.T) {
	checker := platformChecker{}
	if !checker.IsProcessAlive(os.Getpid()) {
		t.Error("IsProcessAlive(self) = false, want true")
	}
	if checker.IsProcessAlive(0) {
		t.Error("IsProcessAlive(0) = true, want false")
	}
}
