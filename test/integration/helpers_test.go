package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sddkit/sddkit/internal/config"
)

// copyFixtureToTemp copies a fixture template directory into tempDir and
// returns the path of the copy.
func copyFixtureToTemp(t *testing.T, fixtureName, tempDir string) string {
	t.Helper()

	fixtureDir, err := filepath.Abs(filepath.Join("../fixtures/templates", fixtureName))
	if err != nil {
		t.Fatalf("failed to get fixture path: %v", err)
	}

	destDir := filepath.Join(tempDir, fixtureName)
	err = filepath.Walk(fixtureDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, data, 0644)
	})
	if err != nil {
		t.Fatalf("failed to copy fixture: %v", err)
	}

	return destDir
}

// testConfig returns a config wired for offline use with the given
// bundled template directory.
func testConfig(bundledDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Templates.BundledDir = bundledDir
	cfg.Templates.Offline = true
	cfg.Output.Progress = false
	return cfg
}

// assertFileExists fails the test when path does not name a regular file.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("expected file %s, got a directory", path)
	}
}
