package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sddkit/sddkit/internal/app"
	"github.com/sddkit/sddkit/internal/template/model"
)

// TestCheck_PriorityReporting verifies that check reports each tier's
// availability and picks the highest-priority available one.
func TestCheck_PriorityReporting(t *testing.T) {
	tempDir := t.TempDir()
	bundledDir := copyFixtureToTemp(t, "starter", tempDir)
	projectDir := filepath.Join(tempDir, "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(bundledDir)
	cfg.Templates.Offline = false

	result, err := app.Check(app.CheckOptions{ProjectDir: projectDir, Config: cfg})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if len(result.Sources) != 3 {
		t.Fatalf("sources = %d, want 3", len(result.Sources))
	}
	if result.Sources[0].Source != model.SourceLocal || result.Sources[0].Available {
		t.Errorf("local tier: got %+v, want unavailable", result.Sources[0])
	}
	if result.Sources[1].Source != model.SourceBundled || !result.Sources[1].Available {
		t.Errorf("bundled tier: got %+v, want available", result.Sources[1])
	}
	if result.Sources[2].Source != model.SourceGitHub || !result.Sources[2].Available {
		t.Errorf("github tier: got %+v, want available", result.Sources[2])
	}
	if result.WouldUse != model.SourceBundled {
		t.Errorf("WouldUse = %s, want %s", result.WouldUse, model.SourceBundled)
	}

	// A local override beats everything once it exists.
	localDir := filepath.Join(projectDir, ".sdd", "templates")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(localDir, "spec.md"), []byte("# x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err = app.Check(app.CheckOptions{ProjectDir: projectDir, Config: cfg})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.WouldUse != model.SourceLocal {
		t.Errorf("WouldUse = %s, want %s", result.WouldUse, model.SourceLocal)
	}
}

// TestCheck_OfflineNoSources verifies the none outcome when every tier
// is unavailable.
func TestCheck_OfflineNoSources(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := app.Check(app.CheckOptions{
		ProjectDir: projectDir,
		Config:     testConfig(filepath.Join(tempDir, "missing")),
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.WouldUse != model.SourceNone {
		t.Errorf("WouldUse = %s, want %s", result.WouldUse, model.SourceNone)
	}
}
