package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sddkit/sddkit/internal/app"
	"github.com/sddkit/sddkit/internal/template/model"
)

// TestInit_BundledTemplates initializes a project from the bundled tier
// and verifies the copied files and the provenance record.
func TestInit_BundledTemplates(t *testing.T) {
	tempDir := t.TempDir()
	bundledDir := copyFixtureToTemp(t, "starter", tempDir)
	projectDir := filepath.Join(tempDir, "my-service")

	result, err := app.Init(context.Background(), app.InitOptions{
		ProjectDir: projectDir,
		Assistant:  "claude",
		Config:     testConfig(bundledDir),
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if result.Resolution.Source != model.SourceBundled {
		t.Errorf("source = %s, want %s", result.Resolution.Source, model.SourceBundled)
	}
	if result.FilesCopied != 3 {
		t.Errorf("FilesCopied = %d, want 3", result.FilesCopied)
	}

	for _, name := range []string{"spec.md", "plan.md", "tasks.md"} {
		assertFileExists(t, filepath.Join(projectDir, ".sdd", "templates", name))
	}

	prov, err := app.ReadProvenance(filepath.Join(projectDir, ".sdd"))
	if err != nil {
		t.Fatalf("ReadProvenance failed: %v", err)
	}
	if prov.Source != "bundled" {
		t.Errorf("provenance source = %q, want %q", prov.Source, "bundled")
	}
	if prov.Assistant != "claude" {
		t.Errorf("provenance assistant = %q, want %q", prov.Assistant, "claude")
	}
	if prov.ToolVersion == "" {
		t.Error("provenance tool_version is empty")
	}
	if len(prov.Attempts) < 2 {
		t.Fatalf("provenance attempts = %d, want at least 2", len(prov.Attempts))
	}
	if prov.Attempts[0].Source != "local" || prov.Attempts[0].Outcome != "not found" {
		t.Errorf("first attempt = %s/%s, want local/not found",
			prov.Attempts[0].Source, prov.Attempts[0].Outcome)
	}
	if prov.Attempts[1].Source != "bundled" || prov.Attempts[1].Outcome != "found" {
		t.Errorf("second attempt = %s/%s, want bundled/found",
			prov.Attempts[1].Source, prov.Attempts[1].Outcome)
	}
}

// TestInit_LocalOverrideInPlace verifies that a project whose local
// override already sits at .sdd/templates is used as-is, with no copy
// and no modification of the user's files.
func TestInit_LocalOverrideInPlace(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	localDir := filepath.Join(projectDir, ".sdd", "templates")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := []byte("# my own spec template\n")
	if err := os.WriteFile(filepath.Join(localDir, "spec.md"), content, 0644); err != nil {
		t.Fatal(err)
	}

	result, err := app.Init(context.Background(), app.InitOptions{
		ProjectDir: projectDir,
		Assistant:  "copilot",
		Config:     testConfig(""),
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if result.Resolution.Source != model.SourceLocal {
		t.Errorf("source = %s, want %s", result.Resolution.Source, model.SourceLocal)
	}
	if result.FilesCopied != 0 {
		t.Errorf("FilesCopied = %d, want 0 for an in-place local override", result.FilesCopied)
	}

	got, err := os.ReadFile(filepath.Join(localDir, "spec.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Error("local override file was modified")
	}
}

// TestInit_OfflineNoSources verifies that init fails with a useful
// error when offline and neither local nor bundled templates exist.
func TestInit_OfflineNoSources(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")

	_, err := app.Init(context.Background(), app.InitOptions{
		ProjectDir: projectDir,
		Assistant:  "claude",
		Config:     testConfig(filepath.Join(tempDir, "missing-bundled")),
	})
	if err == nil {
		t.Fatal("expected error when offline with no available sources")
	}
}

// TestInit_ForceDownloadKeepsLocal verifies that force-download never
// overrides an existing local template directory.
func TestInit_ForceDownloadKeepsLocal(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	localDir := filepath.Join(projectDir, ".sdd", "templates")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(localDir, "spec.md"), []byte("# local\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig("")
	cfg.Templates.Offline = false
	cfg.Templates.ForceDownload = true

	result, err := app.Init(context.Background(), app.InitOptions{
		ProjectDir: projectDir,
		Assistant:  "claude",
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if result.Resolution.Source != model.SourceLocal {
		t.Errorf("source = %s, want %s", result.Resolution.Source, model.SourceLocal)
	}
}
