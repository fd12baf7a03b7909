package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sddkit/sddkit/internal/app"
	"github.com/sddkit/sddkit/internal/template/model"
)

// TestExportThenInit exercises the fresh-install flow: export the
// embedded starter set to a bundled directory, then initialize a
// project from it without any network access.
func TestExportThenInit(t *testing.T) {
	tempDir := t.TempDir()
	bundledDir := filepath.Join(tempDir, "bundled")

	exported, err := app.Export(app.ExportOptions{DestDir: bundledDir})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exported.FilesWritten == 0 {
		t.Fatal("Export wrote no files")
	}

	projectDir := filepath.Join(tempDir, "project")
	result, err := app.Init(context.Background(), app.InitOptions{
		ProjectDir: projectDir,
		Assistant:  "gemini",
		Config:     testConfig(bundledDir),
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if result.Resolution.Source != model.SourceBundled {
		t.Errorf("source = %s, want %s", result.Resolution.Source, model.SourceBundled)
	}
	if result.FilesCopied != exported.FilesWritten {
		t.Errorf("FilesCopied = %d, want %d", result.FilesCopied, exported.FilesWritten)
	}
	assertFileExists(t, filepath.Join(projectDir, ".sdd", "templates", "spec.md"))
}

// TestExportNoOverwrite verifies that a second export leaves existing
// files alone unless overwrite is requested.
func TestExportNoOverwrite(t *testing.T) {
	tempDir := t.TempDir()
	bundledDir := filepath.Join(tempDir, "bundled")

	first, err := app.Export(app.ExportOptions{DestDir: bundledDir})
	if err != nil {
		t.Fatalf("first Export failed: %v", err)
	}

	second, err := app.Export(app.ExportOptions{DestDir: bundledDir})
	if err != nil {
		t.Fatalf("second Export failed: %v", err)
	}
	if second.FilesWritten != 0 {
		t.Errorf("second export wrote %d files, want 0", second.FilesWritten)
	}

	third, err := app.Export(app.ExportOptions{DestDir: bundledDir, Overwrite: true})
	if err != nil {
		t.Fatalf("overwrite Export failed: %v", err)
	}
	if third.FilesWritten != first.FilesWritten {
		t.Errorf("overwrite export wrote %d files, want %d", third.FilesWritten, first.FilesWritten)
	}
}
