package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Templates.Repo != DefaultTemplateRepo {
		t.Errorf("default repo = %s, want %s", cfg.Templates.Repo, DefaultTemplateRepo)
	}
	if cfg.Templates.LocalDir != DefaultLocalDir {
		t.Errorf("default local dir = %s, want %s", cfg.Templates.LocalDir, DefaultLocalDir)
	}
	if cfg.GitHub.TimeoutSeconds != 30 {
		t.Errorf("default timeout = %d, want 30", cfg.GitHub.TimeoutSeconds)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Templates.Repo != DefaultTemplateRepo {
		t.Errorf("repo = %s, want default", cfg.Templates.Repo)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
  "templates": {"repo": "myorg/my-templates", "ref": "v2.0.0"},
  "output": {"quiet": true}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Templates.Repo != "myorg/my-templates" {
		t.Errorf("repo = %s, want myorg/my-templates", cfg.Templates.Repo)
	}
	if cfg.Templates.Ref != "v2.0.0" {
		t.Errorf("ref = %s, want v2.0.0", cfg.Templates.Ref)
	}
	if !cfg.Output.Quiet {
		t.Error("quiet = false, want true from file")
	}
	// Unset fields keep their defaults.
	if cfg.Templates.Subfolder != DefaultTemplateSubfolder {
		t.Errorf("subfolder = %s, want default", cfg.Templates.Subfolder)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Load() succeeded for a missing explicit file")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() succeeded for invalid JSON")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SDDKIT_TEMPLATES_REPO", "envorg/env-templates")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Templates.Repo != "envorg/env-templates" {
		t.Errorf("repo = %s, want env override", cfg.Templates.Repo)
	}
}

func TestLoadGitHubTokenFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "tok-123")
	t.Setenv("GH_TOKEN", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GitHub.Token != "tok-123" {
		t.Errorf("token = %s, want tok-123", cfg.GitHub.Token)
	}
}
