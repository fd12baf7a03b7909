package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantField string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name:      "empty repo",
			mutate:    func(cfg *Config) { cfg.Templates.Repo = "" },
			wantField: "templates.repo",
		},
		{
			name:      "malformed repo",
			mutate:    func(cfg *Config) { cfg.Templates.Repo = "just-a-name" },
			wantField: "templates.repo",
		},
		{
			name:      "empty ref",
			mutate:    func(cfg *Config) { cfg.Templates.Ref = "" },
			wantField: "templates.ref",
		},
		{
			name:      "ref with whitespace",
			mutate:    func(cfg *Config) { cfg.Templates.Ref = "main branch" },
			wantField: "templates.ref",
		},
		{
			name:      "absolute local dir",
			mutate:    func(cfg *Config) { cfg.Templates.LocalDir = "/etc/templates" },
			wantField: "templates.local_dir",
		},
		{
			name:      "subfolder with traversal",
			mutate:    func(cfg *Config) { cfg.Templates.Subfolder = "../outside" },
			wantField: "templates.subfolder",
		},
		{
			name:      "zero timeout",
			mutate:    func(cfg *Config) { cfg.GitHub.TimeoutSeconds = 0 },
			wantField: "github.timeout_seconds",
		},
		{
			name: "offline with force download",
			mutate: func(cfg *Config) {
				cfg.Templates.Offline = true
				cfg.Templates.ForceDownload = true
			},
			wantField: "templates.force_download",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() succeeded, want field error")
			}
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("field = %s, want %s", cfgErr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not name field %s", err.Error(), tt.wantField)
			}
		})
	}
}
