// Package assets carries the starter template set compiled into the
// binary. Exporting it next to the executable gives a fresh install a
// bundled template tier without any network access.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates
var templateFS embed.FS

// ExportTemplates writes the embedded starter templates into destDir.
// Existing files are only replaced when overwrite is set. Returns the
// number of files written.
func ExportTemplates(destDir string, overwrite bool) (int, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return 0, fmt.Errorf("embedded template set is missing: %w", err)
	}

	written := 0
	err = fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(destDir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}

		content, err := fs.ReadFile(sub, path)
		if err != nil {
			return fmt.Errorf("failed to read embedded file %s: %w", path, err)
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		written++
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

// TemplateNames lists the files in the embedded starter set.
func TemplateNames() ([]string, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	var names []string
	err = fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
