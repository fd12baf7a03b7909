package app

import (
	"github.com/sddkit/sddkit/internal/assets"
	"github.com/sddkit/sddkit/internal/debug"
	"github.com/sddkit/sddkit/internal/template/resolver"
)

// ExportOptions contains options for exporting bundled templates.
type ExportOptions struct {
	// DestDir is where the starter templates are written. Defaults to
	// the bundled directory next to the executable.
	DestDir string
	// Overwrite replaces files that already exist at the destination.
	Overwrite bool
}

// ExportResult contains the results of a template export.
type ExportResult struct {
	// DestDir is the directory the templates were written to.
	DestDir string
	// FilesWritten is the number of files written.
	FilesWritten int
}

// Export writes the embedded starter template set to the bundled
// template directory, giving offline installs a BUNDLED tier.
func Export(opts ExportOptions) (*ExportResult, error) {
	dest := opts.DestDir
	if dest == "" {
		dest = resolver.DefaultBundledDir()
	}
	if dest == "" {
		return nil, NewExportError("cannot determine bundled template directory; pass --dest", nil)
	}

	debug.DebugSection("[app] export workflow start")
	debug.DebugValue("[app] dest dir", dest)

	written, err := assets.ExportTemplates(dest, opts.Overwrite)
	if err != nil {
		return nil, NewExportError("failed to export bundled templates", err)
	}

	return &ExportResult{DestDir: dest, FilesWritten: written}, nil
}
