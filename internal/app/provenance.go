package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sddkit/sddkit/internal/build"
	"github.com/sddkit/sddkit/internal/template/model"
)

// provenanceFile is the file recording where a project's templates came
// from, relative to the project's .sdd directory.
const provenanceFile = "provenance.json"

// Provenance records which source produced a project's templates and
// why the alternatives were rejected.
type Provenance struct {
	// Source is the winning source type name.
	Source string `json:"source"`
	// Repo is the GitHub repository, for github-sourced templates.
	Repo string `json:"repo,omitempty"`
	// Ref is the git ref, for github-sourced templates.
	Ref string `json:"ref,omitempty"`
	// Assistant is the AI assistant flavor chosen at init time.
	Assistant string `json:"assistant,omitempty"`
	// ToolVersion is the sddkit version that performed the init.
	ToolVersion string `json:"tool_version"`
	// ResolvedAt is when the resolution happened.
	ResolvedAt time.Time `json:"resolved_at"`
	// Attempts lists each source checked with its outcome.
	Attempts []ProvenanceAttempt `json:"attempts"`
}

// ProvenanceAttempt is one entry of the per-source attempt log.
type ProvenanceAttempt struct {
	// Source is the source type name.
	Source string `json:"source"`
	// Outcome is the attempt outcome name.
	Outcome string `json:"outcome"`
	// Detail explains the outcome.
	Detail string `json:"detail,omitempty"`
}

// newProvenance converts a resolution result into a provenance record.
func newProvenance(result *model.ResolutionResult, repo model.RepoRef, assistant string) *Provenance {
	p := &Provenance{
		Source:      result.Source.String(),
		Assistant:   assistant,
		ToolVersion: build.Version(),
		ResolvedAt:  time.Now().UTC(),
	}
	if result.Source == model.SourceGitHub {
		p.Repo = repo.Owner + "/" + repo.Repo
		p.Ref = repo.Ref
	}
	for _, attempt := range result.Attempts {
		p.Attempts = append(p.Attempts, ProvenanceAttempt{
			Source:  attempt.Source.String(),
			Outcome: attempt.Outcome.String(),
			Detail:  attempt.Detail,
		})
	}
	return p
}

// writeProvenance stores the provenance record under the project's
// .sdd directory.
func writeProvenance(sddDir string, p *Provenance) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(sddDir, provenanceFile), append(data, '\n'), 0o644)
}

// ReadProvenance loads the provenance record of an initialized project.
func ReadProvenance(sddDir string) (*Provenance, error) {
	data, err := os.ReadFile(filepath.Join(sddDir, provenanceFile))
	if err != nil {
		return nil, err
	}
	var p Provenance
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
