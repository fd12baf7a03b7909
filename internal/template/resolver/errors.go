package resolver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sddkit/sddkit/internal/template/github"
	"github.com/sddkit/sddkit/internal/template/model"
)

// ResolverError is the aggregated failure returned when no template
// source could be resolved. It names every attempted source with its
// specific failure reason plus concrete remediation steps, so the
// message never degrades to a bare "not found".
type ResolverError struct {
	// Attempts lists every source checked, in priority order.
	Attempts []model.Attempt
	// Offline indicates the resolution ran in offline mode.
	Offline bool
	// LocalDir is the local override path that was checked.
	LocalDir string
}

// Error implements the error interface.
func (e *ResolverError) Error() string {
	var b strings.Builder
	b.WriteString("no template source available:")
	for _, attempt := range e.Attempts {
		b.WriteString(fmt.Sprintf("\n  - %s: %s", attempt.Source, attempt.Outcome))
		if attempt.Detail != "" {
			b.WriteString(fmt.Sprintf(" (%s)", attempt.Detail))
		}
	}

	for _, hint := range e.remediation() {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	return b.String()
}

// Unwrap exposes the first underlying attempt error for errors.Is/As.
func (e *ResolverError) Unwrap() error {
	for _, attempt := range e.Attempts {
		if attempt.Err != nil {
			return attempt.Err
		}
	}
	return nil
}

// remediation builds concrete next steps from what actually failed.
func (e *ResolverError) remediation() []string {
	var hints []string
	if e.LocalDir != "" {
		hints = append(hints, fmt.Sprintf("create a local template directory at %s", e.LocalDir))
	}
	if e.Offline {
		hints = append(hints, "offline mode is set; remove --offline to allow downloading from GitHub")
		return hints
	}

	for _, attempt := range e.Attempts {
		if attempt.Source != model.SourceGitHub || attempt.Err == nil {
			continue
		}
		var dlErr *github.DownloadError
		if !errors.As(attempt.Err, &dlErr) {
			continue
		}
		switch dlErr.Type {
		case github.DownloadRateLimited:
			hints = append(hints, fmt.Sprintf("GitHub rate limit: retry after %s",
				time.Now().Add(dlErr.RetryAfter).Format(time.Kitchen)))
		case github.DownloadTimeout:
			hints = append(hints, "the download timed out; retry, or use --offline with a local template directory")
		case github.DownloadNetworkFailed:
			hints = append(hints, "check network connectivity, or use --offline")
		case github.DownloadAPIFailed:
			hints = append(hints, "verify the template repository with --template-repo, or use a local/bundled template directory")
		}
	}
	return hints
}

// NewResolverError creates an aggregated resolution failure.
func NewResolverError(attempts []model.Attempt, offline bool, localDir string) *ResolverError {
	return &ResolverError{
		Attempts: attempts,
		Offline:  offline,
		LocalDir: localDir,
	}
}
