package model

// SourceType identifies where a template set came from.
type SourceType int

const (
	// SourceNone indicates no template source was found.
	SourceNone SourceType = iota
	// SourceLocal indicates a user-owned local override directory.
	SourceLocal
	// SourceBundled indicates the template directory shipped with the tool.
	SourceBundled
	// SourceGitHub indicates templates downloaded from a GitHub repository.
	SourceGitHub
)

// String returns the string representation of the source type.
func (t SourceType) String() string {
	switch t {
	case SourceLocal:
		return "local"
	case SourceBundled:
		return "bundled"
	case SourceGitHub:
		return "github"
	case SourceNone:
		return "none"
	default:
		return "unknown"
	}
}

// AttemptOutcome classifies the result of checking one source.
type AttemptOutcome int

const (
	// AttemptFound indicates the source exists and is usable.
	AttemptFound AttemptOutcome = iota
	// AttemptNotFound indicates the source does not exist or is empty.
	AttemptNotFound
	// AttemptSkipped indicates the source was not checked (e.g. offline, force-download).
	AttemptSkipped
	// AttemptError indicates checking the source failed with an error.
	AttemptError
)

// String returns the string representation of the attempt outcome.
func (o AttemptOutcome) String() string {
	switch o {
	case AttemptFound:
		return "found"
	case AttemptNotFound:
		return "not found"
	case AttemptSkipped:
		return "skipped"
	case AttemptError:
		return "error"
	default:
		return "unknown"
	}
}

// Attempt records the outcome of checking a single template source.
type Attempt struct {
	// Source is the tier that was checked.
	Source SourceType
	// Outcome is what happened when the tier was checked.
	Outcome AttemptOutcome
	// Detail is a human-readable explanation (path checked, error text).
	Detail string
	// Err is the error raised while checking, if any.
	Err error
}

// ResolutionResult describes the outcome of a full template resolution.
// Created fresh per Resolve call; immutable once returned.
type ResolutionResult struct {
	// Path is the directory containing the resolved templates.
	Path string
	// Source is the winning source type.
	Source SourceType
	// Attempts lists every source checked, in priority order.
	Attempts []Attempt
	// Notes are human-readable transparency messages explaining the outcome.
	Notes []string
	// CacheDir is the cache directory backing Path when Source is github
	// (or a materialized bundled set). Empty otherwise. The caller owns
	// scheduling its cleanup once the templates have been consumed.
	CacheDir string
}
