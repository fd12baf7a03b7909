package model

import (
	"fmt"
	"strings"
)

// RepoRef identifies a GitHub repository, ref and template subfolder.
type RepoRef struct {
	// Owner is the repository owner (user or organization).
	Owner string
	// Repo is the repository name.
	Repo string
	// Ref is the branch, tag, or commit SHA.
	Ref string
	// Subfolder is the path of the template directory inside the repository.
	Subfolder string
}

// ParseRepo parses an "owner/repo" string into a RepoRef.
// Ref and Subfolder are left empty for the caller to fill in.
func ParseRepo(s string) (RepoRef, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("invalid repository %q: expected owner/repo", s)
	}
	return RepoRef{Owner: parts[0], Repo: parts[1]}, nil
}

// String formats the ref as a human-readable identifier.
func (r RepoRef) String() string {
	s := fmt.Sprintf("github.com/%s/%s", r.Owner, r.Repo)
	if r.Subfolder != "" {
		s = fmt.Sprintf("%s/%s", s, r.Subfolder)
	}
	if r.Ref != "" && r.Ref != "main" {
		s = fmt.Sprintf("%s@%s", s, r.Ref)
	}
	return s
}
