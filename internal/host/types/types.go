// Package types holds the platform-agnostic data model and the provider
// interface shared by the GitHub and GitLab hosts.
package types

import "context"

// ChangedFile is one file touched by a pull request, as reported by the
// hosting API. Changes is a pointer because some responses omit the combined
// count for certain file types; consumers fall back to Additions+Deletions
// when it is absent.
type ChangedFile struct {
	Path      string
	Status    string
	Additions int
	Deletions int
	Changes   *int
}

// File statuses reported by the hosting APIs.
const (
	StatusAdded    = "added"
	StatusModified = "modified"
	StatusRemoved  = "removed"
	StatusRenamed  = "renamed"
)

// Provider is the hosting-API surface the checker consumes: an existence
// check for the pull request, the complete list of changed files, and a
// single advisory comment post.
type Provider interface {
	// Preflight verifies that the pull request exists and the credential
	// can see it. Runs before any other call.
	Preflight(ctx context.Context) error

	// ChangedFiles returns every file changed in the pull request, merging
	// all pages.
	ChangedFiles(ctx context.Context) ([]ChangedFile, error)

	// PostComment posts one comment on the pull request's discussion thread.
	PostComment(ctx context.Context, body string) error
}
