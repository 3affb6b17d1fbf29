package types

import "errors"

// Sentinel errors shared by both providers. Providers wrap host-library
// errors onto these so callers classify with errors.Is instead of importing
// the client libraries.
var (
	// ErrNoCredential means no token could be resolved. Fatal before any
	// network call.
	ErrNoCredential = errors.New("no credential available")

	// ErrNoPullRequest means the invocation has no associated pull request.
	ErrNoPullRequest = errors.New("no pull request associated with this run")

	// ErrNotFound is a 404 from the hosting API.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is a 403 from the hosting API. For comment posts
	// this usually means the token lacks write access.
	ErrPermissionDenied = errors.New("permission denied")
)
