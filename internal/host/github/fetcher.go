// Package github implements the hosting provider for GitHub pull requests.
// The existence preflight goes through GraphQL (one cheap round trip that
// also validates the token); file listing and comment posting use REST.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"

	"pr-size-check/internal/host/httpretry"
	"pr-size-check/internal/host/types"
)

// Fetcher reads and comments on a single pull request.
type Fetcher struct {
	rest   *github.Client
	gql    *githubv4.Client
	owner  string
	repo   string
	number int
}

var _ types.Provider = (*Fetcher)(nil)

// NewFetcher builds a fetcher for one pull request. All calls ride a
// retrying, rate-limit-aware transport bounded by retries.
func NewFetcher(token, owner, repo string, number, retries int) (*Fetcher, error) {
	httpClient, err := newHTTPClient(token, retries, httpretry.DefaultDelayUnit)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		rest:   github.NewClient(httpClient),
		gql:    githubv4.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
		number: number,
	}, nil
}

// Preflight verifies the token and the pull request in a single GraphQL
// round trip.
func (f *Fetcher) Preflight(ctx context.Context) error {
	var q struct {
		Repository struct {
			PullRequest struct {
				Number githubv4.Int
				State  githubv4.String
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner":  githubv4.String(f.owner),
		"name":   githubv4.String(f.repo),
		"number": githubv4.Int(f.number),
	}

	if err := f.gql.Query(ctx, &q, variables); err != nil {
		return f.classifyPreflightError(ctx, err)
	}

	slog.Debug("Pull request preflight OK", "pr", f.number, "state", string(q.Repository.PullRequest.State))
	return nil
}

// classifyPreflightError decides whether a failed preflight means the pull
// request does not exist. GraphQL reports a missing object only through its
// error message text, so the classification is confirmed with a typed REST
// lookup instead of matching that text.
func (f *Fetcher) classifyPreflightError(ctx context.Context, qerr error) error {
	if _, _, restErr := f.rest.PullRequests.Get(ctx, f.owner, f.repo, f.number); restErr != nil {
		if errors.Is(normalize(restErr), types.ErrNotFound) {
			return fmt.Errorf("pull request %s/%s#%d: %w", f.owner, f.repo, f.number, types.ErrNoPullRequest)
		}
	}
	return fmt.Errorf("failed to look up pull request %s/%s#%d: %w", f.owner, f.repo, f.number, qerr)
}

// ChangedFiles lists every file changed in the pull request, merging all
// pages until the API reports no next page.
func (f *Fetcher) ChangedFiles(ctx context.Context) ([]types.ChangedFile, error) {
	var all []types.ChangedFile
	opts := &github.ListOptions{Page: 1, PerPage: 100}

	for {
		files, resp, err := f.rest.PullRequests.ListFiles(ctx, f.owner, f.repo, f.number, opts)
		if err != nil {
			return nil, normalize(fmt.Errorf("failed to list changed files for %s/%s#%d (page %d): %w",
				f.owner, f.repo, f.number, opts.Page, err))
		}

		for _, file := range files {
			all = append(all, convertFile(file))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	slog.Debug("Fetched changed files", "pr", f.number, "files", len(all))
	return all, nil
}

// PostComment posts one comment on the pull request's discussion thread.
func (f *Fetcher) PostComment(ctx context.Context, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := f.rest.Issues.CreateComment(ctx, f.owner, f.repo, f.number, comment); err != nil {
		return normalize(fmt.Errorf("failed to comment on %s/%s#%d: %w", f.owner, f.repo, f.number, err))
	}
	return nil
}

// convertFile converts a GitHub CommitFile to the platform-agnostic record.
// Changes stays a pointer: GitHub omits it for some file types.
func convertFile(file *github.CommitFile) types.ChangedFile {
	return types.ChangedFile{
		Path:      file.GetFilename(),
		Status:    file.GetStatus(),
		Additions: file.GetAdditions(),
		Deletions: file.GetDeletions(),
		Changes:   file.Changes,
	}
}

// normalize maps GitHub error responses onto the shared sentinels so callers
// can classify with errors.Is.
func normalize(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", types.ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", types.ErrPermissionDenied, err)
		}
	}
	return err
}
