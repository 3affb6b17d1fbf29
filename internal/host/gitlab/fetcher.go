// Package gitlab implements the hosting provider for GitLab merge requests.
// The diffs API reports no per-file line counts, so additions and deletions
// are counted from each unified diff fragment.
package gitlab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"pr-size-check/internal/host/types"
)

// Fetcher reads and comments on a single merge request.
type Fetcher struct {
	client  *gitlab.Client
	project string
	iid     int
}

var _ types.Provider = (*Fetcher)(nil)

// NewFetcher builds a fetcher for one merge request. project is the full
// project path (group/name) or numeric ID.
func NewFetcher(client *gitlab.Client, project string, iid int) *Fetcher {
	return &Fetcher{client: client, project: project, iid: iid}
}

// Preflight verifies that the merge request exists and the token can see it.
func (f *Fetcher) Preflight(ctx context.Context) error {
	_, _, err := f.client.MergeRequests.GetMergeRequest(f.project, int64(f.iid), nil, gitlab.WithContext(ctx))
	if err != nil {
		err = normalize(err)
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("merge request %s!%d: %w", f.project, f.iid, types.ErrNoPullRequest)
		}
		return fmt.Errorf("failed to look up merge request %s!%d: %w", f.project, f.iid, err)
	}
	slog.Debug("Merge request preflight OK", "mr", f.iid)
	return nil
}

// ChangedFiles lists every file changed in the merge request, merging all
// pages until the API reports no next page.
func (f *Fetcher) ChangedFiles(ctx context.Context) ([]types.ChangedFile, error) {
	var all []types.ChangedFile
	opts := &gitlab.ListMergeRequestDiffsOptions{
		ListOptions: gitlab.ListOptions{Page: 1, PerPage: 100},
	}

	for {
		diffs, resp, err := f.client.MergeRequests.ListMergeRequestDiffs(f.project, int64(f.iid), opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, normalize(fmt.Errorf("failed to list changed files for %s!%d (page %d): %w",
				f.project, f.iid, opts.Page, err))
		}

		for _, diff := range diffs {
			all = append(all, convertDiff(diff))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	slog.Debug("Fetched changed files", "mr", f.iid, "files", len(all))
	return all, nil
}

// PostComment posts one note on the merge request's discussion thread.
func (f *Fetcher) PostComment(ctx context.Context, body string) error {
	opts := &gitlab.CreateMergeRequestNoteOptions{Body: gitlab.Ptr(body)}
	if _, _, err := f.client.Notes.CreateMergeRequestNote(f.project, int64(f.iid), opts, gitlab.WithContext(ctx)); err != nil {
		return normalize(fmt.Errorf("failed to comment on %s!%d: %w", f.project, f.iid, err))
	}
	return nil
}

// convertDiff converts a GitLab diff entry to the platform-agnostic record.
// Changes is left absent so consumers fall back to Additions+Deletions.
func convertDiff(diff *gitlab.MergeRequestDiff) types.ChangedFile {
	additions, deletions := countDiffLines(diff.Diff)
	return types.ChangedFile{
		Path:      diff.NewPath,
		Status:    diffStatus(diff),
		Additions: additions,
		Deletions: deletions,
	}
}

func diffStatus(diff *gitlab.MergeRequestDiff) string {
	switch {
	case diff.NewFile:
		return types.StatusAdded
	case diff.DeletedFile:
		return types.StatusRemoved
	case diff.RenamedFile:
		return types.StatusRenamed
	default:
		return types.StatusModified
	}
}

// countDiffLines counts added and removed lines in a unified diff fragment.
// File headers (+++/---) do not count.
func countDiffLines(diff string) (additions, deletions int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

// normalize maps GitLab error responses onto the shared sentinels so callers
// can classify with errors.Is.
func normalize(err error) error {
	if errors.Is(err, gitlab.ErrNotFound) {
		return fmt.Errorf("%w: %w", types.ErrNotFound, err)
	}
	var glErr *gitlab.ErrorResponse
	if errors.As(err, &glErr) && glErr.Response != nil {
		switch glErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", types.ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", types.ErrPermissionDenied, err)
		}
	}
	return err
}
