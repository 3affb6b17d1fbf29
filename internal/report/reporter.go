package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"pr-size-check/internal/host/types"
	"pr-size-check/internal/policy"
)

var (
	okLine   = color.New(color.FgGreen)
	warnLine = color.New(color.FgYellow)
	failLine = color.New(color.FgRed, color.Bold)
)

// Reporter renders the advisory comment, posts it best-effort, and prints
// the terminal summary.
type Reporter struct {
	provider types.Provider
	mode     string
}

// New creates a reporter posting through the given provider.
func New(provider types.Provider, mode string) *Reporter {
	return &Reporter{provider: provider, mode: mode}
}

// Report runs the full reporting step and returns the outcome. No comment
// is posted when there is nothing to report, and posting failures never
// change the outcome.
func (r *Reporter) Report(ctx context.Context, result policy.Result) Outcome {
	outcome := Finalize(result, r.mode)

	if result.NothingConsidered {
		okLine.Fprintln(os.Stderr, "✅ All changed files are excluded from the size policy — nothing to check")
		return outcome
	}
	if len(result.Violations) == 0 {
		okLine.Fprintf(os.Stderr, "✅ No issues: %d files changed, %d lines touched\n",
			result.TotalFiles, result.TotalChanges)
		return outcome
	}

	for _, violation := range result.Violations {
		warnLine.Fprintln(os.Stderr, "⚠️  "+violation)
	}

	r.postComment(ctx, result)

	switch outcome {
	case OutcomeFailure:
		failLine.Fprintln(os.Stderr, "❌ Pull request violates the size policy")
	default:
		warnLine.Fprintln(os.Stderr, "⚠️  Violations are advisory; the check passes")
	}

	return outcome
}

// postComment is best-effort: every failure degrades to a warning.
func (r *Reporter) postComment(ctx context.Context, result policy.Result) {
	body, err := RenderComment(result)
	if err != nil {
		slog.Warn("Failed to render advisory comment", "error", err)
		return
	}

	if err := r.provider.PostComment(ctx, body); err != nil {
		if errors.Is(err, types.ErrPermissionDenied) {
			slog.Warn("Could not post advisory comment: the token needs write access to the pull request discussion",
				"error", err)
			fmt.Fprintln(os.Stderr, "Grant the token `pull-requests: write` (or `issues: write`) permission to enable comments.")
			return
		}
		slog.Warn("Could not post advisory comment", "error", err)
		return
	}

	slog.Info("Advisory comment posted")
}
