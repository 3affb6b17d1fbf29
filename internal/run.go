package internal

import (
	"context"
	"fmt"
	"log/slog"

	"pr-size-check/internal/host/types"
	"pr-size-check/internal/policy"
	"pr-size-check/internal/report"
)

// Checker runs one policy check: preflight, fetch, evaluate, report.
type Checker struct {
	provider types.Provider
	policy   policy.Config
}

// NewChecker wires a checker for one pull request.
func NewChecker(provider types.Provider, cfg policy.Config) *Checker {
	return &Checker{provider: provider, policy: cfg}
}

// Run executes the check. Fetch-phase errors are fatal; reporting failures
// degrade to warnings inside the reporter and never affect the outcome.
func (c *Checker) Run(ctx context.Context) (report.Outcome, error) {
	if err := c.provider.Preflight(ctx); err != nil {
		return report.OutcomeFailure, err
	}

	files, err := c.provider.ChangedFiles(ctx)
	if err != nil {
		return report.OutcomeFailure, fmt.Errorf("failed to fetch changed files: %w", err)
	}
	slog.Debug("Changed files fetched", "count", len(files))

	result := policy.Evaluate(files, c.policy)
	slog.Debug("Policy evaluated",
		"total_files", result.TotalFiles,
		"total_changes", result.TotalChanges,
		"tests_touched", result.TestsTouched,
		"violations", len(result.Violations))

	reporter := report.New(c.provider, c.policy.Mode)
	return reporter.Report(ctx, result), nil
}
