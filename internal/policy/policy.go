// Package policy holds the evaluation core: given the changed files of a
// pull request and a resolved policy, decide which rules are violated.
// Evaluation is a pure pass over the file list with no I/O.
package policy

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"pr-size-check/internal/host/types"
)

// Run modes. Only ModeFail escalates violations to a failed run; any other
// value behaves like ModeWarn.
const (
	ModeWarn = "warn"
	ModeFail = "fail"
)

// Config is the effective policy for one run, immutable after resolution.
type Config struct {
	MaxLines     int
	MaxFiles     int
	TestDirNames []string
	ExcludeGlobs []string
	Mode         string
	RetryCount   int
}

// FileDelta is one surviving file with its effective line delta.
type FileDelta struct {
	Path  string
	Delta int
}

// Result is the outcome of evaluating one changed-file list.
type Result struct {
	TotalFiles   int
	TotalChanges int
	TestsTouched bool

	// Violations in fixed order: line count, file count, missing tests.
	Violations []string

	// LimitsExceeded is set when a line or file threshold was exceeded.
	// The missing-tests advisory alone never sets it, so it never fails
	// the run on its own.
	LimitsExceeded bool

	// Files are the surviving files, for reporting.
	Files []FileDelta

	// NothingConsidered is set when the exclusion filter left no files to
	// police; no other field is meaningful then.
	NothingConsidered bool
}

// Evaluate applies the policy rules in order: exclusion globs, pure-rename
// neutrality, per-file delta aggregation, test-touch detection, threshold
// checks.
func Evaluate(files []types.ChangedFile, cfg Config) Result {
	matchers := compileGlobs(cfg.ExcludeGlobs)

	kept := make([]types.ChangedFile, 0, len(files))
	for _, file := range files {
		if excluded(file.Path, matchers) {
			slog.Debug("File excluded from policy", "path", file.Path)
			continue
		}
		kept = append(kept, file)
	}

	// Everything excluded (or an empty change set) means there is nothing
	// to police. Rename-only drops below do NOT short-circuit this way.
	if len(kept) == 0 {
		return Result{NothingConsidered: true}
	}

	var result Result
	for _, file := range kept {
		delta := fileDelta(file)

		// A pure rename changes no content and must not count.
		if file.Status == types.StatusRenamed && delta == 0 {
			continue
		}

		result.TotalFiles++
		result.TotalChanges += delta
		result.Files = append(result.Files, FileDelta{Path: file.Path, Delta: delta})
		if touchesTests(file.Path, cfg.TestDirNames) {
			result.TestsTouched = true
		}
	}

	if result.TotalChanges > cfg.MaxLines {
		result.LimitsExceeded = true
		result.Violations = append(result.Violations,
			fmt.Sprintf("Total changed lines %d exceed the limit of %d", result.TotalChanges, cfg.MaxLines))
	}
	if result.TotalFiles > cfg.MaxFiles {
		result.LimitsExceeded = true
		result.Violations = append(result.Violations,
			fmt.Sprintf("Changed file count %d exceeds the limit of %d", result.TotalFiles, cfg.MaxFiles))
	}
	if !result.TestsTouched {
		result.Violations = append(result.Violations,
			fmt.Sprintf("No changes under a test directory (%s)", strings.Join(cfg.TestDirNames, ", ")))
	}

	return result
}

// fileDelta prefers the API-reported combined count and falls back to
// additions+deletions when the API omitted it.
func fileDelta(file types.ChangedFile) int {
	if file.Changes != nil {
		return *file.Changes
	}
	return file.Additions + file.Deletions
}

// touchesTests reports whether any path segment exactly equals one of the
// configured test directory names. Segment equality only: mytest/foo.js
// does not touch "test".
func touchesTests(path string, testDirs []string) bool {
	for _, segment := range strings.Split(path, "/") {
		if slices.Contains(testDirs, segment) {
			return true
		}
	}
	return false
}

// compileGlobs compiles exclusion patterns with '/' as the segment
// separator, so * stays within a segment and ** crosses segments. Invalid
// patterns are skipped with a warning rather than aborting the run.
func compileGlobs(patterns []string) []glob.Glob {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			slog.Warn("Ignoring invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		matchers = append(matchers, g)
	}
	return matchers
}

func excluded(path string, matchers []glob.Glob) bool {
	for _, m := range matchers {
		if m.Match(path) {
			return true
		}
	}
	return false
}
