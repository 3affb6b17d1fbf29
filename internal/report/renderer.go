// Package report turns an evaluation result into the advisory comment, the
// terminal summary and the final run outcome.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"text/template"

	"github.com/montanaflynn/stats"

	"pr-size-check/internal/policy"
)

//go:embed comment_template.md
var commentTemplateText string

var commentTemplate *template.Template

func init() {
	commentTemplate = template.Must(
		template.New("comment").Funcs(templateFuncs()).Parse(commentTemplateText),
	)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"yesNo":  yesNo,
		"plural": plural,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// commentData feeds the comment template.
type commentData struct {
	Violations   []string
	TotalFiles   int
	TotalChanges int
	TestsTouched bool
	Largest      []policy.FileDelta
	MedianDelta  float64
}

// maxLargestFiles bounds the "largest changes" table in the comment.
const maxLargestFiles = 3

// RenderComment formats the advisory comment for a result with violations.
func RenderComment(result policy.Result) (string, error) {
	data := commentData{
		Violations:   result.Violations,
		TotalFiles:   result.TotalFiles,
		TotalChanges: result.TotalChanges,
		TestsTouched: result.TestsTouched,
		Largest:      largestFiles(result.Files, maxLargestFiles),
		MedianDelta:  medianDelta(result.Files),
	}

	var buf bytes.Buffer
	if err := commentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render comment: %w", err)
	}
	return buf.String(), nil
}

// largestFiles returns up to n files sorted by descending delta.
func largestFiles(files []policy.FileDelta, n int) []policy.FileDelta {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b policy.FileDelta) int {
		return b.Delta - a.Delta
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func medianDelta(files []policy.FileDelta) float64 {
	if len(files) == 0 {
		return 0
	}
	deltas := make([]float64, len(files))
	for i, file := range files {
		deltas[i] = float64(file.Delta)
	}
	median, err := stats.Median(deltas)
	if err != nil {
		return 0
	}
	return median
}
