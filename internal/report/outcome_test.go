package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pr-size-check/internal/policy"
)

func TestFinalize(t *testing.T) {
	overLimit := policy.Result{
		Violations:     []string{"Total changed lines 500 exceed the limit of 400"},
		LimitsExceeded: true,
	}
	advisoryOnly := policy.Result{
		Violations: []string{"No changes under a test directory (test, tests, __tests__)"},
	}
	clean := policy.Result{}
	excluded := policy.Result{NothingConsidered: true}

	cases := []struct {
		name   string
		result policy.Result
		mode   string
		want   Outcome
	}{
		{"no violations", clean, policy.ModeFail, OutcomeSuccess},
		{"nothing considered", excluded, policy.ModeFail, OutcomeSuccess},
		{"over limit warn", overLimit, policy.ModeWarn, OutcomeWarning},
		{"over limit fail", overLimit, policy.ModeFail, OutcomeFailure},
		// The missing-tests finding is advisory in every mode: reported,
		// but never the reason a run fails.
		{"missing tests only warn", advisoryOnly, policy.ModeWarn, OutcomeWarning},
		{"missing tests only fail", advisoryOnly, policy.ModeFail, OutcomeWarning},
		// Unknown modes behave like warn; their semantics are otherwise
		// undefined, so this pins the non-fatal choice.
		{"over limit unknown mode", overLimit, "strict", OutcomeWarning},
		{"over limit empty mode", overLimit, "", OutcomeWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Finalize(tc.result, tc.mode))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "warning", OutcomeWarning.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
}
