package report

import "pr-size-check/internal/policy"

// Outcome is the final signal for the host environment.
type Outcome int

const (
	// OutcomeSuccess means no violations (or nothing was considered).
	OutcomeSuccess Outcome = iota
	// OutcomeWarning means violations exist but the run still passes.
	OutcomeWarning
	// OutcomeFailure means violations exist and the mode is fail.
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWarning:
		return "warning"
	case OutcomeFailure:
		return "failure"
	default:
		return "success"
	}
}

// Finalize maps an evaluation result and the configured mode onto the run
// outcome. Only fail mode escalates, and only for exceeded limits: the
// missing-tests advisory is reported but never fails the run on its own.
func Finalize(result policy.Result, mode string) Outcome {
	if result.NothingConsidered || len(result.Violations) == 0 {
		return OutcomeSuccess
	}
	if mode == policy.ModeFail && result.LimitsExceeded {
		return OutcomeFailure
	}
	return OutcomeWarning
}
