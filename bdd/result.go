package bdd

import (
	"errors"
	"testing"
)

// Result receives scenario outcomes.
type Result interface {
	AddSuccess(sc *Scenario)
	AddFailure(sc *Scenario, failure *ScenarioFailure)
	AddError(sc *Scenario, err error)
}

// Outcome pairs a scenario with the error it ended with.
type Outcome struct {
	Scenario *Scenario
	Err      error
}

// Summary is a Result that records every outcome.
type Summary struct {
	Successes []*Scenario
	Failures  []Outcome
	Errors    []Outcome
}

var _ Result = (*Summary)(nil)

func (s *Summary) AddSuccess(sc *Scenario) {
	s.Successes = append(s.Successes, sc)
}

func (s *Summary) AddFailure(sc *Scenario, failure *ScenarioFailure) {
	s.Failures = append(s.Failures, Outcome{Scenario: sc, Err: failure})
}

func (s *Summary) AddError(sc *Scenario, err error) {
	s.Errors = append(s.Errors, Outcome{Scenario: sc, Err: err})
}

// Total returns the number of recorded outcomes.
func (s *Summary) Total() int {
	return len(s.Successes) + len(s.Failures) + len(s.Errors)
}

// OK reports whether every recorded scenario succeeded.
func (s *Summary) OK() bool {
	return len(s.Failures) == 0 && len(s.Errors) == 0
}

type tbResult struct{ t testing.TB }

// TBResult returns a Result that marks t failed for failures and errors and
// logs their messages.
func TBResult(t testing.TB) Result { return tbResult{t: t} }

func (r tbResult) AddSuccess(*Scenario) {}

func (r tbResult) AddFailure(_ *Scenario, failure *ScenarioFailure) {
	r.t.Helper()
	msg := failure.Error()
	if d := failure.Detail(); d != "" {
		msg += "\n" + d
	}
	r.t.Error(msg)
}

func (r tbResult) AddError(sc *Scenario, err error) {
	r.t.Helper()
	r.t.Errorf("%s: error: %v", sc, err)
	var pe *PanicError
	if errors.As(err, &pe) {
		r.t.Logf("%s", pe.Stack)
	}
}
