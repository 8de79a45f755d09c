package bdd

import (
	"errors"
	"fmt"
)

// ScenarioFailure is an assertion failure caught at the scenario boundary.
// Its message is rendered when read, from the fixture's spec at that time.
type ScenarioFailure struct {
	// Err is the recovered error; it wraps an *AssertionError.
	Err     error
	fixture *Fixture
}

func (f *ScenarioFailure) Error() string {
	if f.fixture == nil {
		return f.Err.Error()
	}
	return fmt.Sprintf("INVALID RESULT:\n  %s\n  (%s)", f.fixture.then.Spec(), f.Err.Error())
}

func (f *ScenarioFailure) Unwrap() error { return f.Err }

// Detail returns the comparison report of the underlying assertion.
func (f *ScenarioFailure) Detail() string {
	var ae *AssertionError
	if errors.As(f.Err, &ae) {
		return ae.Detail
	}
	return ""
}

// Fixture returns the fixture the failure was raised in.
func (f *ScenarioFailure) Fixture() *Fixture { return f.fixture }
