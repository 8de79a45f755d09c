package bdd

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// ScenarioFunc is the body of a scenario.
type ScenarioFunc func(given *Given, when *When, then *Then)

// Scenario is one registered scenario procedure.
type Scenario struct {
	// Name is the method name, or the registered description.
	Name string
	// Description is the display name.
	Description string
	Fn          ScenarioFunc
}

func (s *Scenario) String() string { return "Scenario: " + s.Description }

// Suite is an ordered group of scenarios with optional per-scenario and
// per-suite hooks.
type Suite struct {
	scenarios []*Scenario
	cfg       Config
	log       *zap.Logger

	setUp, tearDown           func()
	setUpSuite, tearDownSuite func()
}

// NewSuite returns an empty suite.
func NewSuite(opts ...Option) *Suite {
	s := newSettings(opts)
	return &Suite{cfg: s.cfg, log: s.log}
}

// Add registers fn under description.
func (s *Suite) Add(description string, fn ScenarioFunc) *Suite {
	s.scenarios = append(s.scenarios, &Scenario{Name: description, Description: description, Fn: fn})
	return s
}

// Scenarios returns the registered scenarios in run order.
func (s *Suite) Scenarios() []*Scenario { return s.scenarios }

// BeforeEach sets the hook run before every scenario.
func (s *Suite) BeforeEach(fn func()) *Suite { s.setUp = fn; return s }

// AfterEach sets the hook run after every scenario, whatever its outcome.
func (s *Suite) AfterEach(fn func()) *Suite { s.tearDown = fn; return s }

// BeforeAll sets the hook run once before the first scenario.
func (s *Suite) BeforeAll(fn func()) *Suite { s.setUpSuite = fn; return s }

// AfterAll sets the hook run once after the last scenario.
func (s *Suite) AfterAll(fn func()) *Suite { s.tearDownSuite = fn; return s }

var scenarioFuncType = reflect.TypeFor[func(*Given, *When, *Then)]()

// Discover builds a suite from the methods of v whose names start with the
// configured prefix, in name order. The optional methods SetUp, TearDown,
// SetUpSuite, and TearDownSuite of v become the suite hooks.
func Discover(v any, opts ...Option) (*Suite, error) {
	s := NewSuite(opts...)
	prefix := s.cfg.Prefix

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil suite", ErrBadScenario)
	}
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !strings.HasPrefix(m.Name, prefix) || m.Name == prefix {
			continue
		}
		fn := rv.Method(i)
		if fn.Type() != scenarioFuncType {
			return nil, fmt.Errorf("%w: %s has signature %s", ErrBadScenario, m.Name, fn.Type())
		}
		s.scenarios = append(s.scenarios, &Scenario{
			Name:        m.Name,
			Description: ScenarioName(m.Name, prefix),
			Fn:          ScenarioFunc(fn.Interface().(func(*Given, *When, *Then))),
		})
	}

	if h, ok := v.(interface{ SetUp() }); ok {
		s.BeforeEach(h.SetUp)
	}
	if h, ok := v.(interface{ TearDown() }); ok {
		s.AfterEach(h.TearDown)
	}
	if h, ok := v.(interface{ SetUpSuite() }); ok {
		s.BeforeAll(h.SetUpSuite)
	}
	if h, ok := v.(interface{ TearDownSuite() }); ok {
		s.AfterAll(h.TearDownSuite)
	}
	s.log.Debug("scenarios discovered", zap.String("suite", rt.String()), zap.Int("count", len(s.scenarios)))
	return s, nil
}

// Run runs every scenario and reports each outcome to result.
func (s *Suite) Run(result Result) error {
	if len(s.scenarios) == 0 {
		return nil
	}
	if err := guard(s.setUpSuite); err != nil {
		return fmt.Errorf("set up suite: %w", err)
	}
	for _, sc := range s.scenarios {
		report(result, sc, s.RunScenario(sc))
	}
	if err := guard(s.tearDownSuite); err != nil {
		return fmt.Errorf("tear down suite: %w", err)
	}
	return nil
}

// RunScenario runs one scenario against a fresh fixture. It returns nil on
// success, a *ScenarioFailure when an assertion failed, and any other error
// as fatal. The tear down hook runs on every path once set up succeeded.
func (s *Suite) RunScenario(sc *Scenario) (err error) {
	f := NewFixture(s.log.With(zap.String("scenario", sc.Description)))
	if err := guard(s.setUp); err != nil {
		return fmt.Errorf("set up: %w", err)
	}
	defer func() {
		if terr := guard(s.tearDown); terr != nil && err == nil {
			err = fmt.Errorf("tear down: %w", terr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err = classify(r, f)
		}
	}()

	sc.Fn(f.Given(), f.When(), f.Then())
	return nil
}

// classify turns a recovered panic into a scenario outcome.
func classify(r any, f *Fixture) error {
	err, ok := r.(error)
	if _, isRuntime := r.(runtime.Error); !ok || isRuntime {
		err = newPanicError(r)
	}
	var ae *AssertionError
	if errors.As(err, &ae) {
		return &ScenarioFailure{Err: err, fixture: f}
	}
	f.log.Error("scenario error", zap.Error(err), zap.String("spec", f.Spec()))
	return err
}

// guard runs fn, returning a recovered panic as an error.
func guard(fn func()) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = newPanicError(r)
		}
	}()
	fn()
	return nil
}

func report(result Result, sc *Scenario, err error) {
	var failure *ScenarioFailure
	switch {
	case err == nil:
		result.AddSuccess(sc)
	case errors.As(err, &failure):
		result.AddFailure(sc, failure)
	default:
		result.AddError(sc, err)
	}
}

// Run discovers the scenarios of v and runs each as a subtest of t.
func Run(t *testing.T, v any, opts ...Option) {
	t.Helper()
	s, err := Discover(v, opts...)
	if err != nil {
		t.Fatalf("discover scenarios: %v", err)
	}
	s.RunT(t)
}

// RunT runs every scenario as a subtest of t named by its description.
func (s *Suite) RunT(t *testing.T) {
	t.Helper()
	if len(s.scenarios) == 0 {
		return
	}
	if err := guard(s.setUpSuite); err != nil {
		t.Fatalf("set up suite: %v", err)
	}
	defer func() {
		if err := guard(s.tearDownSuite); err != nil {
			t.Errorf("tear down suite: %v", err)
		}
	}()
	for _, sc := range s.scenarios {
		t.Run(sc.Description, func(t *testing.T) {
			report(TBResult(t), sc, s.RunScenario(sc))
		})
	}
}
