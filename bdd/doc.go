// Package bdd runs given/when/then scenarios on top of the testing package.
//
// A scenario binds named inputs with Given, builds a lazy action chain with
// When, and asserts on the outcome with Then. The chains double as a
// readable sentence: a failure is reported as
//
//	INVALID RESULT:
//	  when add(1, 2), then it should equal 4
//	  (it should equal 4)
//
// Scenarios are methods whose names start with "Scenario":
//
//	type CalcSuite struct{}
//
//	func (CalcSuite) Scenario_add_two_numbers(given *bdd.Given, when *bdd.When, then *bdd.Then) {
//		given.Set(bdd.Bindings{"add": func(x, y int) int { return x + y }, "a": 1, "b": 2})
//		when.Get("add").Call(given.Ref("a"), given.Ref("b"))
//		then.It().Should().Equal(3)
//	}
//
//	func TestCalc(t *testing.T) { bdd.Run(t, CalcSuite{}) }
//
// Chain operations report failures by panicking; the runner recovers them
// at the scenario boundary. Calls made inside a then chain do not panic:
// their error is held until Raises or NotRaises examines it.
package bdd
