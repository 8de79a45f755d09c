package bdd

import (
	"strings"

	"go.uber.org/zap"
)

// joiner is the term name that inserts "and" into the when spec without
// changing the current object.
const joiner = "_and"

// When builds the term chain of a scenario's action. Nothing runs while
// the chain is built; the first Then access evaluates it once.
type When struct {
	given *Given
	log   *zap.Logger

	terms    []*Term
	executed bool
	spec     string
	it       any
}

func newWhen(given *Given, log *zap.Logger) *When {
	return &When{given: given, log: log}
}

// Get starts a new chain with the term name, discarding any chain built
// before.
func (w *When) Get(name string) *Term {
	w.log.Debug("when chain started", zap.String("term", name))
	w.terms = nil
	w.spec = ""
	w.it = nil
	w.executed = false
	return w.push(name)
}

func (w *When) push(name string) *Term {
	t := &Term{when: w, name: name}
	w.terms = append(w.terms, t)
	return t
}

// Spec evaluates the chain if needed and returns its spec text, e.g.
// "list append(6)".
func (w *When) Spec() string {
	w.eval()
	return w.spec
}

// Result evaluates the chain if needed and returns its terminal value.
func (w *When) Result() any {
	w.eval()
	return w.it
}

func (w *When) describe() string {
	parts := make([]string, len(w.terms))
	for i, t := range w.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Term is one link of a when chain: a property access, optionally called.
type Term struct {
	when   *When
	name   string
	called bool
	args   argList
}

// Get appends the property access name to the chain.
func (t *Term) Get(name string) *Term {
	return t.when.push(name)
}

// And appends the joiner. The next term resolves against the current
// object, or against the given store when the current object is nil.
func (t *Term) And() *Term {
	return t.when.push(joiner)
}

// Call marks the term as a call with args. Arguments that are *Value
// references are resolved to their values at evaluation time; NamedArg
// values become named arguments. A term can be called once.
func (t *Term) Call(args ...any) *Term {
	if t.called {
		panic(chainError("call", t.name, ErrTermAlreadyCalled, nil))
	}
	if t.isJoiner() {
		panic(chainError("call", t.name, ErrNotCallable, nil))
	}
	t.called = true
	t.args = collectArgs(args)
	return t
}

func (t *Term) isJoiner() bool { return t.name == joiner }

func (t *Term) String() string {
	if !t.called {
		return t.name
	}
	return t.name + "(" + t.args.text() + ")"
}
