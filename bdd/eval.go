package bdd

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/eykd/spicy-go/internal/hostval"
)

// eval runs the term chain once. The first term resolves against the given
// store; later terms resolve against the current object, falling back to
// the store when it is nil. Errors returned or raised by called functions
// propagate unchanged.
func (w *When) eval() {
	if w.executed {
		w.log.Debug("when chain already evaluated")
		return
	}
	w.log.Debug("evaluating when chain",
		zap.String("terms", w.describe()),
		zap.Strings("given", w.given.Names()))

	var current any
	tokens := make([]string, 0, len(w.terms))
	for _, t := range w.terms {
		if t.isJoiner() {
			tokens = append(tokens, "and")
			continue
		}
		base := w.resolve(current, t.name)
		if !t.called {
			current = base
			tokens = append(tokens, t.name)
			continue
		}

		out, err := hostval.Call(base, t.args.values())
		if err != nil {
			panic(callError(t.name, err))
		}
		if out.Err != nil {
			panic(out.Err)
		}
		current = out.Value
		tokens = append(tokens, t.String())
		w.log.Debug("when term called", zap.Stringer("term", t), zap.Any("result", current))
	}

	w.it = current
	w.spec = strings.Join(tokens, " ")
	w.executed = true
	w.log.Debug("when chain evaluated", zap.String("spec", w.spec), zap.Any("it", w.it))
}

func (w *When) resolve(current any, name string) any {
	if current == nil {
		v, ok := w.given.value(name)
		if !ok {
			panic(chainError("when", name, ErrUnknownReference, nil))
		}
		return v
	}
	v, err := hostval.Attr(current, name)
	if err != nil {
		panic(chainError("when", name, ErrAttributeNotFound, err))
	}
	return v
}

// callError maps a failed host call to a chain error.
func callError(name string, err error) *ChainError {
	if errors.Is(err, hostval.ErrNotCallable) {
		return chainError("call", name, ErrNotCallable, err)
	}
	return &ChainError{Op: "call", Name: name, Err: err}
}
