package bdd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eykd/spicy-go/internal/hostval"
)

// result is what an It node holds: a value, or an error deferred from a
// call made in the chain.
type result interface{ isResult() }

type valueResult struct{ v any }

type deferredResult struct{ err error }

func (valueResult) isResult()    {}
func (deferredResult) isResult() {}

// It is one node of an assertion chain. Spec-building and assertion
// methods return the same node; projections and calls return a new one.
//
// A node may carry a target override set by Length, At, or AppliedTo.
// Value assertions compare the target when one is set and the wrapped value
// otherwise; And clears the target.
type It struct {
	then  *Then
	label string
	res   result

	target    any
	hasTarget bool
}

func newIt(t *Then, label string, res result) *It {
	return &It{then: t, label: label, res: res}
}

// value returns the wrapped value. A deferred error is raised again here,
// so every operation that needs a value fails on a pending error.
func (it *It) value() any {
	switch r := it.res.(type) {
	case deferredResult:
		it.then.log.Debug("raising deferred error", zap.String("node", it.label), zap.Error(r.err))
		panic(r.err)
	case valueResult:
		return r.v
	}
	return nil
}

// operand returns the target override, or the wrapped value.
func (it *It) operand() any {
	v := it.value()
	if it.hasTarget {
		return it.target
	}
	return v
}

func (it *It) setTarget(v any) {
	it.target = v
	it.hasTarget = true
}

// Get accesses name on the wrapped value. An attribute of the value gives a
// new node; otherwise a grammar word (underscores trimmed) is a filler that
// returns it unchanged. Any other name fails with ErrUnknownProperty.
func (it *It) Get(name string) *It {
	if r, ok := it.res.(valueResult); ok {
		if pv, err := hostval.Attr(r.v, name); err == nil {
			it.then.append("." + name)
			return newIt(it.then, name, valueResult{v: pv})
		}
	}
	if word := strings.Trim(name, "_"); IsGrammarWord(word) {
		return it.word(word)
	}
	v := it.value()
	panic(chainError("then", name, ErrUnknownProperty,
		fmt.Errorf("%s has no attribute %q", hostval.TypeName(v), name)))
}

// Item projects value[key].
func (it *It) Item(key any) *It {
	v := it.value()
	k := resolveArg(key)
	pv, err := hostval.Index(v, k)
	if err != nil {
		panic(chainError("index", fmt.Sprintf("%s[%s]", it.label, hostval.Render(k)), ErrProjection, err))
	}
	it.then.append("[" + hostval.Render(k) + "]")
	return newIt(it.then, fmt.Sprintf("%s[%s]", it.label, hostval.Render(k)), valueResult{v: pv})
}

// Call invokes the wrapped function. A returned error or a panic is not
// raised: it is held by the returned node until Raises or NotRaises
// inspects it, or until another operation needs the value.
func (it *It) Call(args ...any) (next *It) {
	fn := it.value()
	if !hostval.Callable(fn) {
		panic(chainError("call", it.label, ErrNotCallable, fmt.Errorf("%s is not a function", hostval.TypeName(fn))))
	}
	list := collectArgs(args)
	label := "(" + list.text() + ")"
	it.then.append(label)

	deferred := func(err error) *It {
		it.then.log.Debug("deferring call error", zap.String("call", it.label+label), zap.Error(err))
		return newIt(it.then, label, deferredResult{err: err})
	}
	defer func() {
		if r := recover(); r != nil {
			next = deferred(newPanicError(r))
		}
	}()

	out, err := hostval.Call(fn, list.values())
	if err != nil {
		return deferred(callError(it.label, err))
	}
	if out.Err != nil {
		return deferred(out.Err)
	}
	return newIt(it.then, label, valueResult{v: out.Value})
}

// And ends the current segment and returns the Then context. Then.The
// resumes from this node with its target cleared.
func (it *It) And() *Then {
	it.value()
	it.then.append(" and")
	it.target = nil
	it.hasTarget = false
	it.then.beginSegment(it)
	return it.then
}

// Length sets the target to the length of the wrapped value.
func (it *It) Length() *It {
	v := it.value()
	it.then.append(" length")
	n, err := hostval.Len(v)
	if err != nil {
		panic(chainError("length", it.label, ErrProjection, err))
	}
	it.setTarget(n)
	return it
}

// At sets the target to value[key].
func (it *It) At(key any) *It {
	v := it.value()
	k := resolveArg(key)
	it.then.append(" at", " "+hostval.Render(k))
	pv, err := hostval.Index(v, k)
	if err != nil {
		panic(chainError("at", fmt.Sprintf("%s[%s]", it.label, hostval.Render(k)), ErrProjection, err))
	}
	it.setTarget(pv)
	return it
}

// AppliedTo sets the target to fn(target), or fn(value) when no target is
// set.
func (it *It) AppliedTo(fn any) *It {
	operand := it.operand()
	f := resolveArg(fn)
	it.then.append(" applied to", " "+hostval.Render(f))
	out, err := hostval.Call(f, []any{operand})
	if err != nil {
		panic(callError("applied_to", err))
	}
	if out.Err != nil {
		panic(out.Err)
	}
	it.setTarget(out.Value)
	return it
}

// Spec returns the spec text of the current segment.
func (it *It) Spec() string { return it.then.CurrentSpec() }
