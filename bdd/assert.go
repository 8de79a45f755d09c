package bdd

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/eykd/spicy-go/internal/hostval"
)

// recorder is an assert.TestingT that keeps testify's failure report
// instead of failing a test.
type recorder struct{ lines []string }

func (r *recorder) Errorf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recorder) String() string {
	return strings.TrimSpace(strings.Join(r.lines, "\n"))
}

// check appends fragments to the spec, then runs primitive with the
// current segment's text as the failure message.
func (it *It) check(primitive func(t assert.TestingT, msg string) bool, fragments ...string) *It {
	it.then.append(fragments...)
	msg := it.then.CurrentSpec()
	rec := &recorder{}
	if !primitive(rec, msg) {
		panic(&AssertionError{Message: msg, Detail: rec.String()})
	}
	return it
}

// Equal asserts the operand equals expected. Numbers of different types
// compare by value; nothing else is converted, so 65 never equals "A".
func (it *It) Equal(expected any) *It {
	got := it.operand()
	want := resolveArg(expected)
	a, b := hostval.Comparable(got, want)
	return it.check(func(t assert.TestingT, msg string) bool {
		return assert.Equal(t, b, a, msg)
	}, " equal", " "+hostval.Render(want))
}

// Nil asserts the operand is nil.
func (it *It) Nil() *It {
	got := it.operand()
	return it.check(func(t assert.TestingT, msg string) bool {
		return assert.Nil(t, got, msg)
	}, " is nil")
}

// True asserts the operand is the bool true.
func (it *It) True() *It {
	got := it.operand()
	return it.check(func(t assert.TestingT, msg string) bool {
		b, ok := hostval.Bool(got)
		if !ok {
			return assert.Fail(t, fmt.Sprintf("%s is not a bool", hostval.Render(got)), msg)
		}
		return assert.True(t, b, msg)
	}, " is true")
}

// False asserts the operand is the bool false.
func (it *It) False() *It {
	got := it.operand()
	return it.check(func(t assert.TestingT, msg string) bool {
		b, ok := hostval.Bool(got)
		if !ok {
			return assert.Fail(t, fmt.Sprintf("%s is not a bool", hostval.Render(got)), msg)
		}
		return assert.False(t, b, msg)
	}, " is false")
}

// GreaterThan asserts operand > v.
func (it *It) GreaterThan(v any) *It {
	return it.order(v, " greater than", assert.Greater)
}

// LessThan asserts operand < v.
func (it *It) LessThan(v any) *It {
	return it.order(v, " less than", assert.Less)
}

// GreaterEqual asserts operand >= v.
func (it *It) GreaterEqual(v any) *It {
	return it.order(v, " greater equal", assert.GreaterOrEqual)
}

// LessEqual asserts operand <= v.
func (it *It) LessEqual(v any) *It {
	return it.order(v, " less equal", assert.LessOrEqual)
}

type orderFunc func(t assert.TestingT, e1, e2 any, msgAndArgs ...any) bool

func (it *It) order(v any, fragment string, cmp orderFunc) *It {
	got := it.operand()
	want := resolveArg(v)
	a, b := hostval.Comparable(got, want)
	return it.check(func(t assert.TestingT, msg string) bool {
		return cmp(t, a, b, msg)
	}, fragment, " "+hostval.Render(want))
}

// LengthOf asserts the operand has length n.
func (it *It) LengthOf(n any) *It {
	got := it.operand()
	want := resolveArg(n)
	return it.check(func(t assert.TestingT, msg string) bool {
		l, err := hostval.Len(got)
		if err != nil {
			return assert.Fail(t, err.Error(), msg)
		}
		a, b := hostval.Comparable(l, want)
		return assert.Equal(t, b, a, msg)
	}, " length of", " "+hostval.Render(want))
}

// Property asserts the operand contains key: a map key, a slice or array
// element, or a substring.
func (it *It) Property(key any) *It {
	got := it.operand()
	k := resolveArg(key)
	return it.check(func(t assert.TestingT, msg string) bool {
		return assert.Contains(t, got, k, msg)
	}, " property", " "+hostval.Render(k))
}

// Instance asserts the operand's type. typ is a reflect.Type, where an
// interface type checks that the operand implements it, or a sample value
// whose dynamic type must match exactly.
func (it *It) Instance(typ any) *It {
	got := it.operand()
	typ = resolveArg(typ)
	name := hostval.TypeName(typ)
	if rt, ok := typ.(reflect.Type); ok {
		name = rt.String()
	}
	return it.check(func(t assert.TestingT, msg string) bool {
		rt, ok := typ.(reflect.Type)
		switch {
		case !ok:
			return assert.IsType(t, typ, got, msg)
		case rt.Kind() == reflect.Interface:
			return assert.Implements(t, reflect.New(rt).Interface(), got, msg)
		default:
			return assert.IsType(t, reflect.Zero(rt).Interface(), got, msg)
		}
	}, " instance of "+name)
}

// TypeOf returns the reflect.Type of T, for Raises, NotRaises, and Instance.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

var errorInterface = reflect.TypeFor[error]()

// errorMatcher matches a deferred error against an error value or type.
type errorMatcher struct {
	name  string
	match func(error) bool
}

func newErrorMatcher(m any) (errorMatcher, error) {
	switch x := m.(type) {
	case reflect.Type:
		if x.Kind() != reflect.Interface && !x.Implements(errorInterface) {
			return errorMatcher{}, fmt.Errorf("%w: %s does not implement error", ErrInvalidMatcher, x)
		}
		return errorMatcher{
			name: x.String(),
			match: func(err error) bool {
				return errors.As(err, reflect.New(x).Interface())
			},
		}, nil
	case error:
		return errorMatcher{
			name:  hostval.Render(x.Error()),
			match: func(err error) bool { return errors.Is(err, x) },
		}, nil
	}
	return errorMatcher{}, fmt.Errorf("%w: %s", ErrInvalidMatcher, hostval.TypeName(m))
}

func (it *It) matcher(m any) errorMatcher {
	em, err := newErrorMatcher(m)
	if err != nil {
		panic(chainError("raises", it.label, ErrInvalidMatcher, err))
	}
	return em
}

// Raises asserts that the call producing this node failed with an error
// matching m, an error (errors.Is) or a reflect.Type (errors.As). On
// success the deferred error is cleared.
func (it *It) Raises(m any) *It {
	em := it.matcher(m)
	it.then.append(" raises " + em.name)
	d, ok := it.res.(deferredResult)
	if !ok {
		panic(&AssertionError{Message: fmt.Sprintf("%s not raised: %s", em.name, it.then.CurrentSpec())})
	}
	if !em.match(d.err) {
		panic(&AssertionError{
			Message: fmt.Sprintf("%s not raised but %v: %s", em.name, d.err, it.then.CurrentSpec()),
			Detail:  d.err.Error(),
		})
	}
	it.res = valueResult{}
	return it
}

// NotRaises asserts that the call producing this node did not fail with an
// error matching m. A node with no deferred error passes, even one that was
// never produced by a call.
func (it *It) NotRaises(m any) *It {
	em := it.matcher(m)
	it.then.append(" not raises " + em.name)
	d, ok := it.res.(deferredResult)
	if !ok {
		return it
	}
	if em.match(d.err) {
		panic(&AssertionError{
			Message: fmt.Sprintf("%s raised: %s", em.name, it.then.CurrentSpec()),
			Detail:  d.err.Error(),
		})
	}
	it.res = valueResult{}
	return it
}
