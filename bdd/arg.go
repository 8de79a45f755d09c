package bdd

import (
	"strings"

	"github.com/eykd/spicy-go/internal/hostval"
)

// Arg is a call argument: a Literal, or a *Value referencing a given
// binding. Both resolve to a plain value for the call and to text for the
// spec string.
type Arg interface {
	resolve() any
	text() string
}

type literal struct{ v any }

// Literal wraps v as a literal argument. Plain values passed to Call are
// literals already; Literal is only needed to pass a *Value as itself.
func Literal(v any) Arg { return literal{v: v} }

func (l literal) resolve() any { return l.v }

func (l literal) text() string { return hostval.Render(l.v) }

// NamedArg is a keyword argument built with Kw.
type NamedArg struct {
	Name string
	Arg  Arg
}

// Kw builds a named argument. Named arguments reach the callee as one
// trailing Kwargs argument.
func Kw(name string, v any) NamedArg {
	return NamedArg{Name: name, Arg: toArg(v)}
}

// Kwargs carries the named arguments of a call.
type Kwargs map[string]any

func toArg(x any) Arg {
	if a, ok := x.(Arg); ok {
		return a
	}
	return literal{v: x}
}

// resolveArg returns the plain value behind x.
func resolveArg(x any) any {
	return toArg(x).resolve()
}

// argList is the recorded argument list of one call.
type argList struct {
	positional []Arg
	named      []NamedArg
}

func collectArgs(args []any) argList {
	var l argList
	for _, a := range args {
		if n, ok := a.(NamedArg); ok {
			l.named = append(l.named, n)
			continue
		}
		l.positional = append(l.positional, toArg(a))
	}
	return l
}

// values returns the arguments to pass to the callee.
func (l argList) values() []any {
	vals := make([]any, 0, len(l.positional)+1)
	for _, a := range l.positional {
		vals = append(vals, a.resolve())
	}
	if len(l.named) > 0 {
		kw := make(Kwargs, len(l.named))
		for _, n := range l.named {
			kw[n.Name] = n.Arg.resolve()
		}
		vals = append(vals, kw)
	}
	return vals
}

// text renders the arguments as "1, 'a', k=2".
func (l argList) text() string {
	parts := make([]string, 0, len(l.positional)+len(l.named))
	for _, a := range l.positional {
		parts = append(parts, a.text())
	}
	for _, n := range l.named {
		parts = append(parts, n.Name+"="+n.Arg.text())
	}
	return strings.Join(parts, ", ")
}
