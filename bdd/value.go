package bdd

import (
	"fmt"

	"github.com/eykd/spicy-go/internal/hostval"
)

// Value is a named wrapper around a given binding or a projection of one.
// Its name always spells the projection path from the binding name, e.g.
// "list[0]" or "obj.field". A *Value passed as a call argument is a
// reference: its value is used for the call.
type Value struct {
	name  string
	value any
}

// Name returns the qualified name of the value.
func (v *Value) Name() string { return v.name }

// Unwrap returns the wrapped value.
func (v *Value) Unwrap() any { return v.value }

func (v *Value) String() string { return v.name }

// Attribute projects the attribute name of the wrapped value.
func (v *Value) Attribute(name string) (*Value, error) {
	qualified := v.name + "." + name
	pv, err := hostval.Attr(v.value, name)
	if err != nil {
		return nil, chainError("attr", qualified, ErrProjection, err)
	}
	return &Value{name: qualified, value: pv}, nil
}

// Project projects the element key of the wrapped value.
func (v *Value) Project(key any) (*Value, error) {
	qualified := fmt.Sprintf("%s[%s]", v.name, hostval.Render(key))
	pv, err := hostval.Index(v.value, key)
	if err != nil {
		return nil, chainError("index", qualified, ErrProjection, err)
	}
	return &Value{name: qualified, value: pv}, nil
}

// Attr is Attribute for scenario bodies: it panics on failure.
func (v *Value) Attr(name string) *Value {
	pv, err := v.Attribute(name)
	if err != nil {
		panic(err)
	}
	return pv
}

// Item is Project for scenario bodies: it panics on failure.
func (v *Value) Item(key any) *Value {
	pv, err := v.Project(key)
	if err != nil {
		panic(err)
	}
	return pv
}

func (v *Value) resolve() any { return v.value }

func (v *Value) text() string { return hostval.Render(v.value) }
