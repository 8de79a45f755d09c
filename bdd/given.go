package bdd

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

// Bindings maps given names to values.
type Bindings map[string]any

// Given is the store of named inputs for one scenario. It is populated by
// Set and Bind and only read afterwards by When and Then.
type Given struct {
	values map[string]any
	log    *zap.Logger
}

func newGiven(log *zap.Logger) *Given {
	return &Given{values: make(map[string]any), log: log}
}

// Set merges b into the store. Later bindings of a name overwrite earlier
// ones.
func (g *Given) Set(b Bindings) {
	for name, v := range b {
		g.values[name] = v
	}
	g.log.Debug("given bindings set", zap.Strings("names", g.Names()))
}

// Bind binds a single name.
func (g *Given) Bind(name string, value any) *Given {
	g.values[name] = value
	return g
}

// Lookup returns the binding name as a *Value.
func (g *Given) Lookup(name string) (*Value, error) {
	v, ok := g.values[name]
	if !ok {
		return nil, chainError("given", name, ErrNameNotBound, nil)
	}
	return &Value{name: name, value: v}, nil
}

// Ref is Lookup for scenario bodies: it panics when name is not bound.
func (g *Given) Ref(name string) *Value {
	v, err := g.Lookup(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Names returns the bound names in sorted order.
func (g *Given) Names() []string {
	return slices.Sorted(maps.Keys(g.values))
}

func (g *Given) value(name string) (any, bool) {
	v, ok := g.values[name]
	return v, ok
}
