// Package hostval resolves names, indexes, lengths, and calls against
// arbitrary Go values through reflection.
//
// Names are resolved the way scenario authors write them: a given name or
// chain term like "get_item" matches a string map key "get_item", a method
// "get_item" or "GetItem", or an exported field "get_item" or "GetItem".
package hostval

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Errors returned by projection and call helpers.
var (
	ErrNoSuchAttribute = errors.New("no such attribute")
	ErrNotIndexable    = errors.New("value is not indexable")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNoSuchKey       = errors.New("no such key")
	ErrNoLength        = errors.New("value has no length")
	ErrNotCallable     = errors.New("value is not callable")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrArgType         = errors.New("argument type mismatch")
)

var errorType = reflect.TypeFor[error]()

// Exported converts a snake_case name to its exported Go spelling:
// "get_item" becomes "GetItem". Names without underscores are capitalized.
func Exported(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

// candidates lists the Go identifiers a scenario name may refer to.
func candidates(name string) []string {
	if exp := Exported(name); exp != "" && exp != name {
		return []string{name, exp}
	}
	return []string{name}
}

// indirect follows pointers and interfaces until it reaches a non-pointer
// value or a nil.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

// TypeName returns the dynamic type of v for messages, or "nil".
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Attr resolves name against v. String-keyed maps are checked first, then
// methods (bound to v as held), then exported struct fields.
func Attr(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: %q on nil", ErrNoSuchAttribute, name)
	}
	rv := reflect.ValueOf(v)

	if m := indirect(rv); m.Kind() == reflect.Map && m.Type().Key().Kind() == reflect.String {
		key := reflect.ValueOf(name).Convert(m.Type().Key())
		if e := m.MapIndex(key); e.IsValid() {
			return e.Interface(), nil
		}
	}

	for _, n := range candidates(name) {
		if method := rv.MethodByName(n); method.IsValid() {
			return method.Interface(), nil
		}
	}

	if s := indirect(rv); s.Kind() == reflect.Struct {
		for _, n := range candidates(name) {
			f, ok := s.Type().FieldByName(n)
			if !ok || !f.IsExported() {
				continue
			}
			fv, err := s.FieldByIndexErr(f.Index)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrNoSuchAttribute, name, err)
			}
			return fv.Interface(), nil
		}
	}

	return nil, fmt.Errorf("%w: %s has no attribute %q", ErrNoSuchAttribute, TypeName(v), name)
}

// Has reports whether Attr would resolve name against v.
func Has(v any, name string) bool {
	_, err := Attr(v, name)
	return err == nil
}

// Index returns v[key] for slices, arrays, strings, and maps. Negative
// integer indexes count from the end.
func Index(v any, key any) (any, error) {
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		i, err := toInt(key)
		if err != nil {
			return nil, err
		}
		n := rv.Len()
		pos := i
		if pos < 0 {
			pos += n
		}
		if pos < 0 || pos >= n {
			return nil, fmt.Errorf("%w: index %d with length %d", ErrIndexOutOfRange, i, n)
		}
		return rv.Index(pos).Interface(), nil
	case reflect.Map:
		k, err := convertTo(key, rv.Type().Key())
		if err != nil {
			return nil, err
		}
		e := rv.MapIndex(k)
		if !e.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchKey, Render(key))
		}
		return e.Interface(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotIndexable, TypeName(v))
}

// Len returns the builtin length of v, or the result of a Len() int method.
func Len(v any) (int, error) {
	rv := reflect.ValueOf(v)
	switch iv := indirect(rv); iv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return iv.Len(), nil
	}
	if rv.IsValid() {
		m := rv.MethodByName("Len")
		if m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 && m.Type().Out(0).Kind() == reflect.Int {
			return int(m.Call(nil)[0].Int()), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoLength, TypeName(v))
}

// Callable reports whether v is a non-nil function.
func Callable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// Bool returns v as a bool when its kind is bool.
func Bool(v any) (value bool, ok bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return false, false
	}
	return rv.Bool(), true
}

// toInt returns an integer index key. Unsigned keys beyond the int range
// are out of range rather than wrapped to negative indexes.
func toInt(key any) (int, error) {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if reflect.Zero(reflect.TypeFor[int]()).OverflowInt(rv.Int()) {
			return 0, fmt.Errorf("%w: index %d", ErrIndexOutOfRange, rv.Int())
		}
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt {
			return 0, fmt.Errorf("%w: index %d", ErrIndexOutOfRange, rv.Uint())
		}
		return int(rv.Uint()), nil
	}
	return 0, fmt.Errorf("%w: index %s is not an integer", ErrArgType, Render(key))
}
