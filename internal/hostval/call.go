package hostval

import (
	"fmt"
	"reflect"
)

// Outcome is what a function returned when invoked through Call.
type Outcome struct {
	// Value is nil for no results, the result itself for one, and a []any
	// for several. A trailing error result is never part of Value.
	Value any
	// Err is the non-nil trailing error result, if the function has one.
	Err error
}

// Call invokes fn with args. The returned error reports a call that could
// not be made (not a function, argument count or type mismatch); errors the
// function itself returns are reported in Outcome.Err. Panics raised by fn
// are not recovered.
func Call(fn any, args []any) (Outcome, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotCallable, TypeName(fn))
	}
	in, err := callArgs(fv.Type(), args)
	if err != nil {
		return Outcome{}, err
	}
	return outcome(fv.Type(), fv.Call(in)), nil
}

func callArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: want at least %d, got %d", ErrArgCount, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrArgCount, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			pt = ft.In(n - 1).Elem()
		} else {
			pt = ft.In(i)
		}
		v, err := convertTo(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		in[i] = v
	}
	return in, nil
}

// convertTo makes a usable as a value of type t: nil becomes the zero value,
// assignable values pass through, and numeric or string kinds are converted.
// A numeric conversion that would lose the value is an ErrArgType.
func convertTo(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		if !fitsNumeric(v, t) {
			return reflect.Value{}, fmt.Errorf("%w: %s does not fit in %s", ErrArgType, Render(a), t)
		}
		return v.Convert(t), nil
	}
	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrArgType, v.Type(), t)
}

func outcome(ft reflect.Type, out []reflect.Value) Outcome {
	var res Outcome
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			res.Err = e.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
	case 1:
		res.Value = out[0].Interface()
	default:
		vals := make([]any, len(out))
		for i, o := range out {
			vals[i] = o.Interface()
		}
		res.Value = vals
	}
	return res
}
