package hostval

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Render returns the text used for v in a spec string. Strings are single
// quoted; functions render as their short symbol name.
func Render(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return "'" + x + "'"
	case reflect.Type:
		return x.String()
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return "'" + rv.String() + "'"
	case reflect.Func:
		return FuncName(v)
	}
	return fmt.Sprintf("%v", v)
}

// FuncName returns the package-qualified short name of a function value,
// e.g. "bdd.TestRun.func1".
func FuncName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return TypeName(fn)
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return rv.Type().String()
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
