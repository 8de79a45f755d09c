package hostval

import (
	"math"
	"reflect"
)

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || isFloat(k)
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// Comparable returns a and b converted to a common kind when both are
// numbers of different types, so that comparisons between, say, an int64
// result and an int literal are meaningful. Other values, including a
// number paired with a string, are returned unchanged.
func Comparable(a, b any) (any, any) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return a, b
	}
	ak, bk := av.Kind(), bv.Kind()
	if av.Type() == bv.Type() || !isNumeric(ak) || !isNumeric(bk) {
		return a, b
	}

	switch {
	case isFloat(ak) || isFloat(bk):
		return toFloat(av), toFloat(bv)
	case isSigned(ak) && isSigned(bk):
		return av.Int(), bv.Int()
	case isUnsigned(ak) && isUnsigned(bk):
		return av.Uint(), bv.Uint()
	}

	// One signed, one unsigned.
	u, s := av, bv
	if isSigned(ak) {
		u, s = bv, av
	}
	if u.Uint() > math.MaxInt64 {
		return toFloat(av), toFloat(bv)
	}
	if isSigned(ak) {
		return s.Int(), int64(u.Uint())
	}
	return int64(u.Uint()), s.Int()
}

// fitsNumeric reports whether the numeric value v converts to t without
// truncating a fraction, changing sign, or overflowing.
func fitsNumeric(v reflect.Value, t reflect.Type) bool {
	z := reflect.Zero(t)
	switch tk := t.Kind(); {
	case isSigned(tk):
		switch {
		case isSigned(v.Kind()):
			return !z.OverflowInt(v.Int())
		case isUnsigned(v.Kind()):
			return v.Uint() <= math.MaxInt64 && !z.OverflowInt(int64(v.Uint()))
		}
		f := v.Float()
		return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !z.OverflowInt(int64(f))
	case isUnsigned(tk):
		switch {
		case isSigned(v.Kind()):
			return v.Int() >= 0 && !z.OverflowUint(uint64(v.Int()))
		case isUnsigned(v.Kind()):
			return !z.OverflowUint(v.Uint())
		}
		f := v.Float()
		return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !z.OverflowUint(uint64(f))
	}
	if isFloat(v.Kind()) {
		return !z.OverflowFloat(v.Float())
	}
	return true
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isSigned(v.Kind()):
		return float64(v.Int())
	case isUnsigned(v.Kind()):
		return float64(v.Uint())
	}
	return v.Float()
}
