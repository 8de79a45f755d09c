package hostval

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type point struct {
	X, Y  int
	label string
}

func (p point) Sum() int { return p.X + p.Y }

type counter struct{ n int }

func (c *counter) Incr(by int) int { c.n += by; return c.n }
func (c *counter) Len() int        { return c.n }

type stack []int

func (s *stack) Push(v int) { *s = append(*s, v) }

func TestExported(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"append", "Append"},
		{"get_item", "GetItem"},
		{"_and", "And"},
		{"Already", "Already"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Exported(tt.in); got != tt.want {
			t.Errorf("Exported(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAttr(t *testing.T) {
	c := &counter{}
	tests := []struct {
		name    string
		value   any
		attr    string
		want    any
		wantErr error
	}{
		{name: "exported field", value: point{X: 1}, attr: "X", want: 1},
		{name: "field through pointer", value: &point{Y: 2}, attr: "Y", want: 2},
		{name: "snake case field", value: struct{ FirstName string }{"ada"}, attr: "first_name", want: "ada"},
		{name: "unexported field", value: point{label: "x"}, attr: "label", wantErr: ErrNoSuchAttribute},
		{name: "map key", value: map[string]int{"k": 7}, attr: "k", want: 7},
		{name: "missing map key", value: map[string]int{}, attr: "k", wantErr: ErrNoSuchAttribute},
		{name: "nil", value: nil, attr: "x", wantErr: ErrNoSuchAttribute},
		{name: "missing", value: c, attr: "nope", wantErr: ErrNoSuchAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Attr(tt.value, tt.attr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Attr() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Attr() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Attr() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttr_BoundMethod(t *testing.T) {
	c := &counter{}
	m, err := Attr(c, "incr")
	if err != nil {
		t.Fatalf("Attr() error = %v", err)
	}
	out, err := Call(m, []any{3})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if out.Value != 3 || c.n != 3 {
		t.Errorf("Call() = %v, counter = %d, want 3 and 3", out.Value, c.n)
	}

	sum, err := Attr(point{X: 2, Y: 5}, "sum")
	if err != nil {
		t.Fatalf("Attr(sum) error = %v", err)
	}
	out, _ = Call(sum, nil)
	if out.Value != 7 {
		t.Errorf("sum() = %v, want 7", out.Value)
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		key     any
		want    any
		wantErr error
	}{
		{name: "slice", value: []int{1, 2, 3}, key: 1, want: 2},
		{name: "negative", value: []int{1, 2, 3}, key: -1, want: 3},
		{name: "pointer to named slice", value: &stack{4, 5}, key: 0, want: 4},
		{name: "array", value: [2]string{"a", "b"}, key: uint(1), want: "b"},
		{name: "out of range", value: []int{1}, key: 5, wantErr: ErrIndexOutOfRange},
		{name: "non integer", value: []int{1}, key: "a", wantErr: ErrArgType},
		{name: "map", value: map[string]int{"a": 1}, key: "a", want: 1},
		{name: "map int key converted", value: map[int64]string{2: "two"}, key: 2, want: "two"},
		{name: "missing key", value: map[string]int{}, key: "z", wantErr: ErrNoSuchKey},
		{name: "map key overflows", value: map[int8]string{44: "wrapped"}, key: 300, wantErr: ErrArgType},
		{name: "map key fraction", value: map[int]string{1: "one"}, key: 1.5, wantErr: ErrArgType},
		{name: "huge unsigned index", value: []int{1, 2, 3}, key: uint64(math.MaxUint64), wantErr: ErrIndexOutOfRange},
		{name: "unsigned index past end", value: []int{1}, key: uint64(math.MaxInt64) + 1, wantErr: ErrIndexOutOfRange},
		{name: "not indexable", value: 42, key: 0, wantErr: ErrNotIndexable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Index(tt.value, tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Index() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Index() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLen(t *testing.T) {
	s := &stack{1, 2}
	s.Push(3)
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"slice", []int{1, 2}, 2},
		{"pointer to slice", s, 3},
		{"string", "abcd", 4},
		{"map", map[string]int{"a": 1}, 1},
		{"len method", &counter{n: 9}, 9},
	}
	for _, tt := range tests {
		got, err := Len(tt.value)
		if err != nil {
			t.Fatalf("%s: Len() error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: Len() = %d, want %d", tt.name, got, tt.want)
		}
	}
	if _, err := Len(3); !errors.Is(err, ErrNoLength) {
		t.Errorf("Len(3) error = %v, want ErrNoLength", err)
	}
}

func TestCall(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name    string
		fn      any
		args    []any
		want    any
		wantErr error
		callErr error
	}{
		{name: "no results", fn: func() {}, want: nil},
		{name: "single result", fn: func(a, b int) int { return a + b }, args: []any{1, 2}, want: 3},
		{name: "numeric conversion", fn: func(a int64) int64 { return a * 2 }, args: []any{4}, want: int64(8)},
		{name: "nil becomes zero", fn: func(p *point) bool { return p == nil }, args: []any{nil}, want: true},
		{name: "variadic", fn: func(xs ...int) int { return len(xs) }, args: []any{1, 2, 3}, want: 3},
		{name: "error only", fn: func() error { return errBoom }, callErr: errBoom},
		{name: "value and nil error", fn: func() (string, error) { return "ok", nil }, want: "ok"},
		{name: "not callable", fn: 3, wantErr: ErrNotCallable},
		{name: "arg count", fn: func(int) {}, wantErr: ErrArgCount},
		{name: "arg type", fn: func(int) {}, args: []any{"x"}, wantErr: ErrArgType},
		{name: "whole float to int", fn: func(a, b int) int { return a + b }, args: []any{2.0, 1}, want: 3},
		{name: "fractional float to int", fn: func(a, b int) int { return a + b }, args: []any{1.5, 2}, wantErr: ErrArgType},
		{name: "int8 overflow", fn: func(v int8) int8 { return v }, args: []any{300}, wantErr: ErrArgType},
		{name: "negative to unsigned", fn: func(v uint) uint { return v }, args: []any{-1}, wantErr: ErrArgType},
		{name: "unsigned past int64", fn: func(v int64) int64 { return v }, args: []any{uint64(math.MaxUint64)}, wantErr: ErrArgType},
		{name: "float32 overflow", fn: func(v float32) float32 { return v }, args: []any{1e300}, wantErr: ErrArgType},
		{name: "uint8 in range", fn: func(v uint8) uint8 { return v }, args: []any{255}, want: uint8(255)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Call(tt.fn, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Call() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if !errors.Is(out.Err, tt.callErr) {
				t.Errorf("Outcome.Err = %v, want %v", out.Err, tt.callErr)
			}
			if out.Value != tt.want {
				t.Errorf("Outcome.Value = %v, want %v", out.Value, tt.want)
			}
		})
	}
}

func TestCall_MultipleResults(t *testing.T) {
	out, err := Call(func() (int, string, error) { return 1, "a", nil }, nil)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if diff := cmp.Diff([]any{1, "a"}, out.Value); diff != "" {
		t.Errorf("Outcome.Value mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	type key string
	tests := []struct {
		in   any
		want string
	}{
		{nil, "nil"},
		{"hoge", "'hoge'"},
		{key("k"), "'k'"},
		{3, "3"},
		{[]int{1, 2}, "[1 2]"},
		{errors.New("bad"), "bad"},
		{reflect.TypeFor[int](), "int"},
	}
	for _, tt := range tests {
		if got := Render(tt.in); got != tt.want {
			t.Errorf("Render(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Render(TestRender); got != "hostval.TestRender" {
		t.Errorf("Render(func) = %q, want %q", got, "hostval.TestRender")
	}
}

func TestComparable(t *testing.T) {
	type celsius int
	tests := []struct {
		name         string
		a, b         any
		wantA, wantB any
	}{
		{"same kind untouched", 1, 2, 1, 2},
		{"int widths", int64(3), 4, int64(3), int64(4)},
		{"int and float", 3, 2.5, 3.0, 2.5},
		{"signed and unsigned", uint(3), -1, int64(3), int64(-1)},
		{"non numeric", "a", 1, "a", 1},
		{"rune and string", 'A', "A", 'A', "A"},
		{"named int", celsius(3), 3, int64(3), int64(3)},
		{"float32 and int64", float32(1.5), int64(1), 1.5, 1.0},
	}
	for _, tt := range tests {
		a, b := Comparable(tt.a, tt.b)
		if a != tt.wantA || b != tt.wantB {
			t.Errorf("%s: Comparable(%v, %v) = (%#v, %#v), want (%#v, %#v)", tt.name, tt.a, tt.b, a, b, tt.wantA, tt.wantB)
		}
	}
}

func TestBoolAndCallable(t *testing.T) {
	type flag bool
	if v, ok := Bool(flag(true)); !ok || !v {
		t.Errorf("Bool(flag(true)) = %v, %v", v, ok)
	}
	if _, ok := Bool(1); ok {
		t.Error("Bool(1) reported ok")
	}
	if !Callable(func() {}) {
		t.Error("Callable(func) = false")
	}
	var nilFn func()
	if Callable(nilFn) || Callable("x") {
		t.Error("Callable reported true for nil func or string")
	}
}
