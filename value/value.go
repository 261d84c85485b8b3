// Package value implements the Language's single runtime datum: a
// tagged array value with a length contract (spec §4.3). There is no
// other kind of value — no booleans, no floats, no strings as a
// distinct type.
package value

import (
	"strconv"
	"strings"

	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/diag"
)

// Kind tags the three storage disciplines a Value can hold.
type Kind int

const (
	Growable Kind = iota
	Fixed
	Function
)

// Value is a tagged array: Growable or Fixed hold a []int32 with a
// minimum-length floor; Function holds a reference to an immutable,
// shared FunctionDef. Every operation below either mutates a Value's
// own storage or returns a fresh one — there is no aliasing between
// distinct Values (spec's "value semantics" invariant).
type Value struct {
	kind    Kind
	data    []int32
	minimum int
	fn      *ast.FunctionDef
}

// NewGrowable builds a Growable value whose minimum is its own length.
func NewGrowable(data []int32) Value {
	return Value{kind: Growable, data: cloneInts(data), minimum: len(data)}
}

// NewFixed builds a Fixed value of exactly len(data).
func NewFixed(data []int32) Value {
	return Value{kind: Fixed, data: cloneInts(data), minimum: len(data)}
}

// NewFunction wraps a function definition as a callable Value.
func NewFunction(fn *ast.FunctionDef) Value {
	return Value{kind: Function, fn: fn}
}

func cloneInts(data []int32) []int32 {
	out := make([]int32, len(data))
	copy(out, data)
	return out
}

// Kind reports which storage discipline v uses.
func (v Value) Kind() Kind { return v.kind }

// IsFunction reports whether v holds a function reference.
func (v Value) IsFunction() bool { return v.kind == Function }

// Function returns the wrapped FunctionDef, or nil if v is not a
// Function value.
func (v Value) Function() *ast.FunctionDef { return v.fn }

// Minimum returns the value's declared length floor.
func (v Value) Minimum() int { return v.minimum }

// Data returns a fresh copy of the value's elements; Function values
// have none.
func (v Value) Data() []int32 { return cloneInts(v.data) }

// Len returns the current storage length (0 for Function).
func (v Value) Len() int {
	if v.kind == Function {
		return 0
	}
	return len(v.data)
}

// Clone returns an independently-owned copy of v, matching the
// Language's read-produces-a-fresh-buffer semantics.
func (v Value) Clone() Value {
	if v.kind == Function {
		return v
	}
	return Value{kind: v.kind, data: cloneInts(v.data), minimum: v.minimum}
}

// FromDescriptor constructs a Value according to the four shapes an
// ArrayDescriptor can take (spec §4.3's "construct from descriptor"
// rules). init is nil when no initializer was supplied.
func FromDescriptor(desc ast.ArrayDescriptor, init *Value) (Value, error) {
	switch {
	case desc.Size != nil && !desc.CanGrow:
		n := *desc.Size
		if init == nil {
			return Value{}, diag.Errorf("Static array cannot be defined without a value.")
		}
		if init.Len() != n {
			return Value{}, diag.Errorf("expected an initializer of length %d, got %d", n, init.Len())
		}
		return NewFixed(init.Data()), nil

	case desc.Size != nil && desc.CanGrow:
		n := *desc.Size
		if init == nil {
			return Value{kind: Growable, data: make([]int32, n), minimum: n}, nil
		}
		if init.Len() < n {
			return Value{}, diag.Errorf("expected an initializer of length at least %d, got %d", n, init.Len())
		}
		return Value{kind: Growable, data: init.Data(), minimum: n}, nil

	case desc.Size == nil && desc.CanGrow:
		if init == nil {
			return Value{kind: Growable, data: nil, minimum: 0}, nil
		}
		return Value{kind: Growable, data: init.Data(), minimum: init.Len()}, nil

	default: // size == nil, !CanGrow : "[]" — legal only with an initializer.
		if init == nil {
			return Value{}, diag.Errorf("array descriptor '[]' requires an initializer to supply its size")
		}
		return NewFixed(init.Data()), nil
	}
}

// Assign implements the §4.3 assignment contract: `dst = src`. dst is
// mutated in place; its minimum is preserved for Growable destinations.
func (dst *Value) Assign(src Value) error {
	if dst.kind != Function && src.IsFunction() {
		return diag.Errorf("cannot assign a function value to an array binding")
	}
	switch dst.kind {
	case Growable:
		if src.Len() < dst.minimum {
			return diag.Errorf("cannot assign a value of length %d to a growable array with minimum length %d", src.Len(), dst.minimum)
		}
		dst.data = src.Data()
		return nil

	case Fixed:
		if src.Len() != dst.minimum {
			return diag.Errorf("cannot assign a value of length %d to a fixed array of length %d", src.Len(), dst.minimum)
		}
		dst.data = src.Data()
		return nil

	case Function:
		if !src.IsFunction() {
			return diag.Errorf("cannot assign a non-function value to a function binding")
		}
		dst.fn = src.fn
		return nil
	}
	return nil
}

func elementwise(a, b Value, op func(x, y int32) int32) (Value, error) {
	if a.Len() != b.Len() {
		return Value{}, diag.Errorf("arithmetic requires operands of equal length, got %d and %d", a.Len(), b.Len())
	}
	out := make([]int32, a.Len())
	for i := range out {
		out[i] = op(a.data[i], b.data[i])
	}
	return NewGrowable(out), nil
}

// Add, Sub, Mul, Div implement the four pointwise arithmetic operators.
func Add(a, b Value) (Value, error) { return elementwise(a, b, func(x, y int32) int32 { return x + y }) }
func Sub(a, b Value) (Value, error) { return elementwise(a, b, func(x, y int32) int32 { return x - y }) }
func Mul(a, b Value) (Value, error) { return elementwise(a, b, func(x, y int32) int32 { return x * y }) }

// Div performs elementwise integer division; a zero divisor is an
// evaluator error rather than host-defined behavior.
func Div(a, b Value) (Value, error) {
	if a.Len() != b.Len() {
		return Value{}, diag.Errorf("arithmetic requires operands of equal length, got %d and %d", a.Len(), b.Len())
	}
	out := make([]int32, a.Len())
	for i := range out {
		if b.data[i] == 0 {
			return Value{}, diag.Errorf("division by zero")
		}
		out[i] = a.data[i] / b.data[i]
	}
	return NewGrowable(out), nil
}

// Equal implements `==`: false on length mismatch, otherwise true iff
// every element pair is equal.
func Equal(a, b Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// NotEqual implements the Language's literal `!=` semantics: false on
// length mismatch, otherwise true only when *every* element pair
// differs (not "any pair differs" — see spec §4.3's open question).
func NotEqual(a, b Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.data {
		if a.data[i] == b.data[i] {
			return false
		}
	}
	return true
}

func allPairs(a, b Value, rel func(x, y int32) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.data {
		if !rel(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

func Less(a, b Value) bool         { return allPairs(a, b, func(x, y int32) bool { return x < y }) }
func LessEqual(a, b Value) bool    { return allPairs(a, b, func(x, y int32) bool { return x <= y }) }
func Greater(a, b Value) bool      { return allPairs(a, b, func(x, y int32) bool { return x > y }) }
func GreaterEqual(a, b Value) bool { return allPairs(a, b, func(x, y int32) bool { return x >= y }) }

// Slice implements postfix Range application: a new Fixed value of
// length end-start copying [start, end) from v.
func (v Value) Slice(start, end int) (Value, error) {
	if start < 0 || end < start || end > v.Len() {
		return Value{}, diag.Errorf("range [%d:%d] out of bounds for array of length %d", start, end, v.Len())
	}
	return NewFixed(v.data[start:end]), nil
}

// Append implements the `append` builtin method: concatenation.
func (v Value) Append(other Value) Value {
	out := make([]int32, 0, v.Len()+other.Len())
	out = append(out, v.data...)
	out = append(out, other.data...)
	return NewGrowable(out)
}

// Sqrt implements the `sqrt` builtin method: elementwise truncated
// integer square root.
func (v Value) Sqrt() (Value, error) {
	out := make([]int32, v.Len())
	for i, x := range v.data {
		if x < 0 {
			return Value{}, diag.Errorf("sqrt of a negative value")
		}
		out[i] = isqrt(x)
	}
	return NewGrowable(out), nil
}

func isqrt(n int32) int32 {
	if n == 0 {
		return 0
	}
	r := int64(1)
	for r*r <= int64(n) {
		r++
	}
	return int32(r - 1)
}

// Size implements the `size` builtin method: a one-element array
// containing the current length.
func (v Value) Size() Value {
	return NewGrowable([]int32{int32(v.Len())})
}

// String renders v as "[ e0, e1, …, e_{n-1} ]".
func (v Value) String() string {
	if v.kind == Function {
		return "<function>"
	}
	parts := make([]string, len(v.data))
	for i, x := range v.data {
		parts[i] = strconv.FormatInt(int64(x), 10)
	}
	if len(parts) == 0 {
		return "[ ]"
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

// Bytes renders v's elements truncated to bytes, for `print`/`read`
// interop with byte-oriented host I/O.
func (v Value) Bytes() []byte {
	out := make([]byte, len(v.data))
	for i, x := range v.data {
		out[i] = byte(x)
	}
	return out
}

// FromBytes builds a Growable value from raw bytes, each promoted to
// an int32 element (the Language's encoding for strings and file
// contents).
func FromBytes(b []byte) Value {
	out := make([]int32, len(b))
	for i, c := range b {
		out[i] = int32(c)
	}
	return NewGrowable(out)
}
