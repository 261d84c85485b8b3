package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/intarr/ast"
)

func ints(xs ...int32) []int32 { return xs }

func descriptor(size *int, canGrow bool) ast.ArrayDescriptor {
	return ast.ArrayDescriptor{Size: size, CanGrow: canGrow}
}

func intp(n int) *int { return &n }

func TestFromDescriptorFixedRequiresInitializer(t *testing.T) {
	_, err := FromDescriptor(descriptor(intp(3), false), nil)
	require.Error(t, err)
}

func TestFromDescriptorFixedLengthMustMatch(t *testing.T) {
	init := NewGrowable(ints(1, 2, 3))
	v, err := FromDescriptor(descriptor(intp(3), false), &init)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, v.Minimum())
	assert.Equal(t, Fixed, v.Kind())

	_, err = FromDescriptor(descriptor(intp(4), false), &init)
	require.Error(t, err)
}

func TestFromDescriptorGrowableWithMinimumZeroFilled(t *testing.T) {
	v, err := FromDescriptor(descriptor(intp(3), true), nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0, 0}, v.Data())
	assert.Equal(t, 3, v.Minimum())
}

func TestFromDescriptorGrowableRejectsShortInitializer(t *testing.T) {
	init := NewGrowable(ints(1, 2))
	_, err := FromDescriptor(descriptor(intp(3), true), &init)
	require.Error(t, err)
}

func TestFromDescriptorFreelyGrowable(t *testing.T) {
	init := NewGrowable(ints(1, 2, 3))
	v, err := FromDescriptor(descriptor(nil, true), &init)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Minimum())

	empty, err := FromDescriptor(descriptor(nil, true), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Minimum())
	assert.Equal(t, 0, empty.Len())
}

func TestAssignGrowablePreservesMinimum(t *testing.T) {
	init := NewGrowable(ints(1, 2))
	g, err := FromDescriptor(descriptor(intp(2), true), &init)
	require.NoError(t, err)

	err = g.Assign(NewGrowable(ints(1, 2, 3, 4)))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4}, g.Data())
	assert.Equal(t, 2, g.Minimum())

	err = g.Assign(NewGrowable(ints(1)))
	require.Error(t, err)
}

func TestAssignFixedRequiresExactLength(t *testing.T) {
	f := NewFixed(ints(1, 2, 3))
	require.NoError(t, f.Assign(NewGrowable(ints(4, 5, 6))))
	assert.Equal(t, []int32{4, 5, 6}, f.Data())
	require.Error(t, f.Assign(NewGrowable(ints(1, 2))))
}

func TestArithmeticRequiresEqualLength(t *testing.T) {
	a := NewGrowable(ints(1, 2, 3))
	b := NewGrowable(ints(10, 20, 30))
	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int32{11, 22, 33}, sum.Data())

	_, err = Add(a, NewGrowable(ints(1)))
	require.Error(t, err)
}

func TestArithmeticIsCommutativeAndAssociative(t *testing.T) {
	a := NewGrowable(ints(1, 2, 3))
	b := NewGrowable(ints(4, 5, 6))
	c := NewGrowable(ints(7, 8, 9))

	ab, _ := Add(a, b)
	ba, _ := Add(b, a)
	assert.Equal(t, ab.Data(), ba.Data())

	abc1, _ := Add(ab, c)
	bc, _ := Add(b, c)
	abc2, _ := Add(a, bc)
	assert.Equal(t, abc1.Data(), abc2.Data())
}

func TestEqualAndNotEqualSemantics(t *testing.T) {
	a := NewGrowable(ints(1, 2, 3))
	b := NewGrowable(ints(1, 2, 3))
	assert.True(t, Equal(a, b))
	assert.False(t, NotEqual(a, b))

	// !=: true only when EVERY pair differs, not merely one.
	c := NewGrowable(ints(9, 2, 3))
	assert.False(t, NotEqual(a, c)) // only the first pair differs
	d := NewGrowable(ints(9, 9, 9))
	assert.True(t, NotEqual(a, d)) // every pair differs

	assert.False(t, Equal(a, NewGrowable(ints(1, 2))))
	assert.False(t, NotEqual(a, NewGrowable(ints(1, 2))))
}

func TestOrderingRequiresAllPairs(t *testing.T) {
	a := NewGrowable(ints(1, 2, 3))
	b := NewGrowable(ints(2, 3, 4))
	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
	assert.True(t, LessEqual(a, a))
	assert.False(t, Less(a, NewGrowable(ints(2, 1, 4))))
}

func TestSliceIdentity(t *testing.T) {
	a := NewGrowable(ints(1, 2, 3, 4, 5))
	s, err := a.Slice(0, a.Len())
	require.NoError(t, err)
	assert.Equal(t, a.Data(), s.Data())
	assert.Equal(t, Fixed, s.Kind())
}

func TestSliceOutOfBounds(t *testing.T) {
	a := NewGrowable(ints(1, 2, 3))
	_, err := a.Slice(1, 10)
	require.Error(t, err)
	_, err = a.Slice(2, 1)
	require.Error(t, err)
}

func TestAppendSizeSqrt(t *testing.T) {
	a := NewGrowable(ints(1, 4, 9))
	b := NewGrowable(ints(10, 20))
	appended := a.Append(b)
	assert.Equal(t, []int32{1, 4, 9, 10, 20}, appended.Data())

	size := a.Size()
	assert.Equal(t, []int32{3}, size.Data())

	sq, err := a.Sqrt()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, sq.Data())
}

func TestStringForm(t *testing.T) {
	assert.Equal(t, "[ 1, 2, 3 ]", NewGrowable(ints(1, 2, 3)).String())
	assert.Equal(t, "[ ]", NewGrowable(nil).String())
}

func TestFunctionAssignmentRejectsCrossKind(t *testing.T) {
	fn := NewFunction(&ast.FunctionDef{Name: "f"})
	arr := NewGrowable(ints(1))
	require.Error(t, fn.Assign(arr))
	require.Error(t, arr.Assign(fn))
}
