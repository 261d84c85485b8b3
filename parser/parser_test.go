package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := Parse(toks)
	require.NoError(t, err)
	return prog
}

func TestParseEmptyFunction(t *testing.T) {
	prog := parse(t, "fn main() -> [] {\n}\n")
	require.Len(t, prog.Items, 1)
	fn, ok := prog.Items[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.Empty(t, fn.Params)
	assert.Nil(t, fn.Output.Size)
	assert.False(t, fn.Output.CanGrow)
	assert.Empty(t, fn.Body)
}

func TestParseParamsAndDescriptors(t *testing.T) {
	prog := parse(t, "fn f(a: [3], b: [3+], c: [+]) -> [1] {\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	require.Len(t, fn.Params, 3)

	require.NotNil(t, fn.Params[0].Descriptor.Size)
	assert.Equal(t, 3, *fn.Params[0].Descriptor.Size)
	assert.False(t, fn.Params[0].Descriptor.CanGrow)

	require.NotNil(t, fn.Params[1].Descriptor.Size)
	assert.Equal(t, 3, *fn.Params[1].Descriptor.Size)
	assert.True(t, fn.Params[1].Descriptor.CanGrow)

	assert.Nil(t, fn.Params[2].Descriptor.Size)
	assert.True(t, fn.Params[2].Descriptor.CanGrow)

	require.NotNil(t, fn.Output.Size)
	assert.Equal(t, 1, *fn.Output.Size)
}

func TestParseVarDeclAndAssign(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    let x: [3] = [1, 2, 3];\n    x = [4, 5, 6];\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	require.Len(t, fn.Body, 2)

	decl, ok := fn.Body[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	lit := ast.UnwrapArrayExpr(decl.Initializer.Primary).(*ast.IntVecLiteral)
	assert.Equal(t, []int{1, 2, 3}, lit.Values)

	assign, ok := fn.Body[1].(*ast.VarAssign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    let x: [1] = a + b * c;\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	decl := fn.Body[0].(*ast.VarDecl)
	top := decl.Initializer.Primary.(*ast.Arithmetic)
	assert.Equal(t, ast.Add, top.Op)
	assert.Equal(t, "a", ast.UnwrapArrayExpr(top.Left.Primary).(*ast.Ident).Name)
	right := top.Right.Primary.(*ast.Arithmetic)
	assert.Equal(t, ast.Mul, right.Op)
}

func TestParseArithmeticLeftAssociative(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    let x: [1] = a - b - c;\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	decl := fn.Body[0].(*ast.VarDecl)
	top := decl.Initializer.Primary.(*ast.Arithmetic)
	assert.Equal(t, ast.Sub, top.Op)
	left := top.Left.Primary.(*ast.Arithmetic)
	assert.Equal(t, ast.Sub, left.Op)
	assert.Equal(t, "a", ast.UnwrapArrayExpr(left.Left.Primary).(*ast.Ident).Name)
	assert.Equal(t, "b", ast.UnwrapArrayExpr(left.Right.Primary).(*ast.Ident).Name)
	assert.Equal(t, "c", ast.UnwrapArrayExpr(top.Right.Primary).(*ast.Ident).Name)
}

func TestParseParenthesizedGroup(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    let x: [1] = (a + b) * c;\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	decl := fn.Body[0].(*ast.VarDecl)
	top := decl.Initializer.Primary.(*ast.Arithmetic)
	assert.Equal(t, ast.Mul, top.Op)
	left := top.Left.Primary.(*ast.Arithmetic)
	assert.Equal(t, ast.Add, left.Op)
}

func TestParseRangePostfixAndSugar(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    let x: [1] = a[0:2];\n    let y: [1] = a[0];\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)

	decl := fn.Body[0].(*ast.VarDecl)
	rng := decl.Initializer.Postfix[0].(*ast.Range)
	assert.Equal(t, 0, *rng.Start.Lit)
	assert.Equal(t, 2, *rng.End.Lit)

	decl2 := fn.Body[1].(*ast.VarDecl)
	rng2 := decl2.Initializer.Postfix[0].(*ast.Range)
	assert.Equal(t, 0, *rng2.Start.Lit)
	assert.Equal(t, 1, *rng2.End.Lit)
}

func TestParseMethodPostfix(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    let x: [1] = a.size();\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	decl := fn.Body[0].(*ast.VarDecl)
	m := decl.Initializer.Postfix[0].(*ast.Method)
	assert.Equal(t, "size", m.Name)
}

func TestParseIfCompareAndElseIf(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    if a == b {\n    } else if a != b {\n    } else {\n    }\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	ifs := fn.Body[0].(*ast.If)
	cmp := ifs.Condition.(*ast.IfCompare)
	assert.Equal(t, ast.EQ, cmp.Op)
	require.Len(t, ifs.ElseIfs, 1)
	elseCmp := ifs.ElseIfs[0].Condition.(*ast.IfCompare)
	assert.Equal(t, ast.NE, elseCmp.Op)
	assert.NotNil(t, ifs.ElseBody)
}

func TestParseIfLet(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    if let x: [3] = src {\n    }\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	ifs := fn.Body[0].(*ast.If)
	decl := ifs.Condition.(*ast.IfDecl)
	assert.Equal(t, "x", decl.Decl.Name)
}

func TestParseWhileAndFor(t *testing.T) {
	prog := parse(t, "fn f() -> [] {\n    while i < n {\n    }\n    for e: xs {\n    }\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	_, ok := fn.Body[0].(*ast.WhileLoop)
	require.True(t, ok)
	forLoop, ok := fn.Body[1].(*ast.ForLoop)
	require.True(t, ok)
	assert.Equal(t, "e", forLoop.Element)
}

func TestParseFunctionCallStatementAndReturn(t *testing.T) {
	prog := parse(t, "fn f() -> [1] {\n    print(x);\n    return x;\n}\n")
	fn := prog.Items[0].(*ast.FunctionDef)
	call, ok := fn.Body[0].(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "print", call.Name)
	ret, ok := fn.Body[1].(*ast.Return)
	require.True(t, ok)
	assert.Equal(t, "x", ast.UnwrapArrayExpr(ret.Expr.Primary).(*ast.Ident).Name)
}

func TestParseUsePathAndHeader(t *testing.T) {
	prog := parse(t, "use \"lib.ir\";\nuse <io>;\nfn main() -> [] {\n}\n")
	use1, ok := prog.Items[0].(*ast.Use)
	require.True(t, ok)
	assert.Equal(t, ast.PathTarget, use1.Kind)
	use2, ok := prog.Items[1].(*ast.Use)
	require.True(t, ok)
	assert.Equal(t, ast.StandardHeader, use2.Kind)
}

func TestParseUnexpectedTokenIsError(t *testing.T) {
	toks, err := lexer.Lex("fn f() -> [] { let; }")
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
}

func TestParseUnexpectedEOFIsError(t *testing.T) {
	toks, err := lexer.Lex("fn f() -> [] {")
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
}

// TestPrintParseRoundTrip exercises spec §8's canonical-printer round
// trip: Print(Parse(Print(p))) must equal Print(p).
func TestPrintParseRoundTrip(t *testing.T) {
	src := `fn sum(xs: [3]) -> [1] {
    let total: [1] = [0];
    for e: xs {
        total = total + e;
    }
    return total;
}
`
	prog := parse(t, src)
	printed := ast.Print(prog)
	reToks, err := lexer.Lex(printed)
	require.NoError(t, err)
	reprog, err := Parse(reToks)
	require.NoError(t, err)
	assert.Equal(t, printed, ast.Print(reprog))
}

// TestPrintParseRoundTripUse exercises the same property across both
// use forms, which the canonical printer has to decode back out of
// their shared byte-vector encoding rather than print as int arrays.
func TestPrintParseRoundTripUse(t *testing.T) {
	src := "use \"lib.ints\";\nuse <io>;\nfn main() -> [] {\n}\n"
	prog := parse(t, src)
	printed := ast.Print(prog)
	reToks, err := lexer.Lex(printed)
	require.NoError(t, err)
	reprog, err := Parse(reToks)
	require.NoError(t, err)
	assert.Equal(t, printed, ast.Print(reprog))

	use1, ok := reprog.Items[0].(*ast.Use)
	require.True(t, ok)
	assert.Equal(t, ast.PathTarget, use1.Kind)
	use2, ok := reprog.Items[1].(*ast.Use)
	require.True(t, ok)
	assert.Equal(t, ast.StandardHeader, use2.Kind)
}
