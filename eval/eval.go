// Package eval is the tree-walking evaluator (spec §4.5): it walks the
// AST built by package parser, dispatching builtins, control flow, and
// user-defined function calls through the scope chain in package
// scope and the value model in package value.
package eval

import (
	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/host"
	"github.com/rubiojr/intarr/scope"
	"github.com/rubiojr/intarr/value"
)

// Interpreter holds the state shared across one run: the root scope
// (where every loaded function is bound), the module loader's
// once-per-path ledger, and the host I/O surface builtins dispatch to.
type Interpreter struct {
	root   *scope.Scope
	loaded map[string]bool
	host   host.Host
	frames []string
}

// New creates an Interpreter with a fresh root scope.
func New(h host.Host) *Interpreter {
	return &Interpreter{root: scope.New(), loaded: make(map[string]bool), host: h}
}

// defineProgram registers a parsed Program's FunctionDef items into
// the root scope. Use items are the module loader's job (see module.go).
func (in *Interpreter) defineProgram(prog *ast.Program) {
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDef); ok {
			in.root.Define(fn.Name, value.NewFunction(fn))
		}
	}
}

// CallMain looks up and invokes `main` with the spec's argv encoding,
// if it is defined. It is a no-op (not an error) when `main` is absent.
//
// §4.5 describes the call as passing two arguments (an [argc] vector,
// then the flattened lengths-and-bytes vector), but its own scenario
// examples declare `main` with a single catch-all parameter. Rather
// than pick one and break the other, the argument list is adapted to
// however many parameters `main` actually declares: two params get the
// split form, one param gets both pieces concatenated ([argc] first),
// zero params get nothing. Any other arity falls through to the normal
// arity-mismatch error.
func (in *Interpreter) CallMain(argv []string) error {
	fn, err := in.root.Get("main")
	if err != nil || !fn.IsFunction() {
		return nil
	}
	argc := value.NewGrowable([]int32{int32(len(argv))})
	flat := flattenArgv(argv)

	var args []value.Value
	switch len(fn.Function().Params) {
	case 0:
		args = nil
	case 1:
		args = []value.Value{argc.Append(flat)}
	default:
		args = []value.Value{argc, flat}
	}
	_, err = in.callUserFunction(fn.Function(), args, in.root)
	return err
}

func flattenArgv(argv []string) value.Value {
	var out []int32
	for _, a := range argv {
		out = append(out, int32(len(a)))
		for _, b := range []byte(a) {
			out = append(out, int32(b))
		}
	}
	return value.NewGrowable(out)
}

// evalBody runs a sequence of statements in sc, short-circuiting on
// the first early return.
func (in *Interpreter) evalBody(body ast.Body, sc *scope.Scope) (*value.Value, error) {
	for _, stmt := range body {
		ret, err := in.evalStatement(stmt, sc)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (in *Interpreter) evalStatement(stmt ast.Statement, sc *scope.Scope) (*value.Value, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return nil, in.evalVarDecl(s, sc)

	case *ast.VarAssign:
		if !sc.HasRecursive(s.Name) {
			return nil, diag.Errorf("Undefined variable '%s'", s.Name)
		}
		rv, err := in.evalExpression(s.RHS, sc)
		if err != nil {
			return nil, err
		}
		return nil, sc.Set(s.Name, rv)

	case *ast.If:
		return in.evalIf(s, sc)

	case *ast.WhileLoop:
		return in.evalWhile(s, sc)

	case *ast.ForLoop:
		return in.evalFor(s, sc)

	case *ast.Return:
		v, err := in.evalExpression(s.Expr, sc)
		if err != nil {
			return nil, err
		}
		return &v, nil

	case *ast.FunctionCall:
		_, err := in.callByName(s.Name, s.Args, sc)
		return nil, err
	}
	return nil, diag.Errorf("unreachable statement kind")
}

func (in *Interpreter) evalVarDecl(s *ast.VarDecl, sc *scope.Scope) error {
	var initPtr *value.Value
	if s.Initializer.Primary != nil {
		iv, err := in.evalExpression(s.Initializer, sc)
		if err != nil {
			return err
		}
		initPtr = &iv
	}
	v, err := value.FromDescriptor(s.Descriptor, initPtr)
	if err != nil {
		return err
	}
	sc.Define(s.Name, v)
	return nil
}

func (in *Interpreter) evalWhile(s *ast.WhileLoop, sc *scope.Scope) (*value.Value, error) {
	body := sc.Push()
	for {
		ok, err := in.evalCondition(s.Condition, body)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		ret, err := in.evalBody(s.Body, body)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
}

func (in *Interpreter) evalFor(s *ast.ForLoop, sc *scope.Scope) (*value.Value, error) {
	iv, err := in.evalExpression(s.Iterable, sc)
	if err != nil {
		return nil, err
	}
	for _, elem := range iv.Data() {
		child := sc.Push()
		child.Define(s.Element, value.NewGrowable([]int32{elem}))
		ret, err := in.evalBody(s.Body, child)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (in *Interpreter) evalIf(s *ast.If, sc *scope.Scope) (*value.Value, error) {
	branch := sc.Push()
	taken, err := in.evalCondition(s.Condition, branch)
	if err != nil {
		return nil, err
	}
	if taken {
		return in.evalBody(s.Body, branch)
	}
	for _, ei := range s.ElseIfs {
		branch = sc.Push()
		taken, err := in.evalCondition(ei.Condition, branch)
		if err != nil {
			return nil, err
		}
		if taken {
			return in.evalBody(ei.Body, branch)
		}
	}
	if s.ElseBody != nil {
		return in.evalBody(s.ElseBody, sc.Push())
	}
	return nil, nil
}

// evalCondition evaluates an If/While condition. For *ast.IfDecl it
// also defines the declared variable into sc when the branch is taken,
// since an if-let's binding is only visible inside its own branch.
func (in *Interpreter) evalCondition(c ast.Condition, sc *scope.Scope) (bool, error) {
	switch cc := c.(type) {
	case *ast.IfCompare:
		lv, err := in.evalExpression(cc.LHS, sc)
		if err != nil {
			return false, err
		}
		rv, err := in.evalExpression(cc.RHS, sc)
		if err != nil {
			return false, err
		}
		return compare(cc.Op, lv, rv), nil

	case *ast.IfDecl:
		d := cc.Decl
		if d.Initializer.Primary == nil {
			return false, diag.Errorf("if-let condition requires an initializer")
		}
		iv, err := in.evalExpression(d.Initializer, sc)
		if err != nil {
			return false, err
		}
		if !descriptorCompatible(d.Descriptor, iv.Len()) {
			return false, nil
		}
		v, err := value.FromDescriptor(d.Descriptor, &iv)
		if err != nil {
			return false, err
		}
		sc.Define(d.Name, v)
		return true, nil
	}
	return false, diag.Errorf("unreachable condition kind")
}

func compare(op ast.CmpOp, l, r value.Value) bool {
	switch op {
	case ast.EQ:
		return value.Equal(l, r)
	case ast.NE:
		return value.NotEqual(l, r)
	case ast.LT:
		return value.Less(l, r)
	case ast.LE:
		return value.LessEqual(l, r)
	case ast.GT:
		return value.Greater(l, r)
	case ast.GE:
		return value.GreaterEqual(l, r)
	}
	return false
}

// descriptorCompatible implements the if-let taken-branch rule: the
// declared size must equal the initializer's length, or — when the
// descriptor is growable — be no greater than it.
func descriptorCompatible(desc ast.ArrayDescriptor, length int) bool {
	if desc.Size == nil {
		return true
	}
	if desc.CanGrow {
		return length >= *desc.Size
	}
	return length == *desc.Size
}
