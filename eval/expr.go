package eval

import (
	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/scope"
	"github.com/rubiojr/intarr/value"
)

func (in *Interpreter) evalExpression(e ast.Expression, sc *scope.Scope) (value.Value, error) {
	v, err := in.evalPrimary(e.Primary, sc)
	if err != nil {
		return value.Value{}, err
	}
	for _, pf := range e.Postfix {
		v, err = in.evalPostfix(v, pf, sc)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

func (in *Interpreter) evalPrimary(p ast.Primary, sc *scope.Scope) (value.Value, error) {
	if arith, ok := p.(*ast.Arithmetic); ok {
		l, err := in.evalExpression(arith.Left, sc)
		if err != nil {
			return value.Value{}, err
		}
		r, err := in.evalExpression(arith.Right, sc)
		if err != nil {
			return value.Value{}, err
		}
		switch arith.Op {
		case ast.Add:
			return value.Add(l, r)
		case ast.Sub:
			return value.Sub(l, r)
		case ast.Mul:
			return value.Mul(l, r)
		case ast.Div:
			return value.Div(l, r)
		}
		return value.Value{}, diag.Errorf("unreachable arithmetic operator")
	}

	switch ae := ast.UnwrapArrayExpr(p).(type) {
	case *ast.IntVecLiteral:
		data := make([]int32, len(ae.Values))
		for i, n := range ae.Values {
			data[i] = int32(n)
		}
		return value.NewGrowable(data), nil

	case *ast.Ident:
		v, err := sc.Get(ae.Name)
		if err != nil {
			return value.Value{}, err
		}
		if v.IsFunction() {
			return value.Value{}, diag.Errorf("cannot use function '%s' as an array value", ae.Name)
		}
		return v.Clone(), nil

	case *ast.FunctionCall:
		return in.callByName(ae.Name, ae.Args, sc)
	}
	return value.Value{}, diag.Errorf("unreachable array expression kind")
}

func (in *Interpreter) evalPostfix(v value.Value, pf ast.Postfix, sc *scope.Scope) (value.Value, error) {
	switch p := pf.(type) {
	case *ast.Range:
		start, err := in.resolveBound(p.Start, 0, sc)
		if err != nil {
			return value.Value{}, err
		}
		end, err := in.resolveBound(p.End, v.Len(), sc)
		if err != nil {
			return value.Value{}, err
		}
		return v.Slice(start, end)

	case *ast.Method:
		return in.evalMethod(v, p, sc)
	}
	return value.Value{}, diag.Errorf("unreachable postfix kind")
}

func (in *Interpreter) resolveBound(b *ast.Bound, def int, sc *scope.Scope) (int, error) {
	if b == nil {
		return def, nil
	}
	if b.Lit != nil {
		return *b.Lit, nil
	}
	v, err := in.evalExpression(*b.Expr, sc)
	if err != nil {
		return 0, err
	}
	if v.Len() != 1 {
		return 0, diag.Errorf("range bound must evaluate to a single integer, got length %d", v.Len())
	}
	n := v.Data()[0]
	if n < 0 {
		return 0, diag.Errorf("range bound must be non-negative, got %d", n)
	}
	return int(n), nil
}

func (in *Interpreter) evalMethod(v value.Value, m *ast.Method, sc *scope.Scope) (value.Value, error) {
	switch m.Name {
	case "append":
		if len(m.Args) != 1 {
			return value.Value{}, diag.Errorf("append() takes exactly 1 argument, got %d", len(m.Args))
		}
		arg, err := in.evalExpression(m.Args[0], sc)
		if err != nil {
			return value.Value{}, err
		}
		return v.Append(arg), nil

	case "sqrt":
		if len(m.Args) != 0 {
			return value.Value{}, diag.Errorf("sqrt() takes no arguments, got %d", len(m.Args))
		}
		return v.Sqrt()

	case "size":
		if len(m.Args) != 0 {
			return value.Value{}, diag.Errorf("size() takes no arguments, got %d", len(m.Args))
		}
		return v.Size(), nil
	}
	return value.Value{}, diag.Errorf("Undefined method '%s'", m.Name)
}

// callByName evaluates args in the caller's scope, then dispatches to
// a user-defined function if one is bound in the root scope, falling
// back to a builtin, and erroring if neither matches.
func (in *Interpreter) callByName(name string, argExprs []ast.Expression, callerScope *scope.Scope) (value.Value, error) {
	args := make([]value.Value, len(argExprs))
	for i, ae := range argExprs {
		v, err := in.evalExpression(ae, callerScope)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if in.root.Has(name) {
		fv, err := in.root.Get(name)
		if err != nil {
			return value.Value{}, err
		}
		if fv.IsFunction() {
			return in.callUserFunction(fv.Function(), args, callerScope)
		}
	}

	if isBuiltin(name) {
		return in.callBuiltin(name, args)
	}
	return value.Value{}, diag.Errorf("Undefined function '%s'", name)
}

// callUserFunction dispatches to fn with a fresh scope whose parent is
// the caller's scope — the reference's dynamic-scoping rule (spec
// §4.4's open question), preserved deliberately rather than switched
// to lexical scoping over fn's defining environment.
func (in *Interpreter) callUserFunction(fn *ast.FunctionDef, args []value.Value, callerScope *scope.Scope) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Value{}, diag.Errorf("function '%s' expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	in.frames = append(in.frames, fn.Name)
	defer func() { in.frames = in.frames[:len(in.frames)-1] }()

	child := callerScope.Push()
	for i, param := range fn.Params {
		v, err := value.FromDescriptor(param.Descriptor, &args[i])
		if err != nil {
			return value.Value{}, in.attachStack(err)
		}
		child.Define(param.Name, v)
	}
	ret, err := in.evalBody(fn.Body, child)
	if err != nil {
		return value.Value{}, in.attachStack(err)
	}
	if ret != nil {
		return *ret, nil
	}
	return value.NewGrowable(nil), nil
}

// attachStack folds the interpreter's current call stack into err the
// first time an EvaluatorError crosses a function-call boundary; errors
// that already carry a stack (attached by a deeper call) pass through
// unchanged, so the stack reflects the innermost failing call.
func (in *Interpreter) attachStack(err error) error {
	ee, ok := err.(*diag.EvaluatorError)
	if !ok || len(ee.CallStack) > 0 {
		return err
	}
	stack := make([]string, len(in.frames))
	for i, f := range in.frames {
		stack[len(in.frames)-1-i] = f
	}
	return ee.WithStack(stack)
}
