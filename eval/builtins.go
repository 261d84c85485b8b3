package eval

import (
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/value"
)

var builtinArity = map[string]int{
	"print":   1,
	"read":    1,
	"getchar": 0,
	"clear":   0,
	"range":   1,
	"exit":    1,
}

func isBuiltin(name string) bool {
	_, ok := builtinArity[name]
	return ok
}

func (in *Interpreter) callBuiltin(name string, args []value.Value) (value.Value, error) {
	arity, ok := builtinArity[name]
	if !ok {
		return value.Value{}, diag.Errorf("Undefined function '%s'", name)
	}
	if len(args) != arity {
		return value.Value{}, diag.Errorf("'%s' expects %d argument(s), got %d", name, arity, len(args))
	}

	switch name {
	case "print":
		if err := in.host.Print(args[0].Bytes()); err != nil {
			return value.Value{}, diag.Errorf("print: %v", err)
		}
		return value.NewGrowable(nil), nil

	case "read":
		filename := string(args[0].Bytes())
		data, err := in.host.ReadFile(filename)
		if err != nil {
			return value.Value{}, diag.Errorf("read: %v", err)
		}
		return value.FromBytes(data), nil

	case "getchar":
		c, err := in.host.GetChar()
		if err != nil {
			return value.Value{}, diag.Errorf("getchar: %v", err)
		}
		return value.NewGrowable([]int32{int32(c)}), nil

	case "clear":
		if err := in.host.Clear(); err != nil {
			return value.Value{}, diag.Errorf("clear: %v", err)
		}
		return value.NewGrowable(nil), nil

	case "range":
		if args[0].Len() != 1 {
			return value.Value{}, diag.Errorf("range() expects a one-element argument, got length %d", args[0].Len())
		}
		n := args[0].Data()[0]
		if n < 0 {
			return value.Value{}, diag.Errorf("range() expects a non-negative value, got %d", n)
		}
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(i)
		}
		return value.NewGrowable(out), nil

	case "exit":
		if args[0].Len() < 1 {
			return value.Value{}, diag.Errorf("exit() expects a non-empty argument")
		}
		in.host.Exit(int(args[0].Data()[0]))
		return value.Value{}, nil // unreachable: Exit terminates the process
	}
	return value.Value{}, diag.Errorf("Undefined function '%s'", name)
}
