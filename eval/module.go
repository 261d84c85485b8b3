package eval

import (
	"os"
	"path/filepath"

	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/lexer"
	"github.com/rubiojr/intarr/parser"
	"github.com/rubiojr/intarr/value"
)

// LoadFile is the module loader's entry point for the program's root
// file (spec §4.6). It behaves exactly like a `use` of that path: it
// is only ever read once even if something later re-`use`s it.
func (in *Interpreter) LoadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return diag.Errorf("cannot resolve '%s': %v", path, err)
	}
	return in.loadPath(abs)
}

func (in *Interpreter) loadPath(path string) error {
	if in.loaded[path] {
		return nil
	}
	in.loaded[path] = true

	data, err := in.host.ReadFile(path)
	if err != nil {
		return diag.Errorf("cannot load '%s': %v", path, err)
	}
	toks, err := lexer.Lex(string(data))
	if err != nil {
		return err
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(path)
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.FunctionDef:
			in.root.Define(it.Name, value.NewFunction(it))
		case *ast.Use:
			target, err := in.resolveTarget(it, baseDir)
			if err != nil {
				return err
			}
			if err := in.loadPath(target); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveTarget maps a Use directive to a filesystem path. Path
// targets resolve relative to the directory of the file containing
// the `use`; standard headers search INTARR_PATH, a convenience the
// reference's "deployment concern" note leaves open.
func (in *Interpreter) resolveTarget(u *ast.Use, baseDir string) (string, error) {
	name := targetString(u.Target)
	switch u.Kind {
	case ast.PathTarget:
		if filepath.IsAbs(name) {
			return name, nil
		}
		return filepath.Join(baseDir, name), nil

	case ast.StandardHeader:
		for _, dir := range filepath.SplitList(os.Getenv("INTARR_PATH")) {
			candidate := filepath.Join(dir, name+".ints")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		candidate := filepath.Join(baseDir, name+".ints")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		return "", diag.Errorf("cannot resolve header <%s>: not found on INTARR_PATH", name)
	}
	return "", diag.Errorf("unreachable use-kind")
}

func targetString(e ast.Expression) string {
	lit, ok := ast.UnwrapArrayExpr(e.Primary).(*ast.IntVecLiteral)
	if !ok {
		return ""
	}
	b := make([]byte, len(lit.Values))
	for i, v := range lit.Values {
		b[i] = byte(v)
	}
	return string(b)
}
