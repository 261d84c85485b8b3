package ast

import (
	"fmt"
	"strings"
)

// Print renders a Program back into intarr source text. It is the
// canonical printer spec §8's round-trip property test relies on:
// Print(Parse(Print(p))) must be structurally equal to p. It does not
// aim to reproduce the original formatting, only a form the parser can
// re-read unambiguously.
func Print(p *Program) string {
	var b strings.Builder
	for _, item := range p.Items {
		printTopLevel(&b, item)
	}
	return b.String()
}

func printTopLevel(b *strings.Builder, item TopLevel) {
	switch n := item.(type) {
	case *FunctionDef:
		printFunctionDef(b, n)
	case *Use:
		printUse(b, n)
	}
}

// printUse renders a Use node back into its original surface form.
// The parser encodes both a "path" literal and a <header> name as the
// same byte-vector IntVecLiteral (see parser.parseUse), so the printer
// has to decode it and pick the right quoting based on Kind rather than
// delegating to printExpr, which would render it as an int-array literal.
func printUse(b *strings.Builder, u *Use) {
	lit, _ := UnwrapArrayExpr(u.Target.Primary).(*IntVecLiteral)
	raw := intsToString(lit.Values)
	if u.Kind == StandardHeader {
		fmt.Fprintf(b, "use <%s>;\n", raw)
		return
	}
	fmt.Fprintf(b, "use %q;\n", raw)
}

func intsToString(vs []int) string {
	bs := make([]byte, len(vs))
	for i, v := range vs {
		bs[i] = byte(v)
	}
	return string(bs)
}

func printFunctionDef(b *strings.Builder, f *FunctionDef) {
	fmt.Fprintf(b, "fn %s(", f.Name)
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %s", p.Name, printDescriptor(p.Descriptor))
	}
	fmt.Fprintf(b, ") -> %s {\n", printDescriptor(f.Output))
	printBody(b, f.Body, 1)
	b.WriteString("}\n")
}

func printDescriptor(d ArrayDescriptor) string {
	var b strings.Builder
	b.WriteByte('[')
	if d.Size != nil {
		fmt.Fprintf(&b, "%d", *d.Size)
	}
	if d.CanGrow {
		b.WriteByte('+')
	}
	b.WriteByte(']')
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("    ")
	}
}

func printBody(b *strings.Builder, body Body, depth int) {
	for _, stmt := range body {
		indent(b, depth)
		printStatement(b, stmt, depth)
	}
}

func printStatement(b *strings.Builder, stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *VarDecl:
		fmt.Fprintf(b, "let %s: %s", s.Name, printDescriptor(s.Descriptor))
		if s.Initializer.Primary != nil {
			fmt.Fprintf(b, " = %s", printExpr(s.Initializer))
		}
		b.WriteString(";\n")
	case *VarAssign:
		fmt.Fprintf(b, "%s = %s;\n", s.Name, printExpr(s.RHS))
	case *If:
		printIf(b, s, depth)
	case *WhileLoop:
		fmt.Fprintf(b, "while %s {\n", printCondition(s.Condition))
		printBody(b, s.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")
	case *ForLoop:
		fmt.Fprintf(b, "for %s: %s {\n", s.Element, printExpr(s.Iterable))
		printBody(b, s.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")
	case *Return:
		fmt.Fprintf(b, "return %s;\n", printExpr(s.Expr))
	case *FunctionCall:
		fmt.Fprintf(b, "%s;\n", printCall(s))
	}
}

func printIf(b *strings.Builder, s *If, depth int) {
	fmt.Fprintf(b, "if %s {\n", printCondition(s.Condition))
	printBody(b, s.Body, depth+1)
	indent(b, depth)
	b.WriteString("}")
	for _, ei := range s.ElseIfs {
		fmt.Fprintf(b, " else if %s {\n", printCondition(ei.Condition))
		printBody(b, ei.Body, depth+1)
		indent(b, depth)
		b.WriteString("}")
	}
	if s.ElseBody != nil {
		b.WriteString(" else {\n")
		printBody(b, s.ElseBody, depth+1)
		indent(b, depth)
		b.WriteString("}")
	}
	b.WriteString("\n")
}

func printCondition(c Condition) string {
	switch cc := c.(type) {
	case *IfCompare:
		return fmt.Sprintf("%s %s %s", printExpr(cc.LHS), cmpOpStr(cc.Op), printExpr(cc.RHS))
	case *IfDecl:
		d := cc.Decl
		s := fmt.Sprintf("let %s: %s", d.Name, printDescriptor(d.Descriptor))
		if d.Initializer.Primary != nil {
			s += " = " + printExpr(d.Initializer)
		}
		return s
	}
	return ""
}

func cmpOpStr(op CmpOp) string {
	switch op {
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	}
	return "?"
}

func printCall(c *FunctionCall) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = printExpr(a)
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

func printExpr(e Expression) string {
	var b strings.Builder
	printPrimary(&b, e.Primary)
	for _, p := range e.Postfix {
		switch pf := p.(type) {
		case *Range:
			b.WriteByte('[')
			if pf.Start != nil {
				b.WriteString(printBound(pf.Start))
			}
			b.WriteByte(':')
			if pf.End != nil {
				b.WriteString(printBound(pf.End))
			}
			b.WriteByte(']')
		case *Method:
			args := make([]string, len(pf.Args))
			for i, a := range pf.Args {
				args[i] = printExpr(a)
			}
			fmt.Fprintf(&b, ".%s(%s)", pf.Name, strings.Join(args, ", "))
		}
	}
	return b.String()
}

func printBound(b *Bound) string {
	if b.Lit != nil {
		return fmt.Sprintf("%d", *b.Lit)
	}
	return printExpr(*b.Expr)
}

func printPrimary(b *strings.Builder, p Primary) {
	if a, ok := p.(*Arithmetic); ok {
		fmt.Fprintf(b, "(%s %s %s)", printExpr(a.Left), arithOpStr(a.Op), printExpr(a.Right))
		return
	}
	switch ae := UnwrapArrayExpr(p).(type) {
	case *IntVecLiteral:
		parts := make([]string, len(ae.Values))
		for i, v := range ae.Values {
			parts[i] = fmt.Sprintf("%d", v)
		}
		fmt.Fprintf(b, "[%s]", strings.Join(parts, ", "))
	case *Ident:
		b.WriteString(ae.Name)
	case *FunctionCall:
		b.WriteString(printCall(ae))
	}
}

func arithOpStr(op ArithOp) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}
