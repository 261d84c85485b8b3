// Package parser is a recursive-descent parser that turns a token stream
// into an *ast.Program (spec §4.2). Each production has its own method,
// named after the production it parses, mirroring the teacher's
// per-node Parse methods.
package parser

import (
	"strconv"

	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/token"
)

// Parser holds the token stream and a read cursor. It has no recovery:
// the first unexpected token or premature EOF aborts the parse.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over the given token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses the whole token stream into a Program.
func Parse(toks []token.Token) (*ast.Program, error) {
	return New(toks).Parse()
}

// Parse consumes the full token stream, returning a Program whose items
// are FunctionDef and Use nodes only (spec's top-level grammar).
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.atEnd() {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
	}
	return prog, nil
}

func (p *Parser) parseTopLevel() (ast.TopLevel, error) {
	switch {
	case p.checkKeyword("fn"):
		return p.parseFunctionDef()
	case p.checkKeyword("use"):
		return p.parseUse()
	default:
		return nil, &diag.UnexpectedToken{Source: "Program", Got: p.cur(), Expected: "'fn' or 'use'"}
	}
}

func (p *Parser) parseFunctionDef() (*ast.FunctionDef, error) {
	const src = "Function Definition"
	if _, err := p.expectKeyword("fn", src); err != nil {
		return nil, err
	}
	name, err := p.expectIdent(src)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol("(", src); err != nil {
		return nil, err
	}
	var params []ast.Param
	if !p.checkSymbol(")") {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.checkSymbol(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectSymbol(")", src); err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol("-", src); err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(">", src); err != nil {
		return nil, err
	}
	output, err := p.parseDescriptor()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Name: name, Params: params, Output: output, Body: body}, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	const src = "Param List"
	name, err := p.expectIdent(src)
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.expectSymbol(":", src); err != nil {
		return ast.Param{}, err
	}
	desc, err := p.parseDescriptor()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: name, Descriptor: desc}, nil
}

func (p *Parser) parseDescriptor() (ast.ArrayDescriptor, error) {
	const src = "Descriptor"
	if _, err := p.expectSymbol("[", src); err != nil {
		return ast.ArrayDescriptor{}, err
	}
	var desc ast.ArrayDescriptor
	if p.cur().Kind == token.IntLit {
		n, err := strconv.Atoi(p.cur().Lexeme)
		if err != nil || n < 0 {
			return ast.ArrayDescriptor{}, &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "a non-negative integer"}
		}
		p.advance()
		desc.Size = &n
	}
	if p.checkSymbol("+") {
		p.advance()
		desc.CanGrow = true
	}
	if _, err := p.expectSymbol("]", src); err != nil {
		return ast.ArrayDescriptor{}, err
	}
	return desc, nil
}

func (p *Parser) parseBody() (ast.Body, error) {
	const src = "Body"
	if _, err := p.expectSymbol("{", src); err != nil {
		return nil, err
	}
	var body ast.Body
	for !p.checkSymbol("}") {
		if p.atEnd() {
			return nil, &diag.UnexpectedEOF{Source: src, Expected: "'}'"}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.advance()
	return body, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.checkKeyword("if"):
		return p.parseIf()
	case p.checkKeyword("for"):
		return p.parseFor()
	case p.checkKeyword("while"):
		return p.parseWhile()
	case p.checkKeyword("return"):
		ret, err := p.parseReturn()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(";", "Statement"); err != nil {
			return nil, err
		}
		return ret, nil
	case p.checkKeyword("let"):
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(";", "Statement"); err != nil {
			return nil, err
		}
		return decl, nil
	case p.cur().Kind == token.Identifier:
		stmt, err := p.parseIdentStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(";", "Statement"); err != nil {
			return nil, err
		}
		return stmt, nil
	default:
		return nil, &diag.UnexpectedToken{Source: "Statement", Got: p.cur(), Expected: "a statement"}
	}
}

// parseIdentStatement handles the two statement shapes that begin with a
// bare identifier: a function call or a variable assignment.
func (p *Parser) parseIdentStatement() (ast.Statement, error) {
	name := p.cur().Lexeme
	if p.peekIsSymbol(1, "(") {
		return p.parseFunctionCall()
	}
	p.advance()
	if _, err := p.expectSymbol("=", "Statement"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.VarAssign{Name: name, RHS: rhs}, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	const src = "Variable Declaration"
	if _, err := p.expectKeyword("let", src); err != nil {
		return nil, err
	}
	name, err := p.expectIdent(src)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(":", src); err != nil {
		return nil, err
	}
	desc, err := p.parseDescriptor()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: name, Descriptor: desc}
	if p.checkSymbol("=") {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Initializer = init
	}
	return decl, nil
}

func (p *Parser) parseFunctionCall() (*ast.FunctionCall, error) {
	const src = "Function Call"
	name, err := p.expectIdent(src)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol("(", src); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.checkSymbol(")") {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.checkSymbol(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectSymbol(")", src); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Name: name, Args: args}, nil
}

func (p *Parser) parseUse() (*ast.Use, error) {
	const src = "Use Target"
	if _, err := p.expectKeyword("use", src); err != nil {
		return nil, err
	}
	if p.checkSymbol("<") {
		p.advance()
		name, err := p.expectIdent(src)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(">", src); err != nil {
			return nil, err
		}
		if p.checkSymbol(";") {
			p.advance()
		}
		target := ast.Expression{Primary: ast.WrapArrayExpr(&ast.IntVecLiteral{Values: stringToInts(name)})}
		return &ast.Use{Target: target, Kind: ast.StandardHeader}, nil
	}
	if p.cur().Kind != token.StringLit {
		return nil, &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "a string literal or '<header>'"}
	}
	lit := p.cur().Lexeme
	p.advance()
	if p.checkSymbol(";") {
		p.advance()
	}
	target := ast.Expression{Primary: ast.WrapArrayExpr(&ast.IntVecLiteral{Values: stringToInts(lit)})}
	return &ast.Use{Target: target, Kind: ast.PathTarget}, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	const src = "Return"
	if _, err := p.expectKeyword("return", src); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

func (p *Parser) parseWhile() (*ast.WhileLoop, error) {
	const src = "While Loop"
	if _, err := p.expectKeyword("while", src); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ast.ForLoop, error) {
	const src = "For Loop"
	if _, err := p.expectKeyword("for", src); err != nil {
		return nil, err
	}
	name, err := p.expectIdent(src)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(":", src); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Element: name, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	const src = "If"
	if _, err := p.expectKeyword("if", src); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Condition: cond, Body: body}
	for p.checkKeyword("else") {
		p.advance()
		if p.checkKeyword("if") {
			elseIfNode, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.ElseIfs = append(node.ElseIfs, ast.ElseIf{Condition: elseIfNode.Condition, Body: elseIfNode.Body})
			node.ElseIfs = append(node.ElseIfs, elseIfNode.ElseIfs...)
			if elseIfNode.ElseBody != nil {
				node.ElseBody = elseIfNode.ElseBody
			}
			break
		}
		elseBody, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		if elseBody == nil {
			elseBody = ast.Body{}
		}
		node.ElseBody = elseBody
		break
	}
	return node, nil
}

// parseCondition parses either an if-let VarDecl condition or a binary
// comparison of two Expressions.
func (p *Parser) parseCondition() (ast.Condition, error) {
	if p.checkKeyword("let") {
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		return &ast.IfDecl{Decl: decl}, nil
	}
	lhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	op, err := p.parseCmpOp()
	if err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.IfCompare{Op: op, LHS: lhs, RHS: rhs}, nil
}

func (p *Parser) parseCmpOp() (ast.CmpOp, error) {
	const src = "Comparison Operator"
	tok := p.cur()
	if tok.Kind != token.Symbol {
		return 0, &diag.UnexpectedToken{Source: src, Got: tok, Expected: "a comparison operator"}
	}
	switch tok.Lexeme {
	case "=":
		p.advance()
		if _, err := p.expectSymbol("=", src); err != nil {
			return 0, err
		}
		return ast.EQ, nil
	case "!":
		p.advance()
		if _, err := p.expectSymbol("=", src); err != nil {
			return 0, err
		}
		return ast.NE, nil
	case "<":
		p.advance()
		if p.checkSymbol("=") {
			p.advance()
			return ast.LE, nil
		}
		return ast.LT, nil
	case ">":
		p.advance()
		if p.checkSymbol("=") {
			p.advance()
			return ast.GE, nil
		}
		return ast.GT, nil
	default:
		return 0, &diag.UnexpectedToken{Source: src, Got: tok, Expected: "a comparison operator"}
	}
}

func stringToInts(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i])
	}
	return out
}
