package parser

import (
	"github.com/rubiojr/intarr/ast"
	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/token"
)

// opEntry is one slot on the shunting-yard operator stack: either a real
// arithmetic operator or a '(' sentinel marking a parenthesized group.
type opEntry struct {
	op      ast.ArithOp
	isParen bool
}

func precedence(op ast.ArithOp) int {
	switch op {
	case ast.Mul, ast.Div:
		return 2
	default:
		return 1
	}
}

func symbolToArithOp(sym string) (ast.ArithOp, bool) {
	switch sym {
	case "+":
		return ast.Add, true
	case "-":
		return ast.Sub, true
	case "*":
		return ast.Mul, true
	case "/":
		return ast.Div, true
	default:
		return 0, false
	}
}

// parseExpression parses an arithmetic expression via the Shunting-Yard
// algorithm (spec §4.2.1): operands are scanned left-to-right onto an
// output stack, operators onto a precedence stack, with '(' / ')'
// handled as sentinels. When the whole scan reduces to a single
// operand, that operand's Expression (postfix already attached) is
// returned unchanged; otherwise the folded Arithmetic tree becomes the
// Primary of a fresh, postfix-less Expression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	const src = "Expression"
	var operands []ast.Expression
	var operators []opEntry
	openParens := 0

	pop := func() error {
		if len(operands) < 2 || len(operators) == 0 {
			return &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "an operand"}
		}
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, ast.Expression{Primary: &ast.Arithmetic{Op: top.op, Left: left, Right: right}})
		return nil
	}

	for {
		if p.checkSymbol("(") {
			p.advance()
			operators = append(operators, opEntry{isParen: true})
			openParens++
			continue
		}
		if !isOperandStart(p.cur()) {
			return ast.Expression{}, &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "an expression"}
		}
		operand, err := p.parseOperand()
		if err != nil {
			return ast.Expression{}, err
		}
		operands = append(operands, operand)

	scanOperators:
		for {
			switch {
			case p.checkSymbol("+") || p.checkSymbol("-") || p.checkSymbol("*") || p.checkSymbol("/"):
				op, _ := symbolToArithOp(p.cur().Lexeme)
				prec := precedence(op)
				for len(operators) > 0 && !operators[len(operators)-1].isParen && precedence(operators[len(operators)-1].op) >= prec {
					if err := pop(); err != nil {
						return ast.Expression{}, err
					}
				}
				p.advance()
				operators = append(operators, opEntry{op: op})
				break scanOperators

			case p.checkSymbol(")") && openParens > 0:
				p.advance()
				for len(operators) > 0 && !operators[len(operators)-1].isParen {
					if err := pop(); err != nil {
						return ast.Expression{}, err
					}
				}
				if len(operators) == 0 {
					return ast.Expression{}, &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "matching '('"}
				}
				operators = operators[:len(operators)-1] // discard the paren sentinel
				openParens--
				continue scanOperators

			default:
				goto done
			}
		}
	}

done:
	for len(operators) > 0 {
		if err := pop(); err != nil {
			return ast.Expression{}, err
		}
	}
	if len(operands) != 1 {
		return ast.Expression{}, &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "a single expression"}
	}
	return operands[0], nil
}

func isOperandStart(t token.Token) bool {
	if t.Kind == token.StringLit || t.Kind == token.Identifier {
		return true
	}
	return t.Is(token.Symbol, "[")
}

// parseOperand parses one Shunting-Yard operand: an ArrayExpr followed
// by its own postfix chain.
func (p *Parser) parseOperand() (ast.Expression, error) {
	ae, err := p.parseArrayExpr()
	if err != nil {
		return ast.Expression{}, err
	}
	postfix, err := p.parsePostfixChain()
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{Primary: ast.WrapArrayExpr(ae), Postfix: postfix}, nil
}

func (p *Parser) parseArrayExpr() (ast.ArrayExpr, error) {
	const src = "Array Expression"
	switch {
	case p.cur().Kind == token.StringLit:
		lit := p.advance().Lexeme
		return &ast.IntVecLiteral{Values: stringToInts(lit)}, nil

	case p.checkSymbol("["):
		p.advance()
		var values []int
		if !p.checkSymbol("]") {
			for {
				n, err := p.expectIntLit(src)
				if err != nil {
					return nil, err
				}
				values = append(values, n)
				if p.checkSymbol(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expectSymbol("]", src); err != nil {
			return nil, err
		}
		return &ast.IntVecLiteral{Values: values}, nil

	case p.cur().Kind == token.Identifier:
		name := p.advance().Lexeme
		if p.checkSymbol("(") {
			p.advance()
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
		return &ast.Ident{Name: name}, nil

	default:
		return nil, &diag.UnexpectedToken{Source: src, Got: p.cur(), Expected: "a string, array literal, identifier, or call"}
	}
}

func (p *Parser) parsePostfixChain() ([]ast.Postfix, error) {
	var chain []ast.Postfix
	for {
		switch {
		case p.checkSymbol("["):
			pf, err := p.parseRangePostfix()
			if err != nil {
				return nil, err
			}
			chain = append(chain, pf)
		case p.checkSymbol("."):
			pf, err := p.parseMethodPostfix()
			if err != nil {
				return nil, err
			}
			chain = append(chain, pf)
		default:
			return chain, nil
		}
	}
}

// parseRangePostfix parses `[n]` sugar (equivalent to `[n:n+1]`) or the
// general `[start?:end?]` form.
func (p *Parser) parseRangePostfix() (*ast.Range, error) {
	const src = "Range"
	p.advance() // '['

	if p.cur().Kind == token.IntLit && p.peekIsSymbol(1, "]") {
		n, err := p.expectIntLit(src)
		if err != nil {
			return nil, err
		}
		p.advance() // ']'
		end := n + 1
		return &ast.Range{Start: &ast.Bound{Lit: &n}, End: &ast.Bound{Lit: &end}}, nil
	}

	start, err := p.parseBound(":")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(":", src); err != nil {
		return nil, err
	}
	end, err := p.parseBound("]")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol("]", src); err != nil {
		return nil, err
	}
	return &ast.Range{Start: start, End: end}, nil
}

// parseBound parses an optional Range bound; it is absent when the next
// token is the given terminator symbol.
func (p *Parser) parseBound(terminator string) (*ast.Bound, error) {
	if p.checkSymbol(terminator) {
		return nil, nil
	}
	if p.cur().Kind == token.IntLit {
		n, err := p.expectIntLit("Range Bound")
		if err != nil {
			return nil, err
		}
		return &ast.Bound{Lit: &n}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Bound{Expr: &expr}, nil
}

func (p *Parser) parseMethodPostfix() (*ast.Method, error) {
	const src = "Method Call"
	p.advance() // '.'
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
	return &ast.Method{Name: name, Args: args}, nil
}
