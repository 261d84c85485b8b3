package parser

import (
	"strconv"

	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/token"
)

var eofToken = token.Token{Kind: token.EOF, Lexeme: "<eof>"}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return eofToken
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return eofToken
	}
	return p.toks[idx]
}

func (p *Parser) peekIsSymbol(offset int, sym string) bool {
	return p.peek(offset).Is(token.Symbol, sym)
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *Parser) checkSymbol(sym string) bool {
	return p.cur().Is(token.Symbol, sym)
}

func (p *Parser) checkKeyword(word string) bool {
	return p.cur().IsKeyword(word)
}

func (p *Parser) expectSymbol(sym, source string) (token.Token, error) {
	if p.atEnd() {
		return token.Token{}, &diag.UnexpectedEOF{Source: source, Expected: "'" + sym + "'"}
	}
	if !p.checkSymbol(sym) {
		return token.Token{}, &diag.UnexpectedToken{Source: source, Got: p.cur(), Expected: "'" + sym + "'"}
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(word, source string) (token.Token, error) {
	if p.atEnd() {
		return token.Token{}, &diag.UnexpectedEOF{Source: source, Expected: "'" + word + "'"}
	}
	if !p.checkKeyword(word) {
		return token.Token{}, &diag.UnexpectedToken{Source: source, Got: p.cur(), Expected: "'" + word + "'"}
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent(source string) (string, error) {
	if p.atEnd() {
		return "", &diag.UnexpectedEOF{Source: source, Expected: "an identifier"}
	}
	if p.cur().Kind != token.Identifier {
		return "", &diag.UnexpectedToken{Source: source, Got: p.cur(), Expected: "an identifier"}
	}
	return p.advance().Lexeme, nil
}

func (p *Parser) expectIntLit(source string) (int, error) {
	if p.atEnd() {
		return 0, &diag.UnexpectedEOF{Source: source, Expected: "an integer literal"}
	}
	if p.cur().Kind != token.IntLit {
		return 0, &diag.UnexpectedToken{Source: source, Got: p.cur(), Expected: "an integer literal"}
	}
	tok := p.advance()
	n, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		return 0, &diag.UnexpectedToken{Source: source, Got: tok, Expected: "a well-formed integer literal"}
	}
	return n, nil
}
