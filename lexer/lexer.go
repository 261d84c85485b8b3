// Package lexer turns source bytes into a token stream (spec §4.1).
package lexer

import (
	"strings"

	"github.com/rubiojr/intarr/diag"
	"github.com/rubiojr/intarr/scanner"
	"github.com/rubiojr/intarr/token"
)

const symbols = "[]-><{}:+!=*/%;().,"

// Lex converts source bytes into a token stream, or fails with a
// *diag.LexError on the first invalid character or unterminated string.
func Lex(src string) ([]token.Token, error) {
	var toks []token.Token
	c := scanner.New(src)
	var prev byte

	for {
		ch, ok := c.Next()
		if !ok {
			break
		}
		pos := token.Pos{Line: c.Line(), Col: c.Col()}

		switch {
		case isSpace(ch):
			// discarded; line tracking handled by the cursor.

		case isAlpha(ch):
			lexeme := string(ch)
			for {
				nb, ok := c.Peek(1)
				if !ok || !isAlnum(nb) {
					break
				}
				c.Next()
				lexeme += string(nb)
			}
			toks = append(toks, token.Token{Kind: token.Identifier, Lexeme: lexeme, Pos: pos})

		case isDigit(ch) || (ch == '-' && !isDigitOrIdent(prev) && nextIsDigit(c)):
			lexeme := string(ch)
			for {
				nb, ok := c.Peek(1)
				if !ok || !isDigit(nb) {
					break
				}
				c.Next()
				lexeme += string(nb)
			}
			toks = append(toks, token.Token{Kind: token.IntLit, Lexeme: lexeme, Pos: pos})

		case ch == '"':
			lexeme, err := lexString(c, pos)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token.Token{Kind: token.StringLit, Lexeme: lexeme, Pos: pos})

		case strings.IndexByte(symbols, ch) >= 0:
			toks = append(toks, token.Token{Kind: token.Symbol, Lexeme: string(ch), Pos: pos})

		default:
			return nil, &diag.LexError{Pos: pos, Message: "unexpected character '" + string(ch) + "'"}
		}

		prev = ch
	}

	return toks, nil
}

// lexString consumes the body of a double-quoted string literal (the
// opening quote has already been consumed) and decodes its escapes.
// Newlines inside the literal are permitted and pass through literally.
func lexString(c *scanner.Cursor, start token.Pos) (string, error) {
	var out strings.Builder
	for {
		ch, ok := c.Next()
		if !ok {
			return "", &diag.LexError{Pos: start, Message: "unterminated string literal"}
		}
		if ch == '"' {
			return out.String(), nil
		}
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}
		esc, ok := c.Next()
		if !ok {
			return "", &diag.LexError{Pos: start, Message: "unterminated string literal"}
		}
		switch esc {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		case '\'':
			out.WriteByte('\'')
		case '0':
			out.WriteByte(0)
		default:
			return "", &diag.LexError{
				Pos:     token.Pos{Line: c.Line(), Col: c.Col()},
				Message: "unexpected character after '\\': '" + string(esc) + "'",
			}
		}
	}
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isAlpha(ch byte) bool { return ch == '_' || ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' }
func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isAlnum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }

func isDigitOrIdent(ch byte) bool { return isAlnum(ch) }

func nextIsDigit(c *scanner.Cursor) bool {
	nb, ok := c.Peek(1)
	return ok && isDigit(nb)
}
