package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/intarr/token"
)

func lexemes(t *testing.T, src string) []string {
	t.Helper()
	toks, err := Lex(src)
	require.NoError(t, err)
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Lexeme
	}
	return out
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks, err := Lex("fn main let x1")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	for _, tok := range toks {
		assert.Equal(t, token.Identifier, tok.Kind)
	}
	assert.Equal(t, []string{"fn", "main", "let", "x1"}, lexemes(t, "fn main let x1"))
}

func TestLexIntLiteral(t *testing.T) {
	toks, err := Lex("42")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.IntLit, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Lexeme)
}

func TestLexNegativeIntLiteral(t *testing.T) {
	// '-' after '=' cannot be binary subtraction, so it joins the literal.
	toks, err := Lex("x = -5")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "-5", toks[2].Lexeme)
	assert.Equal(t, token.IntLit, toks[2].Kind)
}

func TestLexMinusAfterDigitIsNotAbsorbed(t *testing.T) {
	// '-' immediately after a digit cannot be absorbed into the literal —
	// the previous byte is a digit, so it stays a standalone Symbol.
	toks, err := Lex("5-3")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.IntLit, toks[0].Kind)
	assert.Equal(t, "5", toks[0].Lexeme)
	assert.Equal(t, token.Symbol, toks[1].Kind)
	assert.Equal(t, "-", toks[1].Lexeme)
	assert.Equal(t, token.IntLit, toks[2].Kind)
	assert.Equal(t, "3", toks[2].Lexeme)
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex(`"\n\t\0"`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "\n\t\x00", toks[0].Lexeme)
}

func TestLexStringWithLiteralNewline(t *testing.T) {
	toks, err := Lex("\"a\nb\"")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "a\nb", toks[0].Lexeme)
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	_, err := Lex(`"abc`)
	require.Error(t, err)
}

func TestLexBadEscapeIsError(t *testing.T) {
	_, err := Lex(`"\q"`)
	require.Error(t, err)
}

func TestLexUnexpectedCharacterIsError(t *testing.T) {
	_, err := Lex("@")
	require.Error(t, err)
}

func TestLexSymbols(t *testing.T) {
	assert.Equal(t, []string{"[", "]", "{", "}", ":", "+", "(", ")", ",", ";", ".", "!", "=", "*", "/", "%", "<", ">"},
		lexemes(t, "[]{}:+(),;.!=*/%<>"))
}
