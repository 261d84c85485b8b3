// Package diag collects the error kinds the frontend and evaluator raise:
// LexError, ParseError (UnexpectedToken / UnexpectedEOF), and
// EvaluatorError. All three carry enough context to be rendered as the
// single stderr line the CLI prints on failure (spec §7).
package diag

import (
	"fmt"

	"github.com/rubiojr/intarr/token"
)

// LexError reports an unexpected character or an unterminated string
// literal encountered while scanning source bytes.
type LexError struct {
	Pos     token.Pos
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s (line %d, col %d)", e.Message, e.Pos.Line, e.Pos.Col)
}

// UnexpectedToken is raised when the parser finds a token it cannot use
// in the current production. Source labels the production being parsed
// (e.g. "Function Definition") so the message stays useful without a
// full grammar dump.
type UnexpectedToken struct {
	Source   string
	Got      token.Token
	Expected string
}

func (e *UnexpectedToken) Error() string {
	return fmt.Sprintf("%s: unexpected %s %q, expected %s (line %d, col %d)",
		e.Source, e.Got.Kind, e.Got.Lexeme, e.Expected, e.Got.Pos.Line, e.Got.Pos.Col)
}

// UnexpectedEOF is raised when the token stream ends before a production
// is complete.
type UnexpectedEOF struct {
	Source   string
	Expected string
}

func (e *UnexpectedEOF) Error() string {
	return fmt.Sprintf("%s: unexpected end of input, expected %s", e.Source, e.Expected)
}

// EvaluatorError is the catch-all runtime error kind: undefined names,
// arity mismatches, length mismatches, assignment-contract violations,
// out-of-range slices, and misuse of function-bound names in array
// position. CallStack is a trail of function-name frames, innermost
// first, comma-joined into the single-line message the CLI prints.
type EvaluatorError struct {
	Message   string
	CallStack []string
}

func (e *EvaluatorError) Error() string {
	if len(e.CallStack) == 0 {
		return e.Message
	}
	stack := ""
	for i, frame := range e.CallStack {
		if i > 0 {
			stack += ", "
		}
		stack += frame
	}
	return fmt.Sprintf("%s (in %s)", e.Message, stack)
}

// Errorf builds an EvaluatorError without a call stack. Callers that have
// a stack attach it with WithStack.
func Errorf(format string, args ...any) *EvaluatorError {
	return &EvaluatorError{Message: fmt.Sprintf(format, args...)}
}

// WithStack returns a copy of e with its call stack set, used at the
// point an error is about to cross a function-call boundary.
func (e *EvaluatorError) WithStack(stack []string) *EvaluatorError {
	return &EvaluatorError{Message: e.Message, CallStack: stack}
}
