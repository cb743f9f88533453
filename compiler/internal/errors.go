package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

// Every compile error is fatal to its unit. The three kinds below are the only ones the
// engine produces itself; I/O failures are wrapped and passed through.

// LexicalError reports source text the scanner cannot turn into a token.
type LexicalError struct {
	Line int
	Near string
	Msg  string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error near %q at line %d: %s", e.Near, e.Line, e.Msg)
}

// SyntaxError reports a token that does not fit the production being parsed.
type SyntaxError struct {
	Line       int
	Production string
	Expected   string
	Found      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d in %s: expected %s, found %s", e.Line, e.Production,
		e.Expected, e.Found)
}

// SemanticError reports a name that does not resolve, or a construct used where it has no meaning.
type SemanticError struct {
	Line int
	Name string
	Msg  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error at line %d near %s: %s", e.Line, e.Name, e.Msg)
}

func makeLexicalError(line int, near string, format string, args ...interface{}) error {
	return errors.WithStack(&LexicalError{Line: line, Near: near, Msg: fmt.Sprintf(format, args...)})
}

func makeSyntaxError(line int, production, expected, found string) error {
	return errors.WithStack(&SyntaxError{Line: line, Production: production, Expected: expected, Found: found})
}

func makeSemanticError(line int, name string, format string, args ...interface{}) error {
	return errors.WithStack(&SemanticError{Line: line, Name: name, Msg: fmt.Sprintf(format, args...)})
}
