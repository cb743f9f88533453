package internal

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xiaobogaga/jackc/util"
)

// A lazy scanner for jack.

// Jack language has those elements:
// * KeyWord: class, constructor, function, method, field, static, var, int, char, boolean, void, true,
// 			false, null, this, let, do, if, else, while, return.
// * Symbol: {, }, (, ), [, ], ., ,, ;, +, -, *, /, &, |, <, >, =, ~.
// * Constant: integer (0-32767), string ("xxx", no newline inside).
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /* */, /** */, //.

type TokenType int

const (
	KeywordTP TokenType = iota
	SymbolTP
	IdentifierTP
	IntegerTP
	StringTP
)

var tokenTypeTags = [...]string{
	KeywordTP:    "keyword",
	SymbolTP:     "symbol",
	IdentifierTP: "identifier",
	IntegerTP:    "integerConstant",
	StringTP:     "stringConstant",
}

// String returns the tag used for the type in token listings.
func (tp TokenType) String() string {
	return tokenTypeTags[tp]
}

type Keyword int

const (
	ClassKeyword Keyword = iota
	ConstructorKeyword
	FunctionKeyword
	MethodKeyword
	FieldKeyword
	StaticKeyword
	VarKeyword
	IntKeyword
	CharKeyword
	BooleanKeyword
	VoidKeyword
	TrueKeyword
	FalseKeyword
	NullKeyword
	ThisKeyword
	LetKeyword
	DoKeyword
	IfKeyword
	ElseKeyword
	WhileKeyword
	ReturnKeyword
)

var keywordNames = [...]string{
	ClassKeyword:       "class",
	ConstructorKeyword: "constructor",
	FunctionKeyword:    "function",
	MethodKeyword:      "method",
	FieldKeyword:       "field",
	StaticKeyword:      "static",
	VarKeyword:         "var",
	IntKeyword:         "int",
	CharKeyword:        "char",
	BooleanKeyword:     "boolean",
	VoidKeyword:        "void",
	TrueKeyword:        "true",
	FalseKeyword:       "false",
	NullKeyword:        "null",
	ThisKeyword:        "this",
	LetKeyword:         "let",
	DoKeyword:          "do",
	IfKeyword:          "if",
	ElseKeyword:        "else",
	WhileKeyword:       "while",
	ReturnKeyword:      "return",
}

// keywords is the mapping from the reserved words to their Keyword.
var keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		m[name] = Keyword(kw)
	}
	return m
}()

func (kw Keyword) String() string {
	return keywordNames[kw]
}

const symbols = "{}()[].,;+-*/&|<>=~"

// maxIntegerConstant is the largest literal the VM can push.
const maxIntegerConstant = 32767

// Token is one of KeywordToken, SymbolToken, IdentifierToken, IntegerToken or StringToken.
type Token interface {
	Type() TokenType
	Line() int
	String() string
}

type position struct {
	line int
}

func (p position) Line() int { return p.line }

type KeywordToken struct {
	position
	Keyword Keyword
}

func (t KeywordToken) Type() TokenType { return KeywordTP }
func (t KeywordToken) String() string  { return t.Keyword.String() }

type SymbolToken struct {
	position
	Symbol byte
}

func (t SymbolToken) Type() TokenType { return SymbolTP }
func (t SymbolToken) String() string  { return string(t.Symbol) }

type IdentifierToken struct {
	position
	Name string
}

func (t IdentifierToken) Type() TokenType { return IdentifierTP }
func (t IdentifierToken) String() string  { return t.Name }

// IntegerToken keeps the digits as scanned. The range is only checked by Value, so a
// literal too large for the VM is reported where it is used.
type IntegerToken struct {
	position
	Digits string
}

func (t IntegerToken) Type() TokenType { return IntegerTP }
func (t IntegerToken) String() string  { return t.Digits }

// Value returns the literal as a VM constant, or a LexicalError if it exceeds 32767.
func (t IntegerToken) Value() (int, error) {
	v, err := strconv.Atoi(t.Digits)
	if err != nil || v > maxIntegerConstant {
		return 0, makeLexicalError(t.line, t.Digits, "integer constant out of range 0..%d", maxIntegerConstant)
	}
	return v, nil
}

type StringToken struct {
	position
	Value string
}

func (t StringToken) Type() TokenType { return StringTP }
func (t StringToken) String() string  { return strconv.Quote(t.Value) }

// Scanner reads one compilation unit and hands out its tokens one at a time. Nothing is
// kept about tokens already returned.
type Scanner struct {
	rd   *bufio.Reader
	line int
	// err is sticky: once scanning failed or reached the end, every later call reports it.
	err error
}

func NewScanner(rd io.Reader) *Scanner {
	return &Scanner{rd: bufio.NewReader(rd), line: 1}
}

// CurrentLine returns the line the scanner stopped at.
func (scanner *Scanner) CurrentLine() int {
	return scanner.line
}

// HasMore reports whether another token (or a pending scan error) remains.
func (scanner *Scanner) HasMore() bool {
	return scanner.skip() != io.EOF
}

// Advance consumes and classifies the next token. It returns io.EOF when the input is exhausted.
func (scanner *Scanner) Advance() (Token, error) {
	if err := scanner.skip(); err != nil {
		return nil, err
	}
	c, _ := scanner.rd.ReadByte()
	pos := position{line: scanner.line}
	switch {
	case strings.IndexByte(symbols, c) >= 0:
		return SymbolToken{position: pos, Symbol: c}, nil
	case c == '"':
		return scanner.scanString(pos)
	case util.IsDigit(c):
		return IntegerToken{position: pos, Digits: scanner.readWhile(c, util.IsDigit)}, nil
	case util.IsIdentifierStart(c):
		word := scanner.readWhile(c, util.IsIdentifierPart)
		if kw, ok := keywords[word]; ok {
			return KeywordToken{position: pos, Keyword: kw}, nil
		}
		return IdentifierToken{position: pos, Name: word}, nil
	default:
		scanner.err = makeLexicalError(scanner.line, string(c), "unexpected character")
		return nil, scanner.err
	}
}

func (scanner *Scanner) skip() error {
	if scanner.err != nil {
		return scanner.err
	}
	err := scanner.skipBlankAndComments()
	var lexErr *LexicalError
	switch {
	case err == nil, err == io.EOF, errors.As(err, &lexErr):
		scanner.err = err
	default:
		scanner.err = errors.Wrap(err, "scanner")
	}
	return scanner.err
}

// skipBlankAndComments steps over blanks and comments and stops in front of the next
// token's first byte.
func (scanner *Scanner) skipBlankAndComments() error {
	for {
		next, err := scanner.rd.Peek(1)
		if err != nil {
			return err
		}
		c := next[0]
		switch {
		case c == '\n':
			scanner.line++
			scanner.rd.Discard(1)
		case util.IsBlank(c):
			scanner.rd.Discard(1)
		case c == '/':
			pair, _ := scanner.rd.Peek(2)
			if len(pair) < 2 || (pair[1] != '/' && pair[1] != '*') {
				// A divide symbol.
				return nil
			}
			scanner.rd.Discard(2)
			if pair[1] == '/' {
				err = scanner.skipLineComment()
			} else {
				err = scanner.skipBlockComment()
			}
			if err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (scanner *Scanner) skipLineComment() error {
	_, err := scanner.rd.ReadBytes('\n')
	if err != nil {
		return err
	}
	scanner.line++
	return nil
}

// skipBlockComment consumes through the closing */. Block comments do not nest.
func (scanner *Scanner) skipBlockComment() error {
	startLine := scanner.line
	var prev byte
	for {
		c, err := scanner.rd.ReadByte()
		if err == io.EOF {
			return makeLexicalError(startLine, "/*", "unterminated comment")
		}
		if err != nil {
			return err
		}
		if c == '\n' {
			scanner.line++
		}
		if prev == '*' && c == '/' {
			return nil
		}
		prev = c
	}
}

func (scanner *Scanner) scanString(pos position) (Token, error) {
	var sb strings.Builder
	for {
		c, err := scanner.rd.ReadByte()
		if err != nil && err != io.EOF {
			scanner.err = errors.Wrap(err, "scanner")
			return nil, scanner.err
		}
		if err == io.EOF || c == '\n' {
			scanner.err = makeLexicalError(pos.line, `"`+sb.String(), "unterminated string literal")
			return nil, scanner.err
		}
		if c == '"' {
			return scanner.checkString(pos, sb.String())
		}
		sb.WriteByte(c)
	}
}

// checkString rejects characters that do not fit a vm constant. Invalid utf-8 decodes to
// utf8.RuneError, which is out of range too.
func (scanner *Scanner) checkString(pos position, value string) (Token, error) {
	for _, r := range value {
		if r > maxIntegerConstant {
			scanner.err = makeLexicalError(pos.line, strconv.Quote(value),
				"character %U in string literal is out of range 0..%d", r, maxIntegerConstant)
			return nil, scanner.err
		}
	}
	return StringToken{position: pos, Value: value}, nil
}

// readWhile collects first and every following byte accepted by accept.
func (scanner *Scanner) readWhile(first byte, accept func(byte) bool) string {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		next, err := scanner.rd.Peek(1)
		if err != nil || !accept(next[0]) {
			return sb.String()
		}
		sb.WriteByte(next[0])
		scanner.rd.Discard(1)
	}
}
