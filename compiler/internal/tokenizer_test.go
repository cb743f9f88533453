package internal

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll returns every token of content as "<type> <text>".
func scanAll(t *testing.T, content string) ([]string, error) {
	t.Helper()
	scanner := NewScanner(strings.NewReader(content))
	var tokens []string
	for scanner.HasMore() {
		token, err := scanner.Advance()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token.Type().String()+" "+token.String())
	}
	return tokens, nil
}

func TestScanner_Advance(t *testing.T) {
	testData := []struct {
		content  string
		expected []string
	}{
		{content: "class", expected: []string{"keyword class"}},
		{content: "classy", expected: []string{"identifier classy"}},
		{content: "_size12 size_1", expected: []string{"identifier _size12", "identifier size_1"}},
		{content: "12345", expected: []string{"integerConstant 12345"}},
		{content: `" hello"`, expected: []string{`stringConstant " hello"`}},
		{content: "a[i]=~b;", expected: []string{
			"identifier a", "symbol [", "identifier i", "symbol ]", "symbol =", "symbol ~", "identifier b",
			"symbol ;",
		}},
		{content: "x/y", expected: []string{"identifier x", "symbol /", "identifier y"}},
		{content: "12abc", expected: []string{"integerConstant 12", "identifier abc"}},
		{content: "", expected: nil},
		{content: "  \t\r\n ", expected: nil},
	}
	for _, data := range testData {
		tokens, err := scanAll(t, data.content)
		assert.Nil(t, err, data.content)
		assert.Equal(t, data.expected, tokens, data.content)
	}
}

func TestScanner_Comments(t *testing.T) {
	content := `
// A simple hello world jack program

/**
 * api comment
 */
class /* inline */ Main { // trailing
	/* spans
	   lines */ function
}
// last line without newline`
	tokens, err := scanAll(t, content)
	require.Nil(t, err)
	assert.Equal(t, []string{
		"keyword class", "identifier Main", "symbol {", "keyword function", "symbol }",
	}, tokens)
}

func TestScanner_LexicalErrors(t *testing.T) {
	testData := []struct {
		content string
		line    int
	}{
		{content: `let s = "hello;`, line: 1},
		{content: "let s = \"hel\nlo\";", line: 1},
		{content: "\nlet a = 1 # 2;", line: 2},
		{content: "class A { /* never closed", line: 1},
		{content: "let c = 'a';", line: 1},
		{content: "\n\nlet s = \"smile \U0001F600\";", line: 3},
		{content: "let s = \"a\xffb\";", line: 1},
	}
	for _, data := range testData {
		_, err := scanAll(t, data.content)
		var lexErr *LexicalError
		require.Error(t, err, data.content)
		require.ErrorAs(t, err, &lexErr, data.content)
		assert.Equal(t, data.line, lexErr.Line, data.content)
	}
}

func TestScanner_ErrorIsSticky(t *testing.T) {
	scanner := NewScanner(strings.NewReader("a $ b"))
	token, err := scanner.Advance()
	require.Nil(t, err)
	assert.Equal(t, "a", token.String())
	_, err = scanner.Advance()
	assert.Error(t, err)
	assert.True(t, scanner.HasMore())
	_, again := scanner.Advance()
	assert.Equal(t, err, again)
}

func TestScanner_EndOfInput(t *testing.T) {
	scanner := NewScanner(strings.NewReader("x // done"))
	assert.True(t, scanner.HasMore())
	_, err := scanner.Advance()
	require.Nil(t, err)
	assert.False(t, scanner.HasMore())
	_, err = scanner.Advance()
	assert.Equal(t, io.EOF, err)
}

func TestScanner_Lines(t *testing.T) {
	scanner := NewScanner(strings.NewReader("a\n/* x\n y */ b\n\n// c\n  d"))
	var lines []int
	for scanner.HasMore() {
		token, err := scanner.Advance()
		require.Nil(t, err)
		lines = append(lines, token.Line())
	}
	assert.Equal(t, []int{1, 3, 6}, lines)
}

func TestScanner_TokenPayload(t *testing.T) {
	scanner := NewScanner(strings.NewReader(`while "x y" 7 +`))
	token, _ := scanner.Advance()
	assert.Equal(t, WhileKeyword, token.(KeywordToken).Keyword)
	token, _ = scanner.Advance()
	assert.Equal(t, "x y", token.(StringToken).Value)
	token, _ = scanner.Advance()
	v, err := token.(IntegerToken).Value()
	assert.Nil(t, err)
	assert.Equal(t, 7, v)
	token, _ = scanner.Advance()
	assert.Equal(t, byte('+'), token.(SymbolToken).Symbol)
}

func TestIntegerToken_Value(t *testing.T) {
	testData := []struct {
		digits    string
		value     int
		expectErr bool
	}{
		{digits: "0", value: 0},
		{digits: "32767", value: 32767},
		{digits: "32768", expectErr: true},
		{digits: "99999999999999999999999", expectErr: true},
	}
	for _, data := range testData {
		v, err := IntegerToken{Digits: data.digits}.Value()
		if data.expectErr {
			var lexErr *LexicalError
			assert.ErrorAs(t, err, &lexErr, data.digits)
			continue
		}
		assert.Nil(t, err, data.digits)
		assert.Equal(t, data.value, v)
	}
}

func TestScanner_Deterministic(t *testing.T) {
	content := `class Main { function void main() { var Array a; let a[1] = "x" + 12; return; } }`
	first, err := scanAll(t, content)
	require.Nil(t, err)
	second, err := scanAll(t, content)
	require.Nil(t, err)
	assert.Equal(t, first, second)
}
