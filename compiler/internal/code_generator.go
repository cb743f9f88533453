package internal

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// The engine parses one class with a single token of lookahead and writes VM code while it
// parses. There is no syntax tree: declarations go straight into the symbol table, and
// statements and expressions are emitted as soon as they are recognised.

type Engine struct {
	scanner *Scanner
	table   *SymbolTable
	writer  *VMWriter

	// current is the lookahead token, nil at end of input.
	current Token

	className      string
	// subroutineKind is constructor, function or method for the subroutine being compiled.
	subroutineKind Keyword
	ifCounter      int
	whileCounter   int

	// tree receives the parse tree when set.
	tree *TreeWriter
}

func NewEngine(scanner *Scanner, table *SymbolTable, writer *VMWriter) *Engine {
	return &Engine{scanner: scanner, table: table, writer: writer}
}

// CompileUnit compiles the class read from rd and writes its VM code to w. Nothing is
// written to w unless the whole unit compiles.
func CompileUnit(rd io.Reader, w io.Writer) error {
	return CompileUnitWithTree(rd, w, nil)
}

// CompileUnitWithTree is CompileUnit that also writes the parse tree of the class to tree,
// unless tree is nil. Neither writer is touched unless the whole unit compiles.
func CompileUnitWithTree(rd io.Reader, w, tree io.Writer) error {
	buf, treeBuf := &bytes.Buffer{}, &bytes.Buffer{}
	writer := NewVMWriter(buf)
	engine := NewEngine(NewScanner(rd), NewSymbolTable(), writer)
	if tree != nil {
		engine.tree = NewTreeWriter(treeBuf)
	}
	if err := engine.CompileClass(); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if tree != nil {
		if err := engine.tree.Flush(); err != nil {
			return err
		}
		if _, err := tree.Write(treeBuf.Bytes()); err != nil {
			return errors.Wrap(err, "write parse tree")
		}
	}
	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write vm code")
}

// class := 'class' className '{' classVarDec* subroutineDec* '}'
func (engine *Engine) CompileClass() error {
	if err := engine.advance(); err != nil {
		return err
	}
	const production = "class"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, ClassKeyword); err != nil {
		return err
	}
	className, err := engine.expectIdentifier(production, "className")
	if err != nil {
		return err
	}
	engine.className = className
	if err := engine.expectSymbol(production, '{'); err != nil {
		return err
	}
	for engine.isKeyword(StaticKeyword, FieldKeyword) {
		if err := engine.compileClassVarDec(); err != nil {
			return err
		}
	}
	for engine.isKeyword(ConstructorKeyword, FunctionKeyword, MethodKeyword) {
		if err := engine.compileSubroutine(); err != nil {
			return err
		}
	}
	if err := engine.expectSymbol(production, '}'); err != nil {
		return err
	}
	// One class per unit.
	if engine.current != nil {
		return engine.syntaxError(production, "end of input")
	}
	return nil
}

// classVarDec := ('static'|'field') type varName (',' varName)* ';'
func (engine *Engine) compileClassVarDec() error {
	const production = "classVarDec"
	defer engine.open(production)()
	keyword, err := engine.expectKeyword(production, StaticKeyword, FieldKeyword)
	if err != nil {
		return err
	}
	kind := FieldKind
	if keyword == StaticKeyword {
		kind = StaticKind
	}
	return engine.compileVarNames(production, kind)
}

// compileVarNames parses `type varName (',' varName)* ';'` and defines every name with kind.
func (engine *Engine) compileVarNames(production string, kind Kind) error {
	tp, err := engine.compileType(production, false)
	if err != nil {
		return err
	}
	for {
		if err := engine.defineVar(production, tp, kind); err != nil {
			return err
		}
		if !engine.isSymbol(',') {
			break
		}
		if err := engine.advance(); err != nil {
			return err
		}
	}
	return engine.expectSymbol(production, ';')
}

func (engine *Engine) defineVar(production, tp string, kind Kind) error {
	line := engine.line()
	name, err := engine.expectIdentifier(production, "varName")
	if err != nil {
		return err
	}
	if engine.table.Declared(name, kind) {
		return makeSemanticError(line, name, "%s is already declared in this scope", name)
	}
	engine.table.Define(name, tp, kind)
	return nil
}

// compileType parses int, char, boolean or a class name, and void when allowVoid is set.
func (engine *Engine) compileType(production string, allowVoid bool) (string, error) {
	switch token := engine.current.(type) {
	case KeywordToken:
		switch token.Keyword {
		case IntKeyword, CharKeyword, BooleanKeyword:
			return token.Keyword.String(), engine.advance()
		case VoidKeyword:
			if allowVoid {
				return token.Keyword.String(), engine.advance()
			}
		}
	case IdentifierToken:
		return token.Name, engine.advance()
	}
	if allowVoid {
		return "", engine.syntaxError(production, "'void' or type")
	}
	return "", engine.syntaxError(production, "type")
}

// subroutineDec := ('constructor'|'function'|'method') ('void'|type) name '(' parameterList ')' subroutineBody
func (engine *Engine) compileSubroutine() error {
	const production = "subroutineDec"
	defer engine.open(production)()
	keyword, err := engine.expectKeyword(production, ConstructorKeyword, FunctionKeyword, MethodKeyword)
	if err != nil {
		return err
	}
	engine.table.StartSubroutine()
	engine.subroutineKind = keyword
	engine.ifCounter, engine.whileCounter = 0, 0
	if keyword == MethodKeyword {
		// The receiver. "this" is reserved so no parameter can collide with it.
		engine.table.Define("this", engine.className, ArgumentKind)
	}
	if _, err := engine.compileType(production, true); err != nil {
		return err
	}
	name, err := engine.expectIdentifier(production, "subroutineName")
	if err != nil {
		return err
	}
	if err := engine.expectSymbol(production, '('); err != nil {
		return err
	}
	if err := engine.compileParameterList(); err != nil {
		return err
	}
	if err := engine.expectSymbol(production, ')'); err != nil {
		return err
	}
	return engine.compileSubroutineBody(name)
}

// parameterList := ( type varName (',' type varName)* )?
func (engine *Engine) compileParameterList() error {
	const production = "parameterList"
	defer engine.open(production)()
	if engine.isSymbol(')') {
		return nil
	}
	for {
		tp, err := engine.compileType(production, false)
		if err != nil {
			return err
		}
		if err := engine.defineVar(production, tp, ArgumentKind); err != nil {
			return err
		}
		if !engine.isSymbol(',') {
			return nil
		}
		if err := engine.advance(); err != nil {
			return err
		}
	}
}

// subroutineBody := '{' varDec* statements '}'
//
// The function command needs the number of locals, so it is written after the var
// declarations, followed by the prologue:
// * constructor: push constant nFields, call Memory.alloc 1, pop pointer 0
// * method: push argument 0, pop pointer 0
func (engine *Engine) compileSubroutineBody(name string) error {
	const production = "subroutineBody"
	defer engine.open(production)()
	if err := engine.expectSymbol(production, '{'); err != nil {
		return err
	}
	for engine.isKeyword(VarKeyword) {
		if err := engine.compileVarDec(); err != nil {
			return err
		}
	}
	engine.writer.WriteFunction(engine.className+"."+name, engine.table.CountOf(LocalKind))
	switch engine.subroutineKind {
	case ConstructorKeyword:
		engine.writer.WritePush(ConstantSegment, engine.table.CountOf(FieldKind))
		engine.writer.WriteCall("Memory.alloc", 1)
		engine.writer.WritePop(PointerSegment, 0)
	case MethodKeyword:
		engine.writer.WritePush(ArgumentSegment, 0)
		engine.writer.WritePop(PointerSegment, 0)
	}
	if err := engine.compileStatements(); err != nil {
		return err
	}
	return engine.expectSymbol(production, '}')
}

// varDec := 'var' type varName (',' varName)* ';'
func (engine *Engine) compileVarDec() error {
	const production = "varDec"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, VarKeyword); err != nil {
		return err
	}
	return engine.compileVarNames(production, LocalKind)
}

// advance consumes the lookahead and moves it to the next token.
func (engine *Engine) advance() error {
	if engine.tree != nil && engine.current != nil {
		engine.tree.Terminal(engine.current)
	}
	token, err := engine.scanner.Advance()
	if err == io.EOF {
		engine.current = nil
		return nil
	}
	if err != nil {
		return err
	}
	engine.current = token
	return nil
}

// open starts the parse tree element tag and returns the func that ends it.
func (engine *Engine) open(tag string) func() {
	if engine.tree == nil {
		return func() {}
	}
	engine.tree.Open(tag)
	return func() { engine.tree.Close(tag) }
}

func (engine *Engine) line() int {
	if engine.current == nil {
		return engine.scanner.CurrentLine()
	}
	return engine.current.Line()
}

func (engine *Engine) isKeyword(expected ...Keyword) bool {
	token, ok := engine.current.(KeywordToken)
	if !ok {
		return false
	}
	for _, kw := range expected {
		if token.Keyword == kw {
			return true
		}
	}
	return false
}

func (engine *Engine) isSymbol(expected byte) bool {
	token, ok := engine.current.(SymbolToken)
	return ok && token.Symbol == expected
}

// currentSymbol returns the lookahead symbol, or 0 if the lookahead is not a symbol.
func (engine *Engine) currentSymbol() byte {
	if token, ok := engine.current.(SymbolToken); ok {
		return token.Symbol
	}
	return 0
}

func (engine *Engine) expectKeyword(production string, expected ...Keyword) (Keyword, error) {
	if !engine.isKeyword(expected...) {
		names := make([]string, len(expected))
		for i, kw := range expected {
			names[i] = "'" + kw.String() + "'"
		}
		return 0, engine.syntaxError(production, strings.Join(names, " or "))
	}
	keyword := engine.current.(KeywordToken).Keyword
	return keyword, engine.advance()
}

func (engine *Engine) expectSymbol(production string, expected byte) error {
	if !engine.isSymbol(expected) {
		return engine.syntaxError(production, fmt.Sprintf("'%c'", expected))
	}
	return engine.advance()
}

func (engine *Engine) expectIdentifier(production, what string) (string, error) {
	token, ok := engine.current.(IdentifierToken)
	if !ok {
		return "", engine.syntaxError(production, what)
	}
	return token.Name, engine.advance()
}

func (engine *Engine) syntaxError(production, expected string) error {
	found := "end of input"
	if engine.current != nil {
		found = fmt.Sprintf("%s %s", engine.current.Type(), engine.current)
	}
	return makeSyntaxError(engine.line(), production, expected, found)
}
