package internal

import "unicode/utf8"

// Jack has no operator precedence: a + b * c is (a + b) * c. Operands are pushed left to
// right and each operator is applied right after its right operand.

type opCode struct {
	command Command
	// call is set for operators the VM has no command for.
	call string
}

var binaryOps = map[byte]opCode{
	'+': {command: AddCommand},
	'-': {command: SubCommand},
	'&': {command: AndCommand},
	'|': {command: OrCommand},
	'<': {command: LtCommand},
	'>': {command: GtCommand},
	'=': {command: EqCommand},
	'*': {call: "Math.multiply"},
	'/': {call: "Math.divide"},
}

var unaryOps = map[byte]Command{
	'-': NegCommand,
	'~': NotCommand,
}

func (engine *Engine) writeOp(op opCode) {
	if op.call != "" {
		engine.writer.WriteCall(op.call, 2)
		return
	}
	engine.writer.WriteArithmetic(op.command)
}

// expression := term (op term)*
func (engine *Engine) compileExpression() error {
	defer engine.open("expression")()
	if err := engine.compileTerm(); err != nil {
		return err
	}
	for {
		op, ok := binaryOps[engine.currentSymbol()]
		if !ok {
			return nil
		}
		if err := engine.advance(); err != nil {
			return err
		}
		if err := engine.compileTerm(); err != nil {
			return err
		}
		engine.writeOp(op)
	}
}

// expressionList := ( expression (',' expression)* )?
// Returns the number of expressions pushed.
func (engine *Engine) compileExpressionList() (int, error) {
	defer engine.open("expressionList")()
	if engine.isSymbol(')') {
		return 0, nil
	}
	n := 0
	for {
		if err := engine.compileExpression(); err != nil {
			return 0, err
		}
		n++
		if !engine.isSymbol(',') {
			return n, nil
		}
		if err := engine.advance(); err != nil {
			return 0, err
		}
	}
}

// term := intConst | stringConst | keywordConst | unaryOp term | '(' expression ')'
//       | varName ('[' expression ']')? | subroutineCall
func (engine *Engine) compileTerm() error {
	const production = "term"
	defer engine.open(production)()
	line := engine.line()
	switch token := engine.current.(type) {
	case IntegerToken:
		v, err := token.Value()
		if err != nil {
			return err
		}
		engine.writer.WritePush(ConstantSegment, v)
		return engine.advance()
	case StringToken:
		engine.compileStringConstant(token.Value)
		return engine.advance()
	case KeywordToken:
		return engine.compileKeywordConstant(production, token)
	case SymbolToken:
		if token.Symbol == '(' {
			if err := engine.advance(); err != nil {
				return err
			}
			if err := engine.compileExpression(); err != nil {
				return err
			}
			return engine.expectSymbol(production, ')')
		}
		command, ok := unaryOps[token.Symbol]
		if !ok {
			break
		}
		if err := engine.advance(); err != nil {
			return err
		}
		if err := engine.compileTerm(); err != nil {
			return err
		}
		engine.writer.WriteArithmetic(command)
		return nil
	case IdentifierToken:
		if err := engine.advance(); err != nil {
			return err
		}
		if engine.isSymbol('(') || engine.isSymbol('.') {
			return engine.compileSubroutineCall(production, line, token.Name)
		}
		symbol, err := engine.resolveVariable(line, token.Name)
		if err != nil {
			return err
		}
		if !engine.isSymbol('[') {
			engine.pushVariable(symbol)
			return nil
		}
		if err := engine.compileArrayAddress(production, symbol); err != nil {
			return err
		}
		engine.writer.WritePop(PointerSegment, 1)
		engine.writer.WritePush(ThatSegment, 0)
		return nil
	}
	return engine.syntaxError(production, "term")
}

// true is -1 (not 0), false and null are 0, this is the current object.
func (engine *Engine) compileKeywordConstant(production string, token KeywordToken) error {
	switch token.Keyword {
	case TrueKeyword:
		engine.writer.WritePush(ConstantSegment, 0)
		engine.writer.WriteArithmetic(NotCommand)
	case FalseKeyword, NullKeyword:
		engine.writer.WritePush(ConstantSegment, 0)
	case ThisKeyword:
		if engine.subroutineKind == FunctionKeyword {
			return makeSemanticError(token.Line(), "this", "this used in function %s", engine.className)
		}
		engine.writer.WritePush(PointerSegment, 0)
	default:
		return engine.syntaxError(production, "keyword constant")
	}
	return engine.advance()
}

// String.appendChar returns its receiver, so the string stays on top of the stack after
// each append.
func (engine *Engine) compileStringConstant(s string) {
	engine.writer.WritePush(ConstantSegment, utf8.RuneCountInString(s))
	engine.writer.WriteCall("String.new", 1)
	for _, c := range s {
		engine.writer.WritePush(ConstantSegment, int(c))
		engine.writer.WriteCall("String.appendChar", 2)
	}
}

// compileArrayAddress parses '[' expression ']' after an array variable and leaves the
// element address on the stack.
func (engine *Engine) compileArrayAddress(production string, array *Symbol) error {
	if err := engine.expectSymbol(production, '['); err != nil {
		return err
	}
	engine.pushVariable(array)
	if err := engine.compileExpression(); err != nil {
		return err
	}
	if err := engine.expectSymbol(production, ']'); err != nil {
		return err
	}
	engine.writer.WriteArithmetic(AddCommand)
	return nil
}

// subroutineCall := name '(' expressionList ')' | name '.' name '(' expressionList ')'
//
// name has already been consumed. The call target is one of:
// * foo(...): a method of the current object, which is passed as argument 0.
// * v.foo(...) where v is a variable: a method of v's class, v is passed as argument 0.
// * C.foo(...) where C is not a variable: a function or constructor of class C.
func (engine *Engine) compileSubroutineCall(production string, line int, name string) error {
	target, hidden := "", 0
	switch {
	case engine.isSymbol('('):
		if engine.subroutineKind == FunctionKeyword {
			return makeSemanticError(line, name, "method %s called without an object in a function of class %s",
				name, engine.className)
		}
		engine.writer.WritePush(PointerSegment, 0)
		target, hidden = engine.className+"."+name, 1
	case engine.isSymbol('.'):
		if err := engine.advance(); err != nil {
			return err
		}
		member, err := engine.expectIdentifier(production, "subroutineName")
		if err != nil {
			return err
		}
		if engine.table.KindOf(name) == NoneKind {
			target = name + "." + member
			break
		}
		symbol, err := engine.resolveVariable(line, name)
		if err != nil {
			return err
		}
		if isPrimitiveType(symbol.Type) {
			return makeSemanticError(line, name, "cannot call %s on %s of type %s", member, name, symbol.Type)
		}
		engine.pushVariable(symbol)
		target, hidden = symbol.Type+"."+member, 1
	default:
		return engine.syntaxError(production, "'(' or '.'")
	}
	if err := engine.expectSymbol(production, '('); err != nil {
		return err
	}
	n, err := engine.compileExpressionList()
	if err != nil {
		return err
	}
	if err := engine.expectSymbol(production, ')'); err != nil {
		return err
	}
	engine.writer.WriteCall(target, n+hidden)
	return nil
}

// resolveVariable looks name up as a storage location. Fields have no storage inside a function.
func (engine *Engine) resolveVariable(line int, name string) (*Symbol, error) {
	symbol, ok := engine.table.Lookup(name)
	if !ok {
		return nil, makeSemanticError(line, name, "undefined variable %s", name)
	}
	if symbol.Kind == FieldKind && engine.subroutineKind == FunctionKeyword {
		return nil, makeSemanticError(line, name, "field %s used in function of class %s", name, engine.className)
	}
	return symbol, nil
}

func (engine *Engine) pushVariable(symbol *Symbol) {
	engine.writer.WritePush(symbol.Kind.Segment(), symbol.Index)
}

func isPrimitiveType(tp string) bool {
	switch tp {
	case "int", "char", "boolean":
		return true
	}
	return false
}
