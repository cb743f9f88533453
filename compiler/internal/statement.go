package internal

import "fmt"

// statements := (let|if|while|do|return)*
func (engine *Engine) compileStatements() error {
	defer engine.open("statements")()
	for {
		var err error
		switch {
		case engine.isKeyword(LetKeyword):
			err = engine.compileLet()
		case engine.isKeyword(IfKeyword):
			err = engine.compileIf()
		case engine.isKeyword(WhileKeyword):
			err = engine.compileWhile()
		case engine.isKeyword(DoKeyword):
			err = engine.compileDo()
		case engine.isKeyword(ReturnKeyword):
			err = engine.compileReturn()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// let := 'let' varName ('[' expression ']')? '=' expression ';'
//
// For an array element the target address is computed first, then the value. The value
// is parked in temp 0 while pointer 1 is redirected, since the address sits under it:
// push arr, <index>, add, <value>, pop temp 0, pop pointer 1, push temp 0, pop that 0
func (engine *Engine) compileLet() error {
	const production = "letStatement"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, LetKeyword); err != nil {
		return err
	}
	line := engine.line()
	name, err := engine.expectIdentifier(production, "varName")
	if err != nil {
		return err
	}
	symbol, err := engine.resolveVariable(line, name)
	if err != nil {
		return err
	}
	isArray := engine.isSymbol('[')
	if isArray {
		if err := engine.compileArrayAddress(production, symbol); err != nil {
			return err
		}
	}
	if err := engine.expectSymbol(production, '='); err != nil {
		return err
	}
	if err := engine.compileExpression(); err != nil {
		return err
	}
	if err := engine.expectSymbol(production, ';'); err != nil {
		return err
	}
	if !isArray {
		engine.writer.WritePop(symbol.Kind.Segment(), symbol.Index)
		return nil
	}
	engine.writer.WritePop(TempSegment, 0)
	engine.writer.WritePop(PointerSegment, 1)
	engine.writer.WritePush(TempSegment, 0)
	engine.writer.WritePop(ThatSegment, 0)
	return nil
}

// if := 'if' '(' expression ')' '{' statements '}' ('else' '{' statements '}')?
//
// <cond>; if-goto IF_TRUEn; goto IF_FALSEn; label IF_TRUEn; <then>
// without else: label IF_FALSEn
// with else: goto IF_ENDn; label IF_FALSEn; <else>; label IF_ENDn
func (engine *Engine) compileIf() error {
	const production = "ifStatement"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, IfKeyword); err != nil {
		return err
	}
	n := engine.ifCounter
	engine.ifCounter++
	trueLabel, falseLabel, endLabel := fmt.Sprintf("IF_TRUE%d", n), fmt.Sprintf("IF_FALSE%d", n),
		fmt.Sprintf("IF_END%d", n)
	if err := engine.compileCondition(production); err != nil {
		return err
	}
	engine.writer.WriteIf(trueLabel)
	engine.writer.WriteGoto(falseLabel)
	engine.writer.WriteLabel(trueLabel)
	if err := engine.compileBlock(production); err != nil {
		return err
	}
	if !engine.isKeyword(ElseKeyword) {
		engine.writer.WriteLabel(falseLabel)
		return nil
	}
	if err := engine.advance(); err != nil {
		return err
	}
	engine.writer.WriteGoto(endLabel)
	engine.writer.WriteLabel(falseLabel)
	if err := engine.compileBlock(production); err != nil {
		return err
	}
	engine.writer.WriteLabel(endLabel)
	return nil
}

// while := 'while' '(' expression ')' '{' statements '}'
//
// label WHILE_EXPn; <cond>; not; if-goto WHILE_ENDn; <body>; goto WHILE_EXPn; label WHILE_ENDn
func (engine *Engine) compileWhile() error {
	const production = "whileStatement"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, WhileKeyword); err != nil {
		return err
	}
	n := engine.whileCounter
	engine.whileCounter++
	expLabel, endLabel := fmt.Sprintf("WHILE_EXP%d", n), fmt.Sprintf("WHILE_END%d", n)
	engine.writer.WriteLabel(expLabel)
	if err := engine.compileCondition(production); err != nil {
		return err
	}
	engine.writer.WriteArithmetic(NotCommand)
	engine.writer.WriteIf(endLabel)
	if err := engine.compileBlock(production); err != nil {
		return err
	}
	engine.writer.WriteGoto(expLabel)
	engine.writer.WriteLabel(endLabel)
	return nil
}

// do := 'do' subroutineCall ';'
// Every subroutine returns a value, a do statement throws it away.
func (engine *Engine) compileDo() error {
	const production = "doStatement"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, DoKeyword); err != nil {
		return err
	}
	line := engine.line()
	name, err := engine.expectIdentifier(production, "subroutineName, className or varName")
	if err != nil {
		return err
	}
	if err := engine.compileSubroutineCall(production, line, name); err != nil {
		return err
	}
	if err := engine.expectSymbol(production, ';'); err != nil {
		return err
	}
	engine.writer.WritePop(TempSegment, 0)
	return nil
}

// return := 'return' expression? ';'
// A void subroutine still returns 0.
func (engine *Engine) compileReturn() error {
	const production = "returnStatement"
	defer engine.open(production)()
	if _, err := engine.expectKeyword(production, ReturnKeyword); err != nil {
		return err
	}
	if engine.isSymbol(';') {
		engine.writer.WritePush(ConstantSegment, 0)
	} else if err := engine.compileExpression(); err != nil {
		return err
	}
	if err := engine.expectSymbol(production, ';'); err != nil {
		return err
	}
	engine.writer.WriteReturn()
	return nil
}

// compileCondition parses '(' expression ')'.
func (engine *Engine) compileCondition(production string) error {
	if err := engine.expectSymbol(production, '('); err != nil {
		return err
	}
	if err := engine.compileExpression(); err != nil {
		return err
	}
	return engine.expectSymbol(production, ')')
}

// compileBlock parses '{' statements '}'.
func (engine *Engine) compileBlock(production string) error {
	if err := engine.expectSymbol(production, '{'); err != nil {
		return err
	}
	if err := engine.compileStatements(); err != nil {
		return err
	}
	return engine.expectSymbol(production, '}')
}
