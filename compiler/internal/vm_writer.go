package internal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// VM commands are written one per line:
// * Memory access commands: push|pop segment index, where segment is one of
//   constant, argument, local, static, this, that, pointer, temp.
// * Arithmetic commands: add, sub, neg, eq, gt, lt, and, or, not.
// * Program flow commands: label name, goto name, if-goto name.
// * Function calling commands: function name nLocals, call name nArgs, return.

type Segment int

const (
	ConstantSegment Segment = iota
	ArgumentSegment
	LocalSegment
	StaticSegment
	ThisSegment
	ThatSegment
	PointerSegment
	TempSegment
)

var segmentNames = [...]string{
	ConstantSegment: "constant",
	ArgumentSegment: "argument",
	LocalSegment:    "local",
	StaticSegment:   "static",
	ThisSegment:     "this",
	ThatSegment:     "that",
	PointerSegment:  "pointer",
	TempSegment:     "temp",
}

func (segment Segment) String() string {
	return segmentNames[segment]
}

type Command int

const (
	AddCommand Command = iota
	SubCommand
	NegCommand
	EqCommand
	GtCommand
	LtCommand
	AndCommand
	OrCommand
	NotCommand
)

var commandNames = [...]string{
	AddCommand: "add",
	SubCommand: "sub",
	NegCommand: "neg",
	EqCommand:  "eq",
	GtCommand:  "gt",
	LtCommand:  "lt",
	AndCommand: "and",
	OrCommand:  "or",
	NotCommand: "not",
}

func (command Command) String() string {
	return commandNames[command]
}

// VMWriter streams VM commands to an io.Writer. Write errors are kept and returned by Flush,
// so the engine does not have to check every instruction.
type VMWriter struct {
	w   *bufio.Writer
	err error
}

func NewVMWriter(w io.Writer) *VMWriter {
	return &VMWriter{w: bufio.NewWriter(w)}
}

func (writer *VMWriter) WritePush(segment Segment, index int) {
	writer.writeln(fmt.Sprintf("push %s %d", segment, index))
}

func (writer *VMWriter) WritePop(segment Segment, index int) {
	writer.writeln(fmt.Sprintf("pop %s %d", segment, index))
}

func (writer *VMWriter) WriteArithmetic(command Command) {
	writer.writeln(command.String())
}

func (writer *VMWriter) WriteLabel(label string) {
	writer.writeln("label " + label)
}

func (writer *VMWriter) WriteGoto(label string) {
	writer.writeln("goto " + label)
}

func (writer *VMWriter) WriteIf(label string) {
	writer.writeln("if-goto " + label)
}

func (writer *VMWriter) WriteCall(name string, nArgs int) {
	writer.writeln(fmt.Sprintf("call %s %d", name, nArgs))
}

func (writer *VMWriter) WriteFunction(name string, nLocals int) {
	writer.writeln(fmt.Sprintf("function %s %d", name, nLocals))
}

func (writer *VMWriter) WriteReturn() {
	writer.writeln("return")
}

func (writer *VMWriter) writeln(line string) {
	if writer.err != nil {
		return
	}
	if _, err := writer.w.WriteString(line + "\n"); err != nil {
		writer.err = errors.Wrap(err, "write vm code")
	}
}

// Flush writes out buffered commands and reports the first write error, if any.
func (writer *VMWriter) Flush() error {
	if writer.err == nil {
		writer.err = errors.Wrap(writer.w.Flush(), "write vm code")
	}
	return writer.err
}
