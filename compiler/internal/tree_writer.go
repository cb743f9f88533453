package internal

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// TreeWriter writes the parse tree of a class as indented xml. The engine opens an element
// for every nonterminal it parses and writes every token it consumes as a terminal:
//
//	<class>
//	  <keyword> class </keyword>
//	  <identifier> Main </identifier>
//	  <symbol> { </symbol>
//	  <subroutineDec>
//	  ...
//	</class>
type TreeWriter struct {
	w     *bufio.Writer
	depth int
}

func NewTreeWriter(w io.Writer) *TreeWriter {
	return &TreeWriter{w: bufio.NewWriter(w)}
}

func (tree *TreeWriter) Open(tag string) {
	tree.writeLine("<" + tag + ">")
	tree.depth++
}

func (tree *TreeWriter) Close(tag string) {
	tree.depth--
	tree.writeLine("</" + tag + ">")
}

func (tree *TreeWriter) Terminal(token Token) {
	tree.writeLine(terminal(token))
}

// Flush returns the first write error, bufio keeps it.
func (tree *TreeWriter) Flush() error {
	return errors.Wrap(tree.w.Flush(), "write parse tree")
}

func (tree *TreeWriter) writeLine(line string) {
	tree.w.WriteString(strings.Repeat("  ", tree.depth))
	tree.w.WriteString(line)
	tree.w.WriteByte('\n')
}
