package internal

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var xmlEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;", "&", "&amp;", `"`, "&quot;")

// terminal formats token as one xml element, <keyword> class </keyword>. String constants are
// written without their quotes.
func terminal(token Token) string {
	text := token.String()
	if s, ok := token.(StringToken); ok {
		text = s.Value
	}
	tag := token.Type().String()
	return "<" + tag + "> " + xmlEscaper.Replace(text) + " </" + tag + ">"
}

// WriteTokens writes every remaining token of scanner as an xml listing:
//
//	<tokens>
//	<keyword> class </keyword>
//	<identifier> Main </identifier>
//	...
//	</tokens>
func WriteTokens(scanner *Scanner, w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<tokens>\n")
	for scanner.HasMore() {
		token, err := scanner.Advance()
		if err != nil {
			return err
		}
		bw.WriteString(terminal(token) + "\n")
	}
	bw.WriteString("</tokens>\n")
	return errors.Wrap(bw.Flush(), "write tokens")
}
