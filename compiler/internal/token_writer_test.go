package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTokens(t *testing.T) {
	content := `if (x < 153) {let city="Paris & Lyon";} // done`
	buf := &bytes.Buffer{}
	require.Nil(t, WriteTokens(NewScanner(strings.NewReader(content)), buf))
	assert.Equal(t, `<tokens>
<keyword> if </keyword>
<symbol> ( </symbol>
<identifier> x </identifier>
<symbol> &lt; </symbol>
<integerConstant> 153 </integerConstant>
<symbol> ) </symbol>
<symbol> { </symbol>
<keyword> let </keyword>
<identifier> city </identifier>
<symbol> = </symbol>
<stringConstant> Paris &amp; Lyon </stringConstant>
<symbol> ; </symbol>
<symbol> } </symbol>
</tokens>
`, buf.String())
}

func TestWriteTokens_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.Nil(t, WriteTokens(NewScanner(strings.NewReader("/** nothing */")), buf))
	assert.Equal(t, "<tokens>\n</tokens>\n", buf.String())
}

func TestWriteTokens_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteTokens(NewScanner(strings.NewReader(`let s = "open`)), buf)
	var lexErr *LexicalError
	assert.ErrorAs(t, err, &lexErr)
}

// Scanning the same source twice gives the same listing.
func TestWriteTokens_Deterministic(t *testing.T) {
	content := `
class Main {
	/** entry */
	function void main() {
		var Array a;
		let a = Array.new(3);
		let a[0] = -1 & ~2 | (3 > 4);
		do Output.printString("ok");
		return;
	}
}`
	first, second := &bytes.Buffer{}, &bytes.Buffer{}
	require.Nil(t, WriteTokens(NewScanner(strings.NewReader(content)), first))
	require.Nil(t, WriteTokens(NewScanner(strings.NewReader(content)), second))
	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "<symbol> &gt; </symbol>")
	assert.Contains(t, first.String(), "<symbol> &amp; </symbol>")
}
