package util

// Byte classes of the jack source alphabet. Sources are read byte by byte, anything
// outside ASCII is rejected by the scanner.

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsIdentifierStart reports whether b can begin an identifier or keyword.
func IsIdentifierStart(b byte) bool {
	return IsLetter(b) || b == '_'
}

// IsIdentifierPart reports whether b can continue an identifier or keyword.
func IsIdentifierPart(b byte) bool {
	return IsIdentifierStart(b) || IsDigit(b)
}

func IsBlank(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
