package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifierStart(t *testing.T) {
	for _, b := range []byte("azAZ_") {
		assert.True(t, IsIdentifierStart(b), string(b))
	}
	for _, b := range []byte("09.\" ") {
		assert.False(t, IsIdentifierStart(b), string(b))
	}
}

func TestIsIdentifierPart(t *testing.T) {
	for _, b := range []byte("azAZ_09") {
		assert.True(t, IsIdentifierPart(b), string(b))
	}
	assert.False(t, IsIdentifierPart('-'))
	assert.False(t, IsIdentifierPart('['))
}

func TestIsBlank(t *testing.T) {
	for _, b := range []byte(" \t\n\r") {
		assert.True(t, IsBlank(b))
	}
	assert.False(t, IsBlank('a'))
	assert.False(t, IsBlank('/'))
}
