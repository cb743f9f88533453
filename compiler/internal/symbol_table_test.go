package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable_Define(t *testing.T) {
	table := NewSymbolTable()
	testData := []struct {
		name  string
		tp    string
		kind  Kind
		index int
	}{
		{name: "count", tp: "int", kind: StaticKind, index: 0},
		{name: "x", tp: "int", kind: FieldKind, index: 0},
		{name: "y", tp: "int", kind: FieldKind, index: 1},
		{name: "instances", tp: "Array", kind: StaticKind, index: 1},
		{name: "name", tp: "String", kind: FieldKind, index: 2},
		{name: "dx", tp: "int", kind: ArgumentKind, index: 0},
		{name: "i", tp: "int", kind: LocalKind, index: 0},
		{name: "dy", tp: "int", kind: ArgumentKind, index: 1},
		{name: "p", tp: "Point", kind: LocalKind, index: 1},
	}
	for _, data := range testData {
		symbol := table.Define(data.name, data.tp, data.kind)
		assert.Equal(t, data.index, symbol.Index, data.name)
	}
	for _, data := range testData {
		assert.Equal(t, data.kind, table.KindOf(data.name), data.name)
		assert.Equal(t, data.index, table.IndexOf(data.name), data.name)
		assert.Equal(t, data.tp, table.TypeOf(data.name), data.name)
	}
	assert.Equal(t, 2, table.CountOf(StaticKind))
	assert.Equal(t, 3, table.CountOf(FieldKind))
	assert.Equal(t, 2, table.CountOf(ArgumentKind))
	assert.Equal(t, 2, table.CountOf(LocalKind))
}

func TestSymbolTable_Unknown(t *testing.T) {
	table := NewSymbolTable()
	assert.Equal(t, NoneKind, table.KindOf("Output"))
	assert.Equal(t, -1, table.IndexOf("Output"))
	assert.Equal(t, "", table.TypeOf("Output"))
	_, ok := table.Lookup("Output")
	assert.False(t, ok)
}

func TestSymbolTable_StartSubroutine(t *testing.T) {
	table := NewSymbolTable()
	table.Define("x", "int", FieldKind)
	table.Define("a", "int", ArgumentKind)
	table.Define("i", "int", LocalKind)
	table.StartSubroutine()
	assert.Equal(t, NoneKind, table.KindOf("a"))
	assert.Equal(t, NoneKind, table.KindOf("i"))
	assert.Equal(t, FieldKind, table.KindOf("x"))
	assert.Equal(t, 0, table.CountOf(ArgumentKind))
	assert.Equal(t, 0, table.CountOf(LocalKind))
	assert.Equal(t, 1, table.CountOf(FieldKind))
	assert.Equal(t, 0, table.Define("b", "char", ArgumentKind).Index)
}

func TestSymbolTable_Shadowing(t *testing.T) {
	table := NewSymbolTable()
	table.Define("size", "int", FieldKind)
	table.StartSubroutine()
	table.Define("size", "char", LocalKind)
	assert.Equal(t, LocalKind, table.KindOf("size"))
	assert.Equal(t, "char", table.TypeOf("size"))
	table.StartSubroutine()
	assert.Equal(t, FieldKind, table.KindOf("size"))
	assert.Equal(t, "int", table.TypeOf("size"))
}

func TestSymbolTable_Redefine(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a", "int", LocalKind)
	table.Define("a", "char", LocalKind)
	assert.Equal(t, 1, table.IndexOf("a"))
	assert.Equal(t, "char", table.TypeOf("a"))
	assert.Equal(t, 2, table.CountOf(LocalKind))
}

func TestSymbolTable_Declared(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a", "int", StaticKind)
	assert.True(t, table.Declared("a", FieldKind))
	assert.False(t, table.Declared("a", LocalKind))
	table.Define("b", "int", ArgumentKind)
	assert.True(t, table.Declared("b", LocalKind))
	assert.False(t, table.Declared("b", StaticKind))
}

func TestKind_Segment(t *testing.T) {
	assert.Equal(t, StaticSegment, StaticKind.Segment())
	assert.Equal(t, ThisSegment, FieldKind.Segment())
	assert.Equal(t, ArgumentSegment, ArgumentKind.Segment())
	assert.Equal(t, LocalSegment, LocalKind.Segment())
	assert.Panics(t, func() { NoneKind.Segment() })
}
