package internal

import "fmt"

// A jack unit needs two scopes: the class scope lives as long as the unit, the subroutine
// scope is rebuilt for every constructor, function and method. Lookups try the subroutine
// scope first so parameters and locals shadow statics and fields.

type Kind int

const (
	// NoneKind is what an unknown name resolves to. Callers use it both as an error and as
	// the sign that a call target is a class name.
	NoneKind Kind = iota
	StaticKind
	FieldKind
	ArgumentKind
	LocalKind
	kindCount
)

var kindNames = [...]string{
	NoneKind:     "none",
	StaticKind:   "static",
	FieldKind:    "field",
	ArgumentKind: "argument",
	LocalKind:    "local",
}

func (kind Kind) String() string {
	return kindNames[kind]
}

// Segment returns the VM segment variables of this kind are stored in.
func (kind Kind) Segment() Segment {
	switch kind {
	case StaticKind:
		return StaticSegment
	case FieldKind:
		return ThisSegment
	case ArgumentKind:
		return ArgumentSegment
	case LocalKind:
		return LocalSegment
	}
	panic(fmt.Sprintf("no segment for kind %s", kind))
}

func (kind Kind) isClassScope() bool {
	return kind == StaticKind || kind == FieldKind
}

type Symbol struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

type SymbolTable struct {
	classScope      map[string]*Symbol
	subroutineScope map[string]*Symbol
	counts          [kindCount]int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		classScope:      map[string]*Symbol{},
		subroutineScope: map[string]*Symbol{},
	}
}

// StartSubroutine drops every argument and local and restarts their indexes at 0.
func (table *SymbolTable) StartSubroutine() {
	table.subroutineScope = map[string]*Symbol{}
	table.counts[ArgumentKind], table.counts[LocalKind] = 0, 0
}

// Define adds name to the scope of kind with the next index of that kind. An existing
// entry with the same name is replaced; its index stays consumed.
func (table *SymbolTable) Define(name, tp string, kind Kind) *Symbol {
	if kind <= NoneKind || kind >= kindCount {
		panic(fmt.Sprintf("cannot define %s with kind %d", name, kind))
	}
	symbol := &Symbol{Name: name, Type: tp, Kind: kind, Index: table.counts[kind]}
	table.counts[kind]++
	table.scopeOf(kind)[name] = symbol
	return symbol
}

// Declared reports whether the scope kind belongs to already holds name.
func (table *SymbolTable) Declared(name string, kind Kind) bool {
	_, ok := table.scopeOf(kind)[name]
	return ok
}

func (table *SymbolTable) scopeOf(kind Kind) map[string]*Symbol {
	if kind.isClassScope() {
		return table.classScope
	}
	return table.subroutineScope
}

func (table *SymbolTable) Lookup(name string) (*Symbol, bool) {
	if symbol, ok := table.subroutineScope[name]; ok {
		return symbol, true
	}
	symbol, ok := table.classScope[name]
	return symbol, ok
}

func (table *SymbolTable) KindOf(name string) Kind {
	symbol, ok := table.Lookup(name)
	if !ok {
		return NoneKind
	}
	return symbol.Kind
}

// IndexOf returns -1 for an unknown name.
func (table *SymbolTable) IndexOf(name string) int {
	symbol, ok := table.Lookup(name)
	if !ok {
		return -1
	}
	return symbol.Index
}

// TypeOf returns "" for an unknown name.
func (table *SymbolTable) TypeOf(name string) string {
	symbol, ok := table.Lookup(name)
	if !ok {
		return ""
	}
	return symbol.Type
}

// CountOf returns how many variables of kind are defined in the current scopes.
func (table *SymbolTable) CountOf(kind Kind) int {
	return table.counts[kind]
}
