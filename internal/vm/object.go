package vm

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/ast"
)

// Object is any value the machine can hold: literals, combinator objects
// and bytecode objects.
type Object interface {
	String() string
}

// Combinator is an object addressable by a qualified name.
type Combinator interface {
	Object
	CombinatorPath() []string
	CombinatorName() string
	Qualified() string
}

// Integer is a machine integer constant.
type Integer struct {
	Value int64
}

func (o *Integer) String() string { return fmt.Sprintf("%d", o.Value) }

// Float is a machine float constant.
type Float struct {
	Value float64
}

func (o *Float) String() string { return fmt.Sprintf("%g", o.Value) }

// Char is a machine character constant.
type Char struct {
	Value rune
}

func (o *Char) String() string { return fmt.Sprintf("'%c'", o.Value) }

// Text is a machine text constant.
type Text struct {
	Value string
}

func (o *Text) String() string { return fmt.Sprintf("%q", o.Value) }

type symbol struct {
	path []string
	name string
}

func (s symbol) CombinatorPath() []string { return s.path }
func (s symbol) CombinatorName() string   { return s.name }

func (s symbol) Qualified() string {
	return ast.QualifiedName(s.path, s.name)
}

// Data is a nullary data combinator: it serves as constructor and tag and
// reduces to itself.
type Data struct {
	symbol
}

func NewData(path []string, name string) *Data {
	return &Data{symbol{path, name}}
}

func (o *Data) String() string { return o.Qualified() }

// Opaque is a combinator implemented by the runtime rather than by
// bytecode; the builtins are opaque.
type Opaque struct {
	symbol
}

func NewOpaque(path []string, name string) *Opaque {
	return &Opaque{symbol{path, name}}
}

func (o *Opaque) String() string { return o.Qualified() }

// Forward is the placeholder registered when a combinator is referenced
// before its definition is seen; defining the combinator replaces it.
type Forward struct {
	symbol
}

func NewForward(path []string, name string) *Forward {
	return &Forward{symbol{path, name}}
}

func (o *Forward) String() string { return o.Qualified() }
