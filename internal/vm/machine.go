package vm

import "github.com/kestrel-lang/kestrel/internal/ast"

// Machine is the registry half of the runtime the compiler talks to. It
// interns combinator objects under their qualified names and constructs
// constants; it never executes anything during compilation.
type Machine struct {
	combinators map[string]Combinator
	order       []string
}

func NewMachine() *Machine {
	return &Machine{combinators: map[string]Combinator{}}
}

// DefineData registers a combinator object under its qualified name,
// replacing a forward placeholder when one exists.
func (m *Machine) DefineData(o Combinator) {
	q := o.Qualified()
	if _, ok := m.combinators[q]; !ok {
		m.order = append(m.order, q)
	}
	m.combinators[q] = o
}

// HasCombinator reports whether a combinator is registered.
func (m *Machine) HasCombinator(path []string, name string) bool {
	_, ok := m.combinators[ast.QualifiedName(path, name)]
	return ok
}

// GetCombinator returns the combinator object for path/name. Referencing
// a combinator before its definition is seen interns a forward
// placeholder, so self- and forward-references inside a module resolve.
func (m *Machine) GetCombinator(path []string, name string) Combinator {
	q := ast.QualifiedName(path, name)
	if o, ok := m.combinators[q]; ok {
		return o
	}
	o := NewForward(path, name)
	m.combinators[q] = o
	m.order = append(m.order, q)
	return o
}

// IsData reports whether o is a data combinator.
func (m *Machine) IsData(o Object) bool {
	_, ok := o.(*Data)
	return ok
}

// IsOpaque reports whether o is a runtime-implemented combinator.
func (m *Machine) IsOpaque(o Object) bool {
	_, ok := o.(*Opaque)
	return ok
}

// Combinators lists the registered combinators in definition order.
func (m *Machine) Combinators() []Combinator {
	out := make([]Combinator, 0, len(m.order))
	for _, q := range m.order {
		out = append(out, m.combinators[q])
	}
	return out
}

func (m *Machine) CreateInteger(v int64) Object { return &Integer{v} }

func (m *Machine) CreateFloat(v float64) Object { return &Float{v} }

func (m *Machine) CreateChar(v rune) Object { return &Char{v} }

func (m *Machine) CreateText(v string) Object { return &Text{v} }
