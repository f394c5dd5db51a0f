package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineDefineAndGet(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.HasCombinator(SystemPath, "tuple"))

	d := NewData(SystemPath, "tuple")
	m.DefineData(d)
	assert.True(t, m.HasCombinator(SystemPath, "tuple"))
	assert.Same(t, d, m.GetCombinator(SystemPath, "tuple"))

	// qualified flat names address the same entries
	assert.Same(t, d, m.GetCombinator(nil, "System::tuple"))
}

func TestMachineForwardReferences(t *testing.T) {
	m := NewMachine()
	o := m.GetCombinator(nil, "g")
	_, isForward := o.(*Forward)
	assert.True(t, isForward)
	assert.True(t, m.HasCombinator(nil, "g"))

	// defining the combinator replaces the placeholder
	b := NewBytecode(nil, nil, nil, "g")
	m.DefineData(b)
	assert.Same(t, Combinator(b), m.GetCombinator(nil, "g"))
	require.Len(t, filterNames(m, "g"), 1)
}

func filterNames(m *Machine, name string) []Combinator {
	var out []Combinator
	for _, c := range m.Combinators() {
		if c.Qualified() == name {
			out = append(out, c)
		}
	}
	return out
}

func TestMachinePredicates(t *testing.T) {
	m := NewMachine()
	RegisterBuiltins(m)

	assert.True(t, m.IsData(m.GetCombinator(SystemPath, SymbolTrue)))
	assert.True(t, m.IsOpaque(m.GetCombinator(SystemPath, SymbolThrow)))
	assert.False(t, m.IsData(m.GetCombinator(SystemPath, SymbolThrow)))
	assert.False(t, m.IsOpaque(m.CreateInteger(1)))
}

func TestConstants(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, "42", m.CreateInteger(42).String())
	assert.Equal(t, "2.5", m.CreateFloat(2.5).String())
	assert.Equal(t, "'a'", m.CreateChar('a').String())
	assert.Equal(t, `"hi"`, m.CreateText("hi").String())
}

func TestInstructionDisassembly(t *testing.T) {
	testCases := []struct {
		i    Instruction
		want string
	}{
		{Instruction{Op: OpMov, X: 1, Y: 2}, "mov x1, x2"},
		{Instruction{Op: OpData, X: 3, Data: 0}, "data x3, d0"},
		{Instruction{Op: OpTakeX, X: 1, Y: 5, Z: 0, Off: 0}, "takex x1, x5, x0, 0"},
		{Instruction{Op: OpConcatX, X: 9, Y: 8, Z: 0, Off: 5}, "concatx x9, x8, x0, 5"},
		{Instruction{Op: OpFail, Label: 7}, "fail 7"},
		{Instruction{Op: OpReturn, X: 3}, "return x3"},
		{Instruction{Op: OpSet, X: 1, Y: 2, Z: 3}, "set x1, x2, x3"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.i.String())
	}
}

func TestSystemName(t *testing.T) {
	assert.Equal(t, "System::cons", SystemName(SymbolCons))
}
