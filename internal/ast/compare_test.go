package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(line int) Position {
	return Position{Source: "test.kst", Line: line, Col: 1}
}

func TestCompareIgnoresPositions(t *testing.T) {
	a := NewApplication(pos(1),
		NewCombinator(pos(1), []string{"System"}, "tuple"),
		NewInteger(pos(1), "1"),
		NewVariable(pos(1), "x"))
	b := NewApplication(pos(42),
		NewCombinator(pos(43), []string{"System"}, "tuple"),
		NewInteger(pos(44), "1"),
		NewVariable(pos(45), "x"))

	assert.True(t, Equal(a, b))
	assert.Equal(t, 0, Compare(a, b))
}

func TestCompareDistinguishesPayload(t *testing.T) {
	testCases := []struct {
		name string
		a    Node
		b    Node
	}{
		{"integer text", NewInteger(pos(1), "1"), NewInteger(pos(1), "2")},
		{"variable name", NewVariable(pos(1), "x"), NewVariable(pos(1), "y")},
		{"combinator path", NewCombinator(pos(1), []string{"A"}, "f"), NewCombinator(pos(1), []string{"B"}, "f")},
		{"tag", NewInteger(pos(1), "1"), NewFloat(pos(1), "1")},
		{"arity", NewTuple(pos(1), []Node{NewInteger(pos(1), "1")}), NewTuple(pos(1), []Node{NewInteger(pos(1), "1"), NewInteger(pos(1), "2")})},
		{"list tail", NewList(pos(1), []Node{NewInteger(pos(1), "1")}, nil), NewList(pos(1), []Node{NewInteger(pos(1), "1")}, NewVariable(pos(1), "t"))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, Equal(tc.a, tc.b))
			// the order is total and antisymmetric
			assert.Equal(t, -Compare(tc.b, tc.a), Compare(tc.a, tc.b))
		})
	}
}

func TestCompareOrdersByTagFirst(t *testing.T) {
	i := NewInteger(pos(1), "9")
	v := NewVariable(pos(1), "a")
	require.True(t, i.Tag() < v.Tag())
	assert.Equal(t, -1, Compare(i, v))
	assert.Equal(t, 1, Compare(v, i))
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "f", QualifiedName(nil, "f"))
	assert.Equal(t, "A::B::f", QualifiedName([]string{"A", "B"}, "f"))

	c := NewCombinator(pos(1), []string{"System"}, "cons")
	assert.Equal(t, "System::cons", c.QualifiedName())
}

func TestTextRendering(t *testing.T) {
	block := NewBlock(pos(1),
		NewMatch(pos(1),
			[]Node{NewCombinator(pos(1), nil, "System::true")},
			NewEmpty(),
			NewInteger(pos(1), "1")))
	assert.Equal(t, "[ System::true -> 1 ]", Text(block))

	app := NewApplication(pos(1), NewVariable(pos(1), "f"), NewInteger(pos(1), "2"))
	assert.Equal(t, "(f 2)", Text(app))
}
