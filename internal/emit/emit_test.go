package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/desugar"
	"github.com/kestrel-lang/kestrel/internal/lift"
	"github.com/kestrel-lang/kestrel/internal/parser"
	"github.com/kestrel-lang/kestrel/internal/semantic"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// compile runs the whole front end over source and emits on a fresh
// machine.
func compile(t *testing.T, source string) (*vm.Machine, []vm.Object) {
	t.Helper()
	tree, err := parser.Parse(source, "test.kst")
	require.NoError(t, err)

	m := vm.NewMachine()
	vm.RegisterBuiltins(m)
	env := semantic.NewNamespace()
	for _, c := range m.Combinators() {
		if m.IsData(c) {
			require.NoError(t, env.DeclareData(c.CombinatorPath(), c.CombinatorName(), c.Qualified()))
		} else {
			require.NoError(t, env.Declare(c.CombinatorPath(), c.CombinatorName(), c.Qualified()))
		}
	}
	require.NoError(t, semantic.Declare(env, tree))
	tree, err = semantic.Identify(env, tree)
	require.NoError(t, err)
	tree, err = desugar.Desugar(tree)
	require.NoError(t, err)
	tree, err = lift.Lift(tree)
	require.NoError(t, err)

	dataObjects, err := Data(m, tree)
	require.NoError(t, err)
	codeObjects, err := Code(m, tree)
	require.NoError(t, err)
	return m, append(dataObjects, codeObjects...)
}

func bytecodeFor(t *testing.T, objects []vm.Object, name string) *vm.Bytecode {
	t.Helper()
	for _, o := range objects {
		if b, ok := o.(*vm.Bytecode); ok && b.Qualified() == name {
			return b
		}
	}
	t.Fatalf("no bytecode registered for %s", name)
	return nil
}

func TestCoderRegistersAndLabels(t *testing.T) {
	c := NewCoder(vm.NewMachine())

	r0 := c.GenerateRegister()
	r1 := c.GenerateRegister()
	assert.Equal(t, vm.Reg(0), r0)
	assert.Equal(t, vm.Reg(1), r1)

	mark := c.PeekRegister()
	c.GenerateRegister()
	c.GenerateRegister()
	c.RestoreRegister(mark)
	assert.Equal(t, mark, c.PeekRegister())

	l := c.GenerateLabel()
	c.EmitFail(l)
	c.EmitMov(r0, r1)
	c.EmitLabel(l)
	c.EmitReturn(r0)
	c.Relabel()

	code := c.Code()
	require.Len(t, code, 3)
	assert.Equal(t, vm.OpFail, code[0].Op)
	// the label pointed past the mov, at the return
	assert.Equal(t, vm.Label(2), code[0].Label)
}

func TestCoderConstants(t *testing.T) {
	m := vm.NewMachine()
	c := NewCoder(m)
	i0 := c.Constant(m.CreateInteger(1))
	i1 := c.Constant(m.CreateInteger(2))
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
	require.Len(t, c.Data(), 2)
}

func TestEmitDataRegistersCombinators(t *testing.T) {
	m, objects := compile(t, "data leaf, branch")
	var names []string
	for _, o := range objects {
		if d, ok := o.(*vm.Data); ok {
			names = append(names, d.Qualified())
		}
	}
	assert.Contains(t, names, "leaf")
	assert.Contains(t, names, "branch")
	assert.True(t, m.HasCombinator(nil, "leaf"))
	assert.True(t, m.IsData(m.GetCombinator(nil, "leaf")))
}

func TestEmitDefinitionShape(t *testing.T) {
	_, objects := compile(t, "def g = [ 0 -> 1 | n -> g n ]")
	b := bytecodeFor(t, objects, "g")

	code := b.Code
	require.NotEmpty(t, code)

	// the frame is unpacked first
	assert.Equal(t, vm.OpTakeX, code[0].Op)
	assert.Equal(t, vm.Reg(0), code[0].Z)
	assert.Equal(t, 0, code[0].Off)
	assert.Equal(t, vm.OpFail, code[1].Op)

	// the first clause takes one argument and tests the literal
	assert.Equal(t, vm.OpTakeX, code[2].Op)
	assert.Equal(t, 5, code[2].Off)
	assert.Equal(t, vm.OpFail, code[3].Op)
	assert.Equal(t, vm.OpData, code[4].Op)
	assert.Equal(t, vm.OpTest, code[5].Op)
	assert.Equal(t, vm.OpFail, code[6].Op)

	// every fail target resolves to a real instruction
	for _, i := range code {
		if i.Op == vm.OpFail {
			assert.Less(t, int(i.Label), len(code))
		}
	}
	// the code ends in the no-match epilogue
	last := code[len(code)-1]
	assert.Equal(t, vm.OpReturn, last.Op)
}

func TestEmitRegisterMonotonicity(t *testing.T) {
	_, objects := compile(t, "def g = [ 0 -> 1 | n -> g n | m -> m ]")
	b := bytecodeFor(t, objects, "g")

	// destination registers of generated instructions never run backwards
	// past the per-match mark; the frame unpack fixes registers 1..5, so
	// every later destination is above the frame register
	for _, i := range b.Code {
		switch i.Op {
		case vm.OpMov, vm.OpData, vm.OpNil, vm.OpArray, vm.OpConcatX, vm.OpTakeX:
			assert.Greater(t, int(i.X), 0, "%s writes the frame register", i)
		}
	}
}

func TestEmitClausesShareRegisters(t *testing.T) {
	_, objects := compile(t, "def g = [ 0 -> 1 | 1 -> 0 ]")
	b := bytecodeFor(t, objects, "g")

	// both clauses take their argument into the same register
	var takes []vm.Instruction
	for _, i := range b.Code {
		if i.Op == vm.OpTakeX && i.Off == 5 {
			takes = append(takes, i)
		}
	}
	require.Len(t, takes, 2)
	assert.Equal(t, takes[0].X, takes[1].X)
}

func TestEmitValueAndOperatorDeclarations(t *testing.T) {
	_, objects := compile(t, "val v = 1\ndef + = [ x y -> x ]")
	bytecodeFor(t, objects, "v")
	bytecodeFor(t, objects, "+")
}

func TestEmitTryBuildsHandlerThunk(t *testing.T) {
	_, objects := compile(t, "def f = try 1 catch [ e -> e ]")
	found := false
	for _, o := range objects {
		b, ok := o.(*vm.Bytecode)
		if !ok || b.Qualified() != "f" {
			continue
		}
		found = true
		arrays := 0
		for _, i := range b.Code {
			if i.Op == vm.OpArray {
				arrays++
			}
		}
		// at least the handler thunk and the result thunks
		assert.GreaterOrEqual(t, arrays, 2)
	}
	assert.True(t, found)
}

func TestEmitLiftedHelperIsRegistered(t *testing.T) {
	m, objects := compile(t, "def f = if true then 1 else 2")
	bytecodeFor(t, objects, "f")
	bytecodeFor(t, objects, "f::local::0")
	assert.True(t, m.HasCombinator(nil, "f::local::0"))
}

func TestEmitThrowSurvivingDesugarIsInternal(t *testing.T) {
	m := vm.NewMachine()
	p := ast.Position{Source: "test.kst", Line: 1, Col: 1}
	d := ast.NewDefinition(p,
		ast.NewCombinator(p, nil, "f"),
		ast.NewBlock(p, ast.NewMatch(p, nil, ast.NewEmpty(),
			ast.NewThrow(p, ast.NewInteger(p, "1")))))

	assert.Panics(t, func() {
		_, _ = Code(m, ast.NewWrapper(p, []ast.Node{d}))
	})
}
