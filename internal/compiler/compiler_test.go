package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/parser"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

func TestMain(m *testing.M) {
	config.Testing = true
	os.Exit(m.Run())
}

func newContext() *Context {
	cfg := config.DefaultConfig()
	cfg.Silent = true
	return NewContext(cfg)
}

func compile(t *testing.T, source string) (*Context, []vm.Object) {
	t.Helper()
	ctx := newContext()
	objects, err := ctx.CompileSource(source, "test.kst")
	require.NoError(t, err)
	return ctx, objects
}

func bytecodeNames(objects []vm.Object) []string {
	var names []string
	for _, o := range objects {
		if b, ok := o.(*vm.Bytecode); ok {
			names = append(names, b.Qualified())
		}
	}
	return names
}

func TestCompileConditional(t *testing.T) {
	ctx, objects := compile(t, "def f = if true then 1 else 2")
	names := bytecodeNames(objects)
	assert.Contains(t, names, "f")
	assert.Contains(t, names, "f::local::0")
	assert.True(t, ctx.Machine.HasCombinator(nil, "f"))
}

func TestCompileSwap(t *testing.T) {
	ctx, objects := compile(t, "def swap = [ (x, y) -> (y, x) ]")
	assert.Contains(t, bytecodeNames(objects), "swap")

	// the tuple combinator appears in pattern and body, so the lifted
	// definition keeps one block of one unary match
	lifted, err := ctx.Front(mustParse(t, "def swap = [ (x, y) -> (y, x) ]"), config.StageLift)
	require.NoError(t, err)
	w := lifted.(*ast.Wrapper)
	require.Len(t, w.Decls, 1)
	d := w.Decls[0].(*ast.Definition)
	block := d.Body.(*ast.Block)
	require.Len(t, block.Matches, 1)
	m := block.Matches[0].(*ast.Match)
	assert.Len(t, m.Patterns, 1)
	assert.Contains(t, ast.Text(m.Patterns[0]), "System::tuple")
	assert.Contains(t, ast.Text(m.Result), "System::tuple")
}

func TestCompileNamespaces(t *testing.T) {
	src := `
namespace A (
  def x = 1
)
namespace B (
  def x = 2
)
def y = A::x + B::x
`
	ctx, objects := compile(t, src)
	names := bytecodeNames(objects)
	assert.Contains(t, names, "A::x")
	assert.Contains(t, names, "B::x")
	assert.Contains(t, names, "y")
	assert.True(t, ctx.Machine.HasCombinator(nil, "A::x"))
}

func TestCompileRecursion(t *testing.T) {
	_, objects := compile(t, "def g = [ 0 -> 1 | n -> n * g (n - 1) ]")
	assert.Contains(t, bytecodeNames(objects), "g")
}

func TestCompileLetOverTuple(t *testing.T) {
	ctx, _ := compile(t, "def h = let (a, b) = (1, 2) in a")
	require.True(t, ctx.Machine.HasCombinator(nil, "h"))
	assert.True(t, ctx.Machine.HasCombinator(nil, "h::local::0"))
}

func TestCompileRedeclaration(t *testing.T) {
	ctx := newContext()
	_, err := ctx.CompileSource("def k = 1\ndef k = 2", "dup.kst")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.Semantical))
	assert.Contains(t, err.Error(), "redeclaration of k")
	assert.Contains(t, err.Error(), "dup.kst:2:")
}

func TestCompileUndeclared(t *testing.T) {
	ctx := newContext()
	_, err := ctx.CompileSource("def f = zzz", "test.kst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared zzz")
}

func TestCompileObjectAndData(t *testing.T) {
	src := `
data leaf, branch
object point x y with (
  def getx = x
)
def mk = point 1 2
`
	ctx, objects := compile(t, src)
	assert.True(t, ctx.Machine.HasCombinator(nil, "leaf"))
	assert.True(t, ctx.Machine.HasCombinator(nil, "point"))
	assert.Contains(t, bytecodeNames(objects), "mk")
}

func TestCompileConstructorPatterns(t *testing.T) {
	src := `
data leaf
def isleaf = [ leaf -> true | _ -> false ]
def len = [ (cons x xs) -> 1 + len xs | _ -> 0 ]
`
	_, objects := compile(t, src)
	names := bytecodeNames(objects)
	assert.Contains(t, names, "isleaf")
	assert.Contains(t, names, "len")
}

func TestCompileExceptions(t *testing.T) {
	_, objects := compile(t, "def f = try (throw 1) catch [ e -> e ]")
	assert.Contains(t, bytecodeNames(objects), "f")
}

func TestCompileLazyOperators(t *testing.T) {
	_, objects := compile(t, "def f = [ x -> x && (x || true) ]")
	assert.Contains(t, bytecodeNames(objects), "f")
}

func TestCompileSharedMachineAcrossModules(t *testing.T) {
	ctx := newContext()
	_, err := ctx.CompileSource("namespace A ( def x = 1 )", "a.kst")
	require.NoError(t, err)
	assert.True(t, ctx.Machine.HasCombinator(nil, "A::x"))

	// a later module resolves combinators the machine already carries
	_, err = ctx.CompileSource("def y = A::x", "b.kst")
	require.NoError(t, err)
	assert.True(t, ctx.Machine.HasCombinator(nil, "y"))
}

func TestFrontStages(t *testing.T) {
	ctx := newContext()
	tree := mustParse(t, "def f = if true then 1 else 2")

	identified, err := ctx.Front(tree, config.StageIdentify)
	require.NoError(t, err)
	assert.Contains(t, ast.Text(identified), "System::true")

	desugared, err := ctx.Front(tree, config.StageDesugar)
	require.NoError(t, err)
	assert.NotContains(t, ast.Text(desugared), "if ")
}

func TestProcessFileResolvesIncludePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.kst")
	require.NoError(t, os.WriteFile(path, []byte("def f = 1\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Silent = true
	cfg.IncludePaths = []string{dir}
	ctx := NewContext(cfg)

	objects, err := ProcessFile("mod.kst", ctx)
	require.NoError(t, err)
	assert.Contains(t, bytecodeNames(objects), "f")

	_, err = ProcessFile("absent.kst", ctx)
	assert.Error(t, err)
}

func mustParse(t *testing.T, source string) ast.Node {
	t.Helper()
	tree, err := parser.Parse(source, "test.kst")
	require.NoError(t, err)
	return tree
}
