package semantic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/parser"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// newEnv builds a namespace tree seeded with the builtins, the way the
// driver does before the semantic pass runs.
func newEnv(t *testing.T) *Namespace {
	t.Helper()
	env := NewNamespace()
	m := vm.NewMachine()
	vm.RegisterBuiltins(m)
	for _, c := range m.Combinators() {
		if m.IsData(c) {
			require.NoError(t, env.DeclareData(c.CombinatorPath(), c.CombinatorName(), c.Qualified()))
		} else {
			require.NoError(t, env.Declare(c.CombinatorPath(), c.CombinatorName(), c.Qualified()))
		}
	}
	return env
}

func analyze(t *testing.T, source string) (ast.Node, *Namespace, error) {
	t.Helper()
	tree, err := parser.Parse(source, "test.kst")
	require.NoError(t, err)
	env := newEnv(t)
	if err := Declare(env, tree); err != nil {
		return nil, env, err
	}
	out, err := Identify(env, tree)
	return out, env, err
}

// tagCounter counts node tags across a whole tree.
type tagCounter struct {
	transform.DefaultVisit
	counts map[ast.Tag]int
}

func countTags(a ast.Node) map[ast.Tag]int {
	c := &tagCounter{counts: map[ast.Tag]int{}}
	c.Self = c
	c.walk(a)
	return c.counts
}

func (c *tagCounter) walk(a ast.Node) {
	c.counts[a.Tag()]++
	c.DefaultVisit.Visit(a)
}

func (c *tagCounter) Visit(a ast.Node) { c.walk(a) }

func TestNamespaceDeclare(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.Declare([]string{"A"}, "x", "A::x"))
	assert.Equal(t, "A::x", ns.Get([]string{"A"}, "x"))
	assert.Equal(t, "", ns.Get([]string{"B"}, "x"))

	err := ns.Declare([]string{"A"}, "x", "A::x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redeclaration of x")

	// implicit declaration overwrites silently
	ns.DeclareImplicit([]string{"A"}, "x", "other")
	assert.Equal(t, "other", ns.Get([]string{"A"}, "x"))
}

func TestRangeLookup(t *testing.T) {
	globals := NewNamespace()
	require.NoError(t, globals.Declare([]string{"A"}, "x", "A::x"))
	require.NoError(t, globals.Declare(nil, "f", "f"))

	root := NewRange(globals)
	require.NoError(t, root.Declare("v", "V_0"))

	inner := root.Enter()
	assert.Equal(t, "V_0", inner.LookupLocal("v"))
	assert.Equal(t, "", inner.LookupLocal("f"))
	assert.Equal(t, "f", inner.LookupUses("f"))
	assert.Equal(t, "A::x", inner.LookupQualified([]string{"A"}, "x"))
	assert.Equal(t, "", inner.LookupQualified([]string{"A"}, "y"))

	inner.AddUsing([]string{"A"})
	assert.Equal(t, "A::x", inner.LookupUses("x"))

	assert.Same(t, root, inner.Leave())
}

func TestIdentifyFlattensModule(t *testing.T) {
	src := `
namespace A (
  def x = 1
)
namespace B (
  def x = 2
)
def y = A::x + B::x
`
	out, env, err := analyze(t, src)
	require.NoError(t, err)

	counts := countTags(out)
	assert.Zero(t, counts[ast.TagNamespaceDecl])
	assert.Zero(t, counts[ast.TagImport])
	assert.Zero(t, counts[ast.TagUsing])

	assert.Equal(t, "A::x", env.Get([]string{"A"}, "x"))
	assert.Equal(t, "B::x", env.Get([]string{"B"}, "x"))

	w := out.(*ast.Wrapper)
	require.Len(t, w.Decls, 3)
	y := w.Decls[2].(*ast.Definition)
	assert.Equal(t, "(System::+ A::x B::x)", ast.Text(y.Body))
}

// every combinator has an empty path and a name present in the flattened
// namespace
type combinatorChecker struct {
	transform.DefaultVisit
	t   *testing.T
	env *Namespace
}

func (c *combinatorChecker) VisitCombinator(p ast.Position, path []string, name string) {
	assert.Empty(c.t, path)
	if !strings.HasPrefix(name, "System::") {
		found := false
		segments := strings.Split(name, ast.PathSeparator)
		if c.env.Get(segments[:len(segments)-1], segments[len(segments)-1]) != "" {
			found = true
		}
		assert.True(c.t, found, "combinator %s not in namespace", name)
	}
}

func TestIdentifyQualifiesEveryCombinator(t *testing.T) {
	src := `
namespace A (
  def x = 1
  def z = x
)
def y = A::x
`
	out, env, err := analyze(t, src)
	require.NoError(t, err)
	c := &combinatorChecker{t: t, env: env}
	c.Self = c
	c.Self.Visit(out)
}

func TestIdentifyPatternsAreAlphaUnique(t *testing.T) {
	src := `def f = [ x -> [ x -> x ] x ]`
	out, _, err := analyze(t, src)
	require.NoError(t, err)

	// both binders got fresh names, the inner one shadowing the outer
	text := ast.Text(out)
	assert.NotContains(t, text, "[ x ->")
	assert.Contains(t, text, "V_0")
	assert.Contains(t, text, "V_1")
}

func TestIdentifySelfReference(t *testing.T) {
	out, _, err := analyze(t, `def g = [ 0 -> 1 | n -> g n ]`)
	require.NoError(t, err)
	text := ast.Text(out)
	assert.Contains(t, text, "g V_0")
}

func TestIdentifyErrors(t *testing.T) {
	testCases := []struct {
		name    string
		source  string
		message string
	}{
		{"undeclared variable", "def f = zzz", "undeclared zzz"},
		{"undeclared qualified", "def f = A::x", "undeclared A::x"},
		{"duplicate pattern binder", "def f = [ x x -> x ]", "redeclaration of x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := analyze(t, tc.source)
			require.Error(t, err)
			assert.True(t, diag.IsKind(err, diag.Semantical), "got %v", err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestIdentifyRejectsIllegalPatterns(t *testing.T) {
	// a tagged pattern must bind a variable
	_, _, err := analyze(t, "data c\ndef f = [ 1:c -> 1 ]")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.Identification), "got %v", err)
	assert.Contains(t, err.Error(), "variable expected")

	// expression-only constructs cannot appear in pattern position
	p := ast.Position{Source: "test.kst", Line: 1, Col: 1}
	block := ast.NewBlock(p, ast.NewMatch(p, nil, ast.NewEmpty(), ast.NewInteger(p, "1")))
	tree := ast.NewWrapper(p, []ast.Node{
		ast.NewDefinition(p,
			ast.NewCombinator(p, nil, "f"),
			ast.NewBlock(p, ast.NewMatch(p, []ast.Node{block}, ast.NewEmpty(), ast.NewInteger(p, "1")))),
	})
	env := newEnv(t)
	require.NoError(t, Declare(env, tree))
	_, err = Identify(env, tree)
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.Identification), "got %v", err)
	assert.Contains(t, err.Error(), "illegal block in pattern")
}

func TestDeclareRejectsRedeclaration(t *testing.T) {
	tree, err := parser.Parse("def k = 1\ndef k = 2", "dup.kst")
	require.NoError(t, err)
	env := newEnv(t)
	err = Declare(env, tree)
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.Semantical))
	assert.Contains(t, err.Error(), "redeclaration of k")
	// the position of the second declaration is reported
	assert.Contains(t, err.Error(), "dup.kst:2:")
}

func TestIdentifyUsingBringsNamespaceInScope(t *testing.T) {
	src := `
namespace A (
  def x = 1
)
using A
def y = x
`
	out, _, err := analyze(t, src)
	require.NoError(t, err)
	text := ast.Text(out)
	assert.Contains(t, text, "def y = A::x")
}
