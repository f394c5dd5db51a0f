package desugar

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// doRewriter turns a do-expression into a one-clause block whose fresh
// variable is passed to the first stage of the pipeline, found by
// descending the left operands of the |> chain:
//
//	do F |> G  ->  [ X -> (F X) |> G ]
type doRewriter struct {
	transform.DefaultRewrite
	tick int
}

func (r *doRewriter) freshDoVar(p ast.Position) ast.Node {
	v := fmt.Sprintf("DOVAR%d", r.tick)
	r.tick++
	return ast.NewVariable(p, v)
}

func isPipe(a ast.Node) bool {
	switch n := a.(type) {
	case *ast.Combinator:
		return n.QualifiedName() == vm.SystemName(vm.SymbolPipe)
	case *ast.Operator:
		return n.QualifiedName() == vm.SystemName(vm.SymbolPipe)
	default:
		return false
	}
}

func (r *doRewriter) addVar(e, v ast.Node) ast.Node {
	if app, ok := e.(*ast.Application); ok {
		if len(app.Terms) > 2 && isPipe(app.Terms[0]) {
			terms := make([]ast.Node, 0, len(app.Terms))
			terms = append(terms, app.Terms[0])
			terms = append(terms, r.addVar(app.Terms[1], v))
			terms = append(terms, app.Terms[2:]...)
			return ast.NewApplication(e.Pos(), terms...)
		}
	}
	return ast.NewApplication(e.Pos(), e, v)
}

func (r *doRewriter) RewriteDo(p ast.Position, expr ast.Node) ast.Node {
	e := r.Self.Rewrite(expr)
	x := r.freshDoVar(p)
	e = r.addVar(e, x)
	m := ast.NewMatch(p, []ast.Node{x}, ast.NewEmpty(), e)
	return ast.NewBlock(p, m)
}

func passDo(a ast.Node) ast.Node {
	r := &doRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
