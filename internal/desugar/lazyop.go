package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// operatorName returns the qualified name of a combinator or operator
// head, or the empty string for any other node.
func operatorName(a ast.Node) string {
	switch n := a.(type) {
	case *ast.Combinator:
		return n.QualifiedName()
	case *ast.Operator:
		return n.QualifiedName()
	default:
		return ""
	}
}

// lambdify thunks an expression behind a one-clause block with an unused
// binder, delaying its evaluation.
func lambdify(e ast.Node) ast.Node {
	p := e.Pos()
	v := ast.NewVariable(p, "WILD0")
	m := ast.NewMatch(p, []ast.Node{v}, ast.NewEmpty(), e)
	return ast.NewBlock(p, m)
}

// lazyOpRewriter thunks the second operand of the lazy boolean operators.
// It runs after identification, so it can key on the fully qualified
// operator names:
//
//	e0 && e1  ->  && e0 [ _ -> e1 ]
//	e0 || e1  ->  || e0 [ _ -> e1 ]
type lazyOpRewriter struct {
	transform.DefaultRewrite
}

func (r *lazyOpRewriter) RewriteApplication(p ast.Position, terms []ast.Node) ast.Node {
	if len(terms) == 3 {
		if s := operatorName(terms[0]); s == vm.SystemName(vm.SymbolAnd) || s == vm.SystemName(vm.SymbolOr) {
			arg0 := r.Self.Rewrite(terms[1])
			arg1 := lambdify(r.Self.Rewrite(terms[2]))
			return ast.NewApplication(p, terms[0], arg0, arg1)
		}
	}
	return ast.NewApplication(p, r.Self.RewriteAll(terms)...)
}

func passLazyOp(a ast.Node) ast.Node {
	r := &lazyOpRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
