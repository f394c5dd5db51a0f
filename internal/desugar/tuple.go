package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// tupleRewriter lowers tuples onto the tuple combinator:
//
//	(e0, .., en)  ->  tuple e0 .. en
type tupleRewriter struct {
	transform.DefaultRewrite
}

func (r *tupleRewriter) RewriteTuple(p ast.Position, elements []ast.Node) ast.Node {
	var t ast.Node = ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolTuple))
	for _, e := range elements {
		t = ast.NewApplication(p, t, r.Self.Rewrite(e))
	}
	return t
}

func passTuple(a ast.Node) ast.Node {
	r := &tupleRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
