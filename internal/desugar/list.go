package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// listRewriter lowers list syntax onto cons/nil:
//
//	{e0, .., en}      ->  cons e0 (.. (cons en nil))
//	{e0, .., en|tl}   ->  cons e0 (.. (cons en tl))
type listRewriter struct {
	transform.DefaultRewrite
}

func (r *listRewriter) RewriteList(p ast.Position, elements []ast.Node, tail ast.Node) ast.Node {
	cons := ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolCons))
	var l ast.Node = ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolNil))
	if tail != nil {
		l = r.Self.Rewrite(tail)
	}
	for i := len(elements) - 1; i >= 0; i-- {
		l = ast.NewApplication(p, cons, elements[i], l)
	}
	return r.Self.Rewrite(l)
}

func passList(a ast.Node) ast.Node {
	r := &listRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
