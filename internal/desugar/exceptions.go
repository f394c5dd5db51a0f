package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// throwRewriter lowers throw onto the throw combinator:
//
//	throw e  ->  System::throw e
type throwRewriter struct {
	transform.DefaultRewrite
}

func (r *throwRewriter) RewriteThrow(p ast.Position, expr ast.Node) ast.Node {
	t := ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolThrow))
	return ast.NewApplication(p, t, r.Self.Rewrite(expr))
}

func passThrow(a ast.Node) ast.Node {
	r := &throwRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}

// tryRewriter shields try from the head of an application, which keeps
// lifting simple:
//
//	try t catch c  ->  id (try t catch c)
type tryRewriter struct {
	transform.DefaultRewrite
}

func (r *tryRewriter) RewriteTry(p ast.Position, body, handler ast.Node) ast.Node {
	id := ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolId))
	t := r.Self.Rewrite(body)
	c := r.Self.Rewrite(handler)
	return ast.NewApplication(p, id, ast.NewTry(p, t, c))
}

func passTry(a ast.Node) ast.Node {
	r := &tryRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
