package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// letRewriter lowers let onto an applied block:
//
//	let ll = r in b  ->  [ ll -> b ] r
type letRewriter struct {
	transform.DefaultRewrite
}

func (r *letRewriter) RewriteLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node {
	rhs0 := r.Self.Rewrite(rhs)
	b := r.Self.Rewrite(body)
	m := ast.NewMatch(p, patterns, ast.NewEmpty(), b)
	q := ast.NewBlock(p, m)
	return ast.NewApplication(p, q, rhs0)
}

func passLet(a ast.Node) ast.Node {
	r := &letRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
