package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// lambdaRewriter lowers a lambda onto a block of one match:
//
//	\m  ->  [ m ]
type lambdaRewriter struct {
	transform.DefaultRewrite
}

func (r *lambdaRewriter) RewriteLambda(p ast.Position, clause ast.Node) ast.Node {
	return ast.NewBlock(p, r.Self.Rewrite(clause))
}

func passLambda(a ast.Node) ast.Node {
	r := &lambdaRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
