package lift

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// relambdaRewriter wraps any declaration body that is not already a block
// in a nullary block, so the emitter sees a block at the root of every
// definition and every clause can end in a return.
type relambdaRewriter struct {
	transform.DefaultRewrite
}

func relambda(p ast.Position, body ast.Node) ast.Node {
	if body.Tag() == ast.TagBlock {
		return body
	}
	m := ast.NewMatch(p, nil, ast.NewEmpty(), body)
	return ast.NewBlock(p, m)
}

func (r *relambdaRewriter) RewriteDefinition(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewDefinition(p, combinator, relambda(p, body))
}

func (r *relambdaRewriter) RewriteOperatorDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewOperatorDecl(p, combinator, relambda(p, body))
}

func (r *relambdaRewriter) RewriteValueDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewValueDecl(p, combinator, relambda(p, body))
}

func passRelambda(a ast.Node) ast.Node {
	r := &relambdaRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
