package desugar

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// statementRewriter lowers sequencing onto let with an unused binder:
//
//	r; l  ->  let WILD<n> = r in l
//
// The binder is minted here because the wildcard pass already ran.
type statementRewriter struct {
	transform.DefaultRewrite
	tick int
}

func (r *statementRewriter) RewriteStatement(p ast.Position, first, rest ast.Node) ast.Node {
	f := r.Self.Rewrite(first)
	l := r.Self.Rewrite(rest)
	w := ast.NewVariable(p, fmt.Sprintf("WILD%d", r.tick))
	r.tick++
	return ast.NewLet(p, []ast.Node{w}, f, l)
}

func passStatement(a ast.Node) ast.Node {
	r := &statementRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
