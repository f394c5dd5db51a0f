package lift

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// deapplyRewriter flattens the spurious applications the other passes
// introduce:
//
//	(f a ..) b ..  ->  f a .. b ..
//	(e)            ->  e
type deapplyRewriter struct {
	transform.DefaultRewrite
}

func (r *deapplyRewriter) RewriteApplication(p ast.Position, terms []ast.Node) ast.Node {
	if head, ok := terms[0].(*ast.Application); ok {
		flat := make([]ast.Node, 0, len(head.Terms)+len(terms)-1)
		flat = append(flat, head.Terms...)
		flat = append(flat, terms[1:]...)
		return r.Self.Rewrite(ast.NewApplication(head.Pos(), flat...))
	}
	if len(terms) == 1 {
		return r.Self.Rewrite(terms[0])
	}
	return ast.NewApplication(p, r.Self.RewriteAll(terms)...)
}

func passDeapply(a ast.Node) ast.Node {
	r := &deapplyRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
