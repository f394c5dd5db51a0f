// Package lift turns a desugared module into a flat set of top-level
// combinator definitions: eta-expand blocks over their free variables,
// flatten spurious nested applications, hoist every remaining inner block
// to a fresh top-level combinator, and wrap bare definition bodies in
// nullary blocks so the emitter always starts from a block.
package lift

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// etaRewriter closes every block over its free variables: the variables
// are prefixed to each clause's patterns and the closed block is applied
// to them. A block without free variables is left alone, which keeps the
// pass idempotent.
type etaRewriter struct {
	transform.DefaultRewrite
}

func pushFront(fv []ast.Node, m ast.Node) ast.Node {
	match, ok := m.(*ast.Match)
	if !ok {
		diag.FatalAt(m.Pos().Diag(), "match expected")
	}
	pp := make([]ast.Node, 0, len(fv)+len(match.Patterns))
	pp = append(pp, fv...)
	pp = append(pp, match.Patterns...)
	return ast.NewMatch(match.Pos(), pp, match.Guard, match.Result)
}

func (r *etaRewriter) RewriteBlock(p ast.Position, matches []ast.Node) ast.Node {
	mm := r.Self.RewriteAll(matches)
	block := ast.NewBlock(p, mm...)
	fv := transform.FreeVars(block)
	if len(fv) == 0 {
		return block
	}
	closed := make([]ast.Node, 0, len(mm))
	for _, m := range mm {
		closed = append(closed, pushFront(fv, m))
	}
	terms := make([]ast.Node, 0, len(fv)+1)
	terms = append(terms, ast.NewBlock(p, closed...))
	terms = append(terms, fv...)
	return ast.NewApplication(p, terms...)
}

func passEta(a ast.Node) ast.Node {
	r := &etaRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
