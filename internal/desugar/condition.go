package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// conditionRewriter eliminates conditionals:
//
//	if i then t else e  ->  [ true -> t | _ -> e ] i
type conditionRewriter struct {
	transform.DefaultRewrite
}

func (r *conditionRewriter) RewriteIf(p ast.Position, cond, then, els ast.Node) ast.Node {
	i := r.Self.Rewrite(cond)
	t := r.Self.Rewrite(then)
	e := r.Self.Rewrite(els)

	truePat := ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolTrue))
	thenClause := ast.NewMatch(p, []ast.Node{truePat}, ast.NewEmpty(), t)
	elseClause := ast.NewMatch(p, []ast.Node{ast.NewWildcard(p, "_")}, ast.NewEmpty(), e)
	block := ast.NewBlock(p, thenClause, elseClause)
	return ast.NewApplication(p, block, i)
}

func passCondition(a ast.Node) ast.Node {
	r := &conditionRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
