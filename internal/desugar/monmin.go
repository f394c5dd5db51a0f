package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// monMinRewriter folds unary minus on integer literals syntactically:
//
//	(!- 7)  ->  -7
type monMinRewriter struct {
	transform.DefaultRewrite
}

func (r *monMinRewriter) RewriteApplication(p ast.Position, terms []ast.Node) ast.Node {
	if len(terms) == 2 && operatorName(terms[0]) == vm.SystemName(vm.SymbolMonMin) {
		if i, ok := terms[1].(*ast.Integer); ok {
			return ast.NewInteger(i.Pos(), "-"+i.Text)
		}
	}
	return ast.NewApplication(p, r.Self.RewriteAll(terms)...)
}

func passMonMin(a ast.Node) ast.Node {
	r := &monMinRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
