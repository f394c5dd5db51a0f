package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// objectRewriter expands an object declaration into a data declaration for
// the field names plus a definition building the object value through the
// object and extend combinators, abstracted over the object's variables
// when it has any.
type objectRewriter struct {
	transform.DefaultRewrite
}

func (r *objectRewriter) RewriteDefinition(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewDefinition(p, combinator, body) // cut
}

func (r *objectRewriter) RewriteOperatorDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewOperatorDecl(p, combinator, body) // cut
}

func (r *objectRewriter) RewriteObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) ast.Node {
	oo := []ast.Node{ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolObject))}
	var dd []ast.Node
	for _, f := range fields {
		switch field := f.(type) {
		case *ast.DataDecl:
			oo = append(oo, field.Combinators[0], field.Combinators[1])
			dd = append(dd, field.Combinators[0])
		case *ast.Definition:
			oo = append(oo, field.Combinator, field.Body)
			dd = append(dd, field.Combinator)
		default:
			diag.FatalAt(p.Diag(), "failed to rewrite field")
		}
	}
	var body ast.Node = ast.NewApplication(p, oo...)
	for _, e := range extends {
		ex := ast.NewCombinator(p, nil, vm.SystemName(vm.SymbolExtend))
		body = ast.NewApplication(p, ex, e, body)
	}
	if len(variables) > 0 {
		m := ast.NewMatch(p, variables, ast.NewEmpty(), body)
		body = ast.NewBlock(p, m)
	}
	decls := []ast.Node{
		ast.NewDataDecl(p, dd),
		ast.NewDefinition(p, combinator, body),
	}
	return ast.NewWrapper(p, decls)
}

func passObject(a ast.Node) ast.Node {
	r := &objectRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
