package transform

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
)

// Transformer is the hook set of the top-down walker. Unlike Rewriter the
// hooks also receive the original node, so a hook that changes nothing can
// hand back the shared subtree unchanged.
type Transformer interface {
	Transform(a ast.Node) ast.Node
	TransformAll(aa []ast.Node) []ast.Node

	TransformInteger(a ast.Node, p ast.Position, text string) ast.Node
	TransformHexInteger(a ast.Node, p ast.Position, text string) ast.Node
	TransformFloat(a ast.Node, p ast.Position, text string) ast.Node
	TransformCharacter(a ast.Node, p ast.Position, text string) ast.Node
	TransformText(a ast.Node, p ast.Position, text string) ast.Node
	TransformVariable(a ast.Node, p ast.Position, name string) ast.Node
	TransformWildcard(a ast.Node, p ast.Position, name string) ast.Node
	TransformCombinator(a ast.Node, p ast.Position, path []string, name string) ast.Node
	TransformOperator(a ast.Node, p ast.Position, path []string, name string) ast.Node
	TransformTagged(a ast.Node, p ast.Position, pattern, tagger ast.Node) ast.Node
	TransformList(a ast.Node, p ast.Position, elements []ast.Node, tail ast.Node) ast.Node
	TransformTuple(a ast.Node, p ast.Position, elements []ast.Node) ast.Node
	TransformApplication(a ast.Node, p ast.Position, terms []ast.Node) ast.Node
	TransformBlock(a ast.Node, p ast.Position, matches []ast.Node) ast.Node
	TransformMatch(a ast.Node, p ast.Position, patterns []ast.Node, guard, result ast.Node) ast.Node
	TransformTry(a ast.Node, p ast.Position, body, handler ast.Node) ast.Node
	TransformThrow(a ast.Node, p ast.Position, expr ast.Node) ast.Node
	TransformLambda(a ast.Node, p ast.Position, clause ast.Node) ast.Node
	TransformLet(a ast.Node, p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node
	TransformIf(a ast.Node, p ast.Position, cond, then, els ast.Node) ast.Node
	TransformStatement(a ast.Node, p ast.Position, first, rest ast.Node) ast.Node
	TransformDo(a ast.Node, p ast.Position, expr ast.Node) ast.Node
	TransformImport(a ast.Node, p ast.Position, file string) ast.Node
	TransformUsing(a ast.Node, p ast.Position, path []string) ast.Node
	TransformNamespaceDecl(a ast.Node, p ast.Position, path []string, decls []ast.Node) ast.Node
	TransformDataDecl(a ast.Node, p ast.Position, combinators []ast.Node) ast.Node
	TransformDefinition(a ast.Node, p ast.Position, combinator, body ast.Node) ast.Node
	TransformOperatorDecl(a ast.Node, p ast.Position, combinator, body ast.Node) ast.Node
	TransformObjectDecl(a ast.Node, p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) ast.Node
	TransformValueDecl(a ast.Node, p ast.Position, combinator, body ast.Node) ast.Node
	TransformWrapper(a ast.Node, p ast.Position, decls []ast.Node) ast.Node
}

// DefaultTransform is the default Transformer: leaves are returned as-is,
// composites are rebuilt around transformed children.
type DefaultTransform struct {
	Self Transformer
}

func (t *DefaultTransform) Transform(a ast.Node) ast.Node {
	switch n := a.(type) {
	case *ast.Empty:
		return a
	case *ast.Integer:
		return t.Self.TransformInteger(a, n.Pos(), n.Text)
	case *ast.HexInteger:
		return t.Self.TransformHexInteger(a, n.Pos(), n.Text)
	case *ast.Float:
		return t.Self.TransformFloat(a, n.Pos(), n.Text)
	case *ast.Character:
		return t.Self.TransformCharacter(a, n.Pos(), n.Text)
	case *ast.Text:
		return t.Self.TransformText(a, n.Pos(), n.Text)
	case *ast.Variable:
		return t.Self.TransformVariable(a, n.Pos(), n.Name)
	case *ast.Wildcard:
		return t.Self.TransformWildcard(a, n.Pos(), n.Name)
	case *ast.Combinator:
		return t.Self.TransformCombinator(a, n.Pos(), n.Path, n.Name)
	case *ast.Operator:
		return t.Self.TransformOperator(a, n.Pos(), n.Path, n.Name)
	case *ast.Tagged:
		return t.Self.TransformTagged(a, n.Pos(), n.Pattern, n.Tagger)
	case *ast.List:
		return t.Self.TransformList(a, n.Pos(), n.Elements, n.Tail)
	case *ast.Tuple:
		return t.Self.TransformTuple(a, n.Pos(), n.Elements)
	case *ast.Application:
		return t.Self.TransformApplication(a, n.Pos(), n.Terms)
	case *ast.Block:
		return t.Self.TransformBlock(a, n.Pos(), n.Matches)
	case *ast.Match:
		return t.Self.TransformMatch(a, n.Pos(), n.Patterns, n.Guard, n.Result)
	case *ast.Try:
		return t.Self.TransformTry(a, n.Pos(), n.Body, n.Handler)
	case *ast.Throw:
		return t.Self.TransformThrow(a, n.Pos(), n.Expr)
	case *ast.Lambda:
		return t.Self.TransformLambda(a, n.Pos(), n.Clause)
	case *ast.Let:
		return t.Self.TransformLet(a, n.Pos(), n.Patterns, n.Rhs, n.Body)
	case *ast.If:
		return t.Self.TransformIf(a, n.Pos(), n.Cond, n.Then, n.Else)
	case *ast.Statement:
		return t.Self.TransformStatement(a, n.Pos(), n.First, n.Rest)
	case *ast.Do:
		return t.Self.TransformDo(a, n.Pos(), n.Expr)
	case *ast.Import:
		return t.Self.TransformImport(a, n.Pos(), n.File)
	case *ast.Using:
		return t.Self.TransformUsing(a, n.Pos(), n.Path)
	case *ast.NamespaceDecl:
		return t.Self.TransformNamespaceDecl(a, n.Pos(), n.Path, n.Decls)
	case *ast.DataDecl:
		return t.Self.TransformDataDecl(a, n.Pos(), n.Combinators)
	case *ast.Definition:
		return t.Self.TransformDefinition(a, n.Pos(), n.Combinator, n.Body)
	case *ast.OperatorDecl:
		return t.Self.TransformOperatorDecl(a, n.Pos(), n.Combinator, n.Body)
	case *ast.ObjectDecl:
		return t.Self.TransformObjectDecl(a, n.Pos(), n.Combinator, n.Variables, n.Fields, n.Extends)
	case *ast.ValueDecl:
		return t.Self.TransformValueDecl(a, n.Pos(), n.Combinator, n.Body)
	case *ast.Wrapper:
		return t.Self.TransformWrapper(a, n.Pos(), n.Decls)
	default:
		diag.Fatal("transform exhausted on %s", a.Tag())
		return nil
	}
}

func (t *DefaultTransform) TransformAll(aa []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(aa))
	for _, a := range aa {
		out = append(out, t.Self.Transform(a))
	}
	return out
}

func (t *DefaultTransform) TransformInteger(a ast.Node, p ast.Position, text string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformHexInteger(a ast.Node, p ast.Position, text string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformFloat(a ast.Node, p ast.Position, text string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformCharacter(a ast.Node, p ast.Position, text string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformText(a ast.Node, p ast.Position, text string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformVariable(a ast.Node, p ast.Position, name string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformWildcard(a ast.Node, p ast.Position, name string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformCombinator(a ast.Node, p ast.Position, path []string, name string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformOperator(a ast.Node, p ast.Position, path []string, name string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformTagged(a ast.Node, p ast.Position, pattern, tagger ast.Node) ast.Node {
	return ast.NewTagged(p, t.Self.Transform(pattern), t.Self.Transform(tagger))
}

func (t *DefaultTransform) TransformList(a ast.Node, p ast.Position, elements []ast.Node, tail ast.Node) ast.Node {
	ee := t.Self.TransformAll(elements)
	if tail == nil {
		return ast.NewList(p, ee, nil)
	}
	return ast.NewList(p, ee, t.Self.Transform(tail))
}

func (t *DefaultTransform) TransformTuple(a ast.Node, p ast.Position, elements []ast.Node) ast.Node {
	return ast.NewTuple(p, t.Self.TransformAll(elements))
}

func (t *DefaultTransform) TransformApplication(a ast.Node, p ast.Position, terms []ast.Node) ast.Node {
	return ast.NewApplication(p, t.Self.TransformAll(terms)...)
}

func (t *DefaultTransform) TransformBlock(a ast.Node, p ast.Position, matches []ast.Node) ast.Node {
	return ast.NewBlock(p, t.Self.TransformAll(matches)...)
}

func (t *DefaultTransform) TransformMatch(a ast.Node, p ast.Position, patterns []ast.Node, guard, result ast.Node) ast.Node {
	pp := t.Self.TransformAll(patterns)
	g := t.Self.Transform(guard)
	e := t.Self.Transform(result)
	return ast.NewMatch(p, pp, g, e)
}

func (t *DefaultTransform) TransformTry(a ast.Node, p ast.Position, body, handler ast.Node) ast.Node {
	return ast.NewTry(p, t.Self.Transform(body), t.Self.Transform(handler))
}

func (t *DefaultTransform) TransformThrow(a ast.Node, p ast.Position, expr ast.Node) ast.Node {
	return ast.NewThrow(p, t.Self.Transform(expr))
}

func (t *DefaultTransform) TransformLambda(a ast.Node, p ast.Position, clause ast.Node) ast.Node {
	return ast.NewLambda(p, t.Self.Transform(clause))
}

func (t *DefaultTransform) TransformLet(a ast.Node, p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node {
	pp := t.Self.TransformAll(patterns)
	return ast.NewLet(p, pp, t.Self.Transform(rhs), t.Self.Transform(body))
}

func (t *DefaultTransform) TransformIf(a ast.Node, p ast.Position, cond, then, els ast.Node) ast.Node {
	return ast.NewIf(p, t.Self.Transform(cond), t.Self.Transform(then), t.Self.Transform(els))
}

func (t *DefaultTransform) TransformStatement(a ast.Node, p ast.Position, first, rest ast.Node) ast.Node {
	return ast.NewStatement(p, t.Self.Transform(first), t.Self.Transform(rest))
}

func (t *DefaultTransform) TransformDo(a ast.Node, p ast.Position, expr ast.Node) ast.Node {
	return ast.NewDo(p, t.Self.Transform(expr))
}

func (t *DefaultTransform) TransformImport(a ast.Node, p ast.Position, file string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformUsing(a ast.Node, p ast.Position, path []string) ast.Node {
	return a
}

func (t *DefaultTransform) TransformNamespaceDecl(a ast.Node, p ast.Position, path []string, decls []ast.Node) ast.Node {
	return ast.NewNamespaceDecl(p, path, t.Self.TransformAll(decls))
}

func (t *DefaultTransform) TransformDataDecl(a ast.Node, p ast.Position, combinators []ast.Node) ast.Node {
	return ast.NewDataDecl(p, t.Self.TransformAll(combinators))
}

func (t *DefaultTransform) TransformDefinition(a ast.Node, p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewDefinition(p, t.Self.Transform(combinator), t.Self.Transform(body))
}

func (t *DefaultTransform) TransformOperatorDecl(a ast.Node, p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewOperatorDecl(p, t.Self.Transform(combinator), t.Self.Transform(body))
}

func (t *DefaultTransform) TransformObjectDecl(a ast.Node, p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) ast.Node {
	c := t.Self.Transform(combinator)
	vv := t.Self.TransformAll(variables)
	ff := t.Self.TransformAll(fields)
	ee := t.Self.TransformAll(extends)
	return ast.NewObjectDecl(p, c, vv, ff, ee)
}

func (t *DefaultTransform) TransformValueDecl(a ast.Node, p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewValueDecl(p, t.Self.Transform(combinator), t.Self.Transform(body))
}

func (t *DefaultTransform) TransformWrapper(a ast.Node, p ast.Position, decls []ast.Node) ast.Node {
	return ast.NewWrapper(p, t.Self.TransformAll(decls))
}
