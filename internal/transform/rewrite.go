// Package transform provides the three generic walkers every pass is
// built from: Transform (top-down, may thread state through siblings),
// Rewrite (bottom-up reconstruction) and Visit (read-only analysis).
//
// A pass embeds one of the walker bases and overrides the hooks for the
// variants it cares about; the base supplies structural recursion for the
// rest. The base dispatches through the Self field so that overridden
// hooks fire on children too — a pass constructor must point Self at the
// outermost value. Hooks receive node payloads already split so that no
// pass re-dispatches on a tag inside the hook for that tag.
//
// Hooks abort a pass by panicking with a *diag.Error; pass entry points
// recover it into an ordinary error return.
package transform

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
)

// Rewriter is the hook set of the bottom-up walker.
type Rewriter interface {
	Rewrite(a ast.Node) ast.Node
	RewriteAll(aa []ast.Node) []ast.Node

	RewriteInteger(p ast.Position, text string) ast.Node
	RewriteHexInteger(p ast.Position, text string) ast.Node
	RewriteFloat(p ast.Position, text string) ast.Node
	RewriteCharacter(p ast.Position, text string) ast.Node
	RewriteText(p ast.Position, text string) ast.Node
	RewriteVariable(p ast.Position, name string) ast.Node
	RewriteWildcard(p ast.Position, name string) ast.Node
	RewriteCombinator(p ast.Position, path []string, name string) ast.Node
	RewriteOperator(p ast.Position, path []string, name string) ast.Node
	RewriteTagged(p ast.Position, pattern, tagger ast.Node) ast.Node
	RewriteList(p ast.Position, elements []ast.Node, tail ast.Node) ast.Node
	RewriteTuple(p ast.Position, elements []ast.Node) ast.Node
	RewriteApplication(p ast.Position, terms []ast.Node) ast.Node
	RewriteBlock(p ast.Position, matches []ast.Node) ast.Node
	RewriteMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) ast.Node
	RewriteTry(p ast.Position, body, handler ast.Node) ast.Node
	RewriteThrow(p ast.Position, expr ast.Node) ast.Node
	RewriteLambda(p ast.Position, clause ast.Node) ast.Node
	RewriteLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node
	RewriteIf(p ast.Position, cond, then, els ast.Node) ast.Node
	RewriteStatement(p ast.Position, first, rest ast.Node) ast.Node
	RewriteDo(p ast.Position, expr ast.Node) ast.Node
	RewriteImport(p ast.Position, file string) ast.Node
	RewriteUsing(p ast.Position, path []string) ast.Node
	RewriteNamespaceDecl(p ast.Position, path []string, decls []ast.Node) ast.Node
	RewriteDataDecl(p ast.Position, combinators []ast.Node) ast.Node
	RewriteDefinition(p ast.Position, combinator, body ast.Node) ast.Node
	RewriteOperatorDecl(p ast.Position, combinator, body ast.Node) ast.Node
	RewriteObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) ast.Node
	RewriteValueDecl(p ast.Position, combinator, body ast.Node) ast.Node
	RewriteWrapper(p ast.Position, decls []ast.Node) ast.Node
}

// DefaultRewrite is the default Rewriter: every hook rebuilds the node after
// rewriting its children.
type DefaultRewrite struct {
	Self Rewriter
}

// Rewrite dispatches one node to the hook for its variant.
func (r *DefaultRewrite) Rewrite(a ast.Node) ast.Node {
	switch n := a.(type) {
	case *ast.Empty:
		return a
	case *ast.Integer:
		return r.Self.RewriteInteger(n.Pos(), n.Text)
	case *ast.HexInteger:
		return r.Self.RewriteHexInteger(n.Pos(), n.Text)
	case *ast.Float:
		return r.Self.RewriteFloat(n.Pos(), n.Text)
	case *ast.Character:
		return r.Self.RewriteCharacter(n.Pos(), n.Text)
	case *ast.Text:
		return r.Self.RewriteText(n.Pos(), n.Text)
	case *ast.Variable:
		return r.Self.RewriteVariable(n.Pos(), n.Name)
	case *ast.Wildcard:
		return r.Self.RewriteWildcard(n.Pos(), n.Name)
	case *ast.Combinator:
		return r.Self.RewriteCombinator(n.Pos(), n.Path, n.Name)
	case *ast.Operator:
		return r.Self.RewriteOperator(n.Pos(), n.Path, n.Name)
	case *ast.Tagged:
		return r.Self.RewriteTagged(n.Pos(), n.Pattern, n.Tagger)
	case *ast.List:
		return r.Self.RewriteList(n.Pos(), n.Elements, n.Tail)
	case *ast.Tuple:
		return r.Self.RewriteTuple(n.Pos(), n.Elements)
	case *ast.Application:
		return r.Self.RewriteApplication(n.Pos(), n.Terms)
	case *ast.Block:
		return r.Self.RewriteBlock(n.Pos(), n.Matches)
	case *ast.Match:
		return r.Self.RewriteMatch(n.Pos(), n.Patterns, n.Guard, n.Result)
	case *ast.Try:
		return r.Self.RewriteTry(n.Pos(), n.Body, n.Handler)
	case *ast.Throw:
		return r.Self.RewriteThrow(n.Pos(), n.Expr)
	case *ast.Lambda:
		return r.Self.RewriteLambda(n.Pos(), n.Clause)
	case *ast.Let:
		return r.Self.RewriteLet(n.Pos(), n.Patterns, n.Rhs, n.Body)
	case *ast.If:
		return r.Self.RewriteIf(n.Pos(), n.Cond, n.Then, n.Else)
	case *ast.Statement:
		return r.Self.RewriteStatement(n.Pos(), n.First, n.Rest)
	case *ast.Do:
		return r.Self.RewriteDo(n.Pos(), n.Expr)
	case *ast.Import:
		return r.Self.RewriteImport(n.Pos(), n.File)
	case *ast.Using:
		return r.Self.RewriteUsing(n.Pos(), n.Path)
	case *ast.NamespaceDecl:
		return r.Self.RewriteNamespaceDecl(n.Pos(), n.Path, n.Decls)
	case *ast.DataDecl:
		return r.Self.RewriteDataDecl(n.Pos(), n.Combinators)
	case *ast.Definition:
		return r.Self.RewriteDefinition(n.Pos(), n.Combinator, n.Body)
	case *ast.OperatorDecl:
		return r.Self.RewriteOperatorDecl(n.Pos(), n.Combinator, n.Body)
	case *ast.ObjectDecl:
		return r.Self.RewriteObjectDecl(n.Pos(), n.Combinator, n.Variables, n.Fields, n.Extends)
	case *ast.ValueDecl:
		return r.Self.RewriteValueDecl(n.Pos(), n.Combinator, n.Body)
	case *ast.Wrapper:
		return r.Self.RewriteWrapper(n.Pos(), n.Decls)
	default:
		diag.Fatal("rewrite exhausted on %s", a.Tag())
		return nil
	}
}

// RewriteAll rewrites a slice of siblings in order.
func (r *DefaultRewrite) RewriteAll(aa []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(aa))
	for _, a := range aa {
		out = append(out, r.Self.Rewrite(a))
	}
	return out
}

func (r *DefaultRewrite) RewriteInteger(p ast.Position, text string) ast.Node {
	return ast.NewInteger(p, text)
}

func (r *DefaultRewrite) RewriteHexInteger(p ast.Position, text string) ast.Node {
	return ast.NewHexInteger(p, text)
}

func (r *DefaultRewrite) RewriteFloat(p ast.Position, text string) ast.Node {
	return ast.NewFloat(p, text)
}

func (r *DefaultRewrite) RewriteCharacter(p ast.Position, text string) ast.Node {
	return ast.NewCharacter(p, text)
}

func (r *DefaultRewrite) RewriteText(p ast.Position, text string) ast.Node {
	return ast.NewText(p, text)
}

func (r *DefaultRewrite) RewriteVariable(p ast.Position, name string) ast.Node {
	return ast.NewVariable(p, name)
}

func (r *DefaultRewrite) RewriteWildcard(p ast.Position, name string) ast.Node {
	return ast.NewWildcard(p, name)
}

func (r *DefaultRewrite) RewriteCombinator(p ast.Position, path []string, name string) ast.Node {
	return ast.NewCombinator(p, path, name)
}

func (r *DefaultRewrite) RewriteOperator(p ast.Position, path []string, name string) ast.Node {
	return ast.NewOperator(p, path, name)
}

func (r *DefaultRewrite) RewriteTagged(p ast.Position, pattern, tagger ast.Node) ast.Node {
	return ast.NewTagged(p, r.Self.Rewrite(pattern), r.Self.Rewrite(tagger))
}

func (r *DefaultRewrite) RewriteList(p ast.Position, elements []ast.Node, tail ast.Node) ast.Node {
	ee := r.Self.RewriteAll(elements)
	if tail == nil {
		return ast.NewList(p, ee, nil)
	}
	return ast.NewList(p, ee, r.Self.Rewrite(tail))
}

func (r *DefaultRewrite) RewriteTuple(p ast.Position, elements []ast.Node) ast.Node {
	return ast.NewTuple(p, r.Self.RewriteAll(elements))
}

func (r *DefaultRewrite) RewriteApplication(p ast.Position, terms []ast.Node) ast.Node {
	return ast.NewApplication(p, r.Self.RewriteAll(terms)...)
}

func (r *DefaultRewrite) RewriteBlock(p ast.Position, matches []ast.Node) ast.Node {
	return ast.NewBlock(p, r.Self.RewriteAll(matches)...)
}

func (r *DefaultRewrite) RewriteMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) ast.Node {
	pp := r.Self.RewriteAll(patterns)
	g := r.Self.Rewrite(guard)
	e := r.Self.Rewrite(result)
	return ast.NewMatch(p, pp, g, e)
}

func (r *DefaultRewrite) RewriteTry(p ast.Position, body, handler ast.Node) ast.Node {
	return ast.NewTry(p, r.Self.Rewrite(body), r.Self.Rewrite(handler))
}

func (r *DefaultRewrite) RewriteThrow(p ast.Position, expr ast.Node) ast.Node {
	return ast.NewThrow(p, r.Self.Rewrite(expr))
}

func (r *DefaultRewrite) RewriteLambda(p ast.Position, clause ast.Node) ast.Node {
	return ast.NewLambda(p, r.Self.Rewrite(clause))
}

func (r *DefaultRewrite) RewriteLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node {
	pp := r.Self.RewriteAll(patterns)
	return ast.NewLet(p, pp, r.Self.Rewrite(rhs), r.Self.Rewrite(body))
}

func (r *DefaultRewrite) RewriteIf(p ast.Position, cond, then, els ast.Node) ast.Node {
	return ast.NewIf(p, r.Self.Rewrite(cond), r.Self.Rewrite(then), r.Self.Rewrite(els))
}

func (r *DefaultRewrite) RewriteStatement(p ast.Position, first, rest ast.Node) ast.Node {
	return ast.NewStatement(p, r.Self.Rewrite(first), r.Self.Rewrite(rest))
}

func (r *DefaultRewrite) RewriteDo(p ast.Position, expr ast.Node) ast.Node {
	return ast.NewDo(p, r.Self.Rewrite(expr))
}

func (r *DefaultRewrite) RewriteImport(p ast.Position, file string) ast.Node {
	return ast.NewImport(p, file)
}

func (r *DefaultRewrite) RewriteUsing(p ast.Position, path []string) ast.Node {
	return ast.NewUsing(p, path)
}

func (r *DefaultRewrite) RewriteNamespaceDecl(p ast.Position, path []string, decls []ast.Node) ast.Node {
	return ast.NewNamespaceDecl(p, path, r.Self.RewriteAll(decls))
}

func (r *DefaultRewrite) RewriteDataDecl(p ast.Position, combinators []ast.Node) ast.Node {
	return ast.NewDataDecl(p, r.Self.RewriteAll(combinators))
}

func (r *DefaultRewrite) RewriteDefinition(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewDefinition(p, r.Self.Rewrite(combinator), r.Self.Rewrite(body))
}

func (r *DefaultRewrite) RewriteOperatorDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewOperatorDecl(p, r.Self.Rewrite(combinator), r.Self.Rewrite(body))
}

func (r *DefaultRewrite) RewriteObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) ast.Node {
	c := r.Self.Rewrite(combinator)
	vv := r.Self.RewriteAll(variables)
	ff := r.Self.RewriteAll(fields)
	ee := r.Self.RewriteAll(extends)
	return ast.NewObjectDecl(p, c, vv, ff, ee)
}

func (r *DefaultRewrite) RewriteValueDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	return ast.NewValueDecl(p, r.Self.Rewrite(combinator), r.Self.Rewrite(body))
}

func (r *DefaultRewrite) RewriteWrapper(p ast.Position, decls []ast.Node) ast.Node {
	return ast.NewWrapper(p, r.Self.RewriteAll(decls))
}
