package transform

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
)

// Visitor is the hook set of the read-only walker.
type Visitor interface {
	Visit(a ast.Node)
	VisitAll(aa []ast.Node)

	VisitInteger(p ast.Position, text string)
	VisitHexInteger(p ast.Position, text string)
	VisitFloat(p ast.Position, text string)
	VisitCharacter(p ast.Position, text string)
	VisitText(p ast.Position, text string)
	VisitVariable(p ast.Position, name string)
	VisitWildcard(p ast.Position, name string)
	VisitCombinator(p ast.Position, path []string, name string)
	VisitOperator(p ast.Position, path []string, name string)
	VisitTagged(p ast.Position, pattern, tagger ast.Node)
	VisitList(p ast.Position, elements []ast.Node, tail ast.Node)
	VisitTuple(p ast.Position, elements []ast.Node)
	VisitApplication(p ast.Position, terms []ast.Node)
	VisitBlock(p ast.Position, matches []ast.Node)
	VisitMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node)
	VisitTry(p ast.Position, body, handler ast.Node)
	VisitThrow(p ast.Position, expr ast.Node)
	VisitLambda(p ast.Position, clause ast.Node)
	VisitLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node)
	VisitIf(p ast.Position, cond, then, els ast.Node)
	VisitStatement(p ast.Position, first, rest ast.Node)
	VisitDo(p ast.Position, expr ast.Node)
	VisitImport(p ast.Position, file string)
	VisitUsing(p ast.Position, path []string)
	VisitNamespaceDecl(p ast.Position, path []string, decls []ast.Node)
	VisitDataDecl(p ast.Position, combinators []ast.Node)
	VisitDefinition(p ast.Position, combinator, body ast.Node)
	VisitOperatorDecl(p ast.Position, combinator, body ast.Node)
	VisitObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node)
	VisitValueDecl(p ast.Position, combinator, body ast.Node)
	VisitWrapper(p ast.Position, decls []ast.Node)
}

// DefaultVisit is the default Visitor: every hook descends into the children and
// leaves carry no behavior.
type DefaultVisit struct {
	Self Visitor
}

func (v *DefaultVisit) Visit(a ast.Node) {
	switch n := a.(type) {
	case *ast.Empty:
	case *ast.Integer:
		v.Self.VisitInteger(n.Pos(), n.Text)
	case *ast.HexInteger:
		v.Self.VisitHexInteger(n.Pos(), n.Text)
	case *ast.Float:
		v.Self.VisitFloat(n.Pos(), n.Text)
	case *ast.Character:
		v.Self.VisitCharacter(n.Pos(), n.Text)
	case *ast.Text:
		v.Self.VisitText(n.Pos(), n.Text)
	case *ast.Variable:
		v.Self.VisitVariable(n.Pos(), n.Name)
	case *ast.Wildcard:
		v.Self.VisitWildcard(n.Pos(), n.Name)
	case *ast.Combinator:
		v.Self.VisitCombinator(n.Pos(), n.Path, n.Name)
	case *ast.Operator:
		v.Self.VisitOperator(n.Pos(), n.Path, n.Name)
	case *ast.Tagged:
		v.Self.VisitTagged(n.Pos(), n.Pattern, n.Tagger)
	case *ast.List:
		v.Self.VisitList(n.Pos(), n.Elements, n.Tail)
	case *ast.Tuple:
		v.Self.VisitTuple(n.Pos(), n.Elements)
	case *ast.Application:
		v.Self.VisitApplication(n.Pos(), n.Terms)
	case *ast.Block:
		v.Self.VisitBlock(n.Pos(), n.Matches)
	case *ast.Match:
		v.Self.VisitMatch(n.Pos(), n.Patterns, n.Guard, n.Result)
	case *ast.Try:
		v.Self.VisitTry(n.Pos(), n.Body, n.Handler)
	case *ast.Throw:
		v.Self.VisitThrow(n.Pos(), n.Expr)
	case *ast.Lambda:
		v.Self.VisitLambda(n.Pos(), n.Clause)
	case *ast.Let:
		v.Self.VisitLet(n.Pos(), n.Patterns, n.Rhs, n.Body)
	case *ast.If:
		v.Self.VisitIf(n.Pos(), n.Cond, n.Then, n.Else)
	case *ast.Statement:
		v.Self.VisitStatement(n.Pos(), n.First, n.Rest)
	case *ast.Do:
		v.Self.VisitDo(n.Pos(), n.Expr)
	case *ast.Import:
		v.Self.VisitImport(n.Pos(), n.File)
	case *ast.Using:
		v.Self.VisitUsing(n.Pos(), n.Path)
	case *ast.NamespaceDecl:
		v.Self.VisitNamespaceDecl(n.Pos(), n.Path, n.Decls)
	case *ast.DataDecl:
		v.Self.VisitDataDecl(n.Pos(), n.Combinators)
	case *ast.Definition:
		v.Self.VisitDefinition(n.Pos(), n.Combinator, n.Body)
	case *ast.OperatorDecl:
		v.Self.VisitOperatorDecl(n.Pos(), n.Combinator, n.Body)
	case *ast.ObjectDecl:
		v.Self.VisitObjectDecl(n.Pos(), n.Combinator, n.Variables, n.Fields, n.Extends)
	case *ast.ValueDecl:
		v.Self.VisitValueDecl(n.Pos(), n.Combinator, n.Body)
	case *ast.Wrapper:
		v.Self.VisitWrapper(n.Pos(), n.Decls)
	default:
		diag.Fatal("visit exhausted on %s", a.Tag())
	}
}

func (v *DefaultVisit) VisitAll(aa []ast.Node) {
	for _, a := range aa {
		v.Self.Visit(a)
	}
}

func (v *DefaultVisit) VisitInteger(p ast.Position, text string)    {}
func (v *DefaultVisit) VisitHexInteger(p ast.Position, text string) {}
func (v *DefaultVisit) VisitFloat(p ast.Position, text string)      {}
func (v *DefaultVisit) VisitCharacter(p ast.Position, text string)  {}
func (v *DefaultVisit) VisitText(p ast.Position, text string)       {}
func (v *DefaultVisit) VisitVariable(p ast.Position, name string)   {}
func (v *DefaultVisit) VisitWildcard(p ast.Position, name string)   {}

func (v *DefaultVisit) VisitCombinator(p ast.Position, path []string, name string) {}
func (v *DefaultVisit) VisitOperator(p ast.Position, path []string, name string)   {}

func (v *DefaultVisit) VisitTagged(p ast.Position, pattern, tagger ast.Node) {
	v.Self.Visit(pattern)
	v.Self.Visit(tagger)
}

func (v *DefaultVisit) VisitList(p ast.Position, elements []ast.Node, tail ast.Node) {
	v.Self.VisitAll(elements)
	if tail != nil {
		v.Self.Visit(tail)
	}
}

func (v *DefaultVisit) VisitTuple(p ast.Position, elements []ast.Node) {
	v.Self.VisitAll(elements)
}

func (v *DefaultVisit) VisitApplication(p ast.Position, terms []ast.Node) {
	v.Self.VisitAll(terms)
}

func (v *DefaultVisit) VisitBlock(p ast.Position, matches []ast.Node) {
	v.Self.VisitAll(matches)
}

func (v *DefaultVisit) VisitMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) {
	v.Self.VisitAll(patterns)
	v.Self.Visit(guard)
	v.Self.Visit(result)
}

func (v *DefaultVisit) VisitTry(p ast.Position, body, handler ast.Node) {
	v.Self.Visit(body)
	v.Self.Visit(handler)
}

func (v *DefaultVisit) VisitThrow(p ast.Position, expr ast.Node) {
	v.Self.Visit(expr)
}

func (v *DefaultVisit) VisitLambda(p ast.Position, clause ast.Node) {
	v.Self.Visit(clause)
}

func (v *DefaultVisit) VisitLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) {
	v.Self.VisitAll(patterns)
	v.Self.Visit(rhs)
	v.Self.Visit(body)
}

func (v *DefaultVisit) VisitIf(p ast.Position, cond, then, els ast.Node) {
	v.Self.Visit(cond)
	v.Self.Visit(then)
	v.Self.Visit(els)
}

func (v *DefaultVisit) VisitStatement(p ast.Position, first, rest ast.Node) {
	v.Self.Visit(first)
	v.Self.Visit(rest)
}

func (v *DefaultVisit) VisitDo(p ast.Position, expr ast.Node) {
	v.Self.Visit(expr)
}

func (v *DefaultVisit) VisitImport(p ast.Position, file string) {}
func (v *DefaultVisit) VisitUsing(p ast.Position, path []string) {}

func (v *DefaultVisit) VisitNamespaceDecl(p ast.Position, path []string, decls []ast.Node) {
	v.Self.VisitAll(decls)
}

func (v *DefaultVisit) VisitDataDecl(p ast.Position, combinators []ast.Node) {
	v.Self.VisitAll(combinators)
}

func (v *DefaultVisit) VisitDefinition(p ast.Position, combinator, body ast.Node) {
	v.Self.Visit(combinator)
	v.Self.Visit(body)
}

func (v *DefaultVisit) VisitOperatorDecl(p ast.Position, combinator, body ast.Node) {
	v.Self.Visit(combinator)
	v.Self.Visit(body)
}

func (v *DefaultVisit) VisitObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) {
	v.Self.Visit(combinator)
	v.Self.VisitAll(variables)
	v.Self.VisitAll(fields)
	v.Self.VisitAll(extends)
}

func (v *DefaultVisit) VisitValueDecl(p ast.Position, combinator, body ast.Node) {
	v.Self.Visit(combinator)
	v.Self.Visit(body)
}

func (v *DefaultVisit) VisitWrapper(p ast.Position, decls []ast.Node) {
	v.Self.VisitAll(decls)
}
