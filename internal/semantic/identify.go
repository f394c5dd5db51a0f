package semantic

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

type identifyState int

const (
	stateUse identifyState = iota
	statePattern
	stateField
)

// identifyRewriter checks that every name has a binding, fully qualifies
// combinators and operators, renames every pattern binder to a fresh
// module-unique variable, and flattens namespaces into a single top-level
// wrapper of declarations.
type identifyRewriter struct {
	transform.DefaultRewrite
	state        identifyState
	scope        *Range
	namespace    []string
	declarations []ast.Node
	counter      int
}

func (r *identifyRewriter) freshVariable() string {
	v := fmt.Sprintf("V_%d", r.counter)
	r.counter++
	return v
}

func (r *identifyRewriter) declare(p ast.Position, name, qualified string) {
	if err := r.scope.Declare(name, qualified); err != nil {
		diag.Panic(diag.SemanticalError(p.Diag(), "redeclaration of %s", name))
	}
}

func (r *identifyRewriter) lookupQualified(p ast.Position, path []string, name string) string {
	var v string
	if len(path) == 0 {
		v = r.scope.LookupUses(name)
	} else {
		v = r.scope.LookupQualified(path, name)
	}
	if v == "" {
		diag.Panic(diag.SemanticalError(p.Diag(), "undeclared %s", ast.QualifiedName(path, name)))
	}
	return v
}

func (r *identifyRewriter) enterRange() {
	r.scope = r.scope.Enter()
}

func (r *identifyRewriter) leaveRange() {
	r.scope = r.scope.Leave()
}

func (r *identifyRewriter) pushDeclaration(d ast.Node) {
	r.declarations = append(r.declarations, d)
}

func (r *identifyRewriter) RewriteVariable(p ast.Position, name string) ast.Node {
	switch r.state {
	case stateUse:
		// the surface language does not set variables apart lexically: an
		// identifier in use position is a variable when a pattern bound
		// it and a combinator when a namespace in scope declares it
		if v := r.scope.LookupLocal(name); v != "" {
			return ast.NewVariable(p, v)
		}
		if q := r.scope.LookupUses(name); q != "" {
			return ast.NewCombinator(p, nil, q)
		}
		diag.Panic(diag.SemanticalError(p.Diag(), "undeclared %s", name))
		return nil
	case statePattern:
		// a data combinator in pattern position is a constructor to match,
		// not a binder
		if q := r.scope.LookupDataUses(name); q != "" {
			return ast.NewCombinator(p, nil, q)
		}
		fv := r.freshVariable()
		r.declare(p, name, fv)
		return ast.NewVariable(p, fv)
	default:
		diag.FatalAt(p.Diag(), "variable in field state")
		return nil
	}
}

func (r *identifyRewriter) RewriteCombinator(p ast.Position, path []string, name string) ast.Node {
	return ast.NewCombinator(p, nil, r.lookupQualified(p, path, name))
}

func (r *identifyRewriter) RewriteOperator(p ast.Position, path []string, name string) ast.Node {
	return ast.NewOperator(p, nil, r.lookupQualified(p, path, name))
}

func (r *identifyRewriter) RewriteMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) ast.Node {
	r.enterRange()
	r.state = statePattern
	pp := r.Self.RewriteAll(patterns)
	r.state = stateUse
	g := r.Self.Rewrite(guard)
	r.state = stateUse
	e := r.Self.Rewrite(result)
	r.leaveRange()
	return ast.NewMatch(p, pp, g, e)
}

func (r *identifyRewriter) RewriteLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node {
	r.patternCheck(p, "let")
	r.state = stateUse
	rhs0 := r.Self.Rewrite(rhs)
	r.enterRange()
	r.state = statePattern
	pp := r.Self.RewriteAll(patterns)
	r.state = stateUse
	b := r.Self.Rewrite(body)
	r.leaveRange()
	return ast.NewLet(p, pp, rhs0, b)
}

func (r *identifyRewriter) RewriteTagged(p ast.Position, pattern, tagger ast.Node) ast.Node {
	if pattern.Tag() != ast.TagVariable && pattern.Tag() != ast.TagWildcard {
		diag.Panic(diag.IdentificationError(p.Diag(), "variable expected in tagged pattern"))
	}
	r.state = statePattern
	e := r.Self.Rewrite(pattern)
	r.state = stateUse
	t := r.Self.Rewrite(tagger)
	r.state = statePattern
	return ast.NewTagged(p, e, t)
}

// patternCheck rejects expression-only constructs in pattern position.
func (r *identifyRewriter) patternCheck(p ast.Position, what string) {
	if r.state == statePattern {
		diag.Panic(diag.IdentificationError(p.Diag(), "illegal %s in pattern", what))
	}
}

func (r *identifyRewriter) RewriteBlock(p ast.Position, matches []ast.Node) ast.Node {
	r.patternCheck(p, "block")
	return r.DefaultRewrite.RewriteBlock(p, matches)
}

func (r *identifyRewriter) RewriteLambda(p ast.Position, clause ast.Node) ast.Node {
	r.patternCheck(p, "lambda")
	return r.DefaultRewrite.RewriteLambda(p, clause)
}

func (r *identifyRewriter) RewriteIf(p ast.Position, cond, then, els ast.Node) ast.Node {
	r.patternCheck(p, "conditional")
	return r.DefaultRewrite.RewriteIf(p, cond, then, els)
}

func (r *identifyRewriter) RewriteTry(p ast.Position, body, handler ast.Node) ast.Node {
	r.patternCheck(p, "try")
	return r.DefaultRewrite.RewriteTry(p, body, handler)
}

func (r *identifyRewriter) RewriteThrow(p ast.Position, expr ast.Node) ast.Node {
	r.patternCheck(p, "throw")
	return r.DefaultRewrite.RewriteThrow(p, expr)
}

func (r *identifyRewriter) RewriteStatement(p ast.Position, first, rest ast.Node) ast.Node {
	r.patternCheck(p, "statement")
	return r.DefaultRewrite.RewriteStatement(p, first, rest)
}

func (r *identifyRewriter) RewriteUsing(p ast.Position, path []string) ast.Node {
	r.scope.AddUsing(path)
	return ast.NewUsing(p, path)
}

func (r *identifyRewriter) RewriteDataDecl(p ast.Position, combinators []ast.Node) ast.Node {
	if r.state == stateField {
		r.state = stateUse
		cc := r.Self.RewriteAll(combinators)
		r.state = stateField
		return ast.NewDataDecl(p, cc)
	}
	r.state = stateUse
	cc := r.Self.RewriteAll(combinators)
	a := ast.NewDataDecl(p, cc)
	r.pushDeclaration(a)
	return a
}

func (r *identifyRewriter) RewriteDefinition(p ast.Position, combinator, body ast.Node) ast.Node {
	if r.state == stateField {
		r.state = stateUse
		c := r.Self.Rewrite(combinator)
		e := r.Self.Rewrite(body)
		r.state = stateField
		return ast.NewDefinition(p, c, e)
	}
	c := r.Self.Rewrite(combinator)
	e := r.Self.Rewrite(body)
	a := ast.NewDefinition(p, c, e)
	r.pushDeclaration(a)
	r.state = stateUse
	return a
}

func (r *identifyRewriter) RewriteValueDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	r.state = stateUse
	c := r.Self.Rewrite(combinator)
	e := r.Self.Rewrite(body)
	a := ast.NewValueDecl(p, c, e)
	r.pushDeclaration(a)
	return a
}

func (r *identifyRewriter) RewriteOperatorDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	r.state = stateUse
	c := r.Self.Rewrite(combinator)
	e := r.Self.Rewrite(body)
	a := ast.NewOperatorDecl(p, c, e)
	r.pushDeclaration(a)
	return a
}

func (r *identifyRewriter) RewriteObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) ast.Node {
	r.state = stateUse
	c := r.Self.Rewrite(combinator)
	r.enterRange()
	r.state = statePattern
	vv := r.Self.RewriteAll(variables)
	r.state = stateUse
	ee := r.Self.RewriteAll(extends)
	r.state = stateField
	ff := r.Self.RewriteAll(fields)
	r.leaveRange()
	a := ast.NewObjectDecl(p, c, vv, ff, ee)
	r.pushDeclaration(a)
	r.state = stateUse
	return a
}

func (r *identifyRewriter) RewriteNamespaceDecl(p ast.Position, path []string, decls []ast.Node) ast.Node {
	saved := r.namespace
	full := concat(saved, path)
	r.namespace = full
	r.enterRange()
	r.scope.AddUsing(full)
	dd := r.Self.RewriteAll(decls)
	r.leaveRange()
	r.namespace = saved
	return ast.NewNamespaceDecl(p, path, dd)
}

func (r *identifyRewriter) RewriteWrapper(p ast.Position, decls []ast.Node) ast.Node {
	r.Self.RewriteAll(decls)
	return ast.NewWrapper(p, r.declarations)
}

// Identify rewrites a declared module into its flattened, fully qualified
// form. Every pattern binder ends up with a module-unique name, and no
// namespace, import or using node survives.
func Identify(env *Namespace, a ast.Node) (out ast.Node, err error) {
	defer diag.Recover(&err)
	r := &identifyRewriter{state: stateUse, scope: NewRange(env)}
	r.Self = r
	// object fields live in their shared implicit namespace; bring it in
	// scope when any module declared one
	r.scope.AddUsing([]string{fieldNamespace})
	return r.Self.Rewrite(a), nil
}
