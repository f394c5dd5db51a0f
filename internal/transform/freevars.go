package transform

import (
	"sort"

	"github.com/kestrel-lang/kestrel/internal/ast"
)

// Occurs reports whether a subtree structurally equal to term occurs
// anywhere inside tree. Equality ignores positions.
type occursVisitor struct {
	DefaultVisit
	term  ast.Node
	found bool
}

func (o *occursVisitor) Visit(a ast.Node) {
	if o.found {
		return
	}
	if ast.Equal(o.term, a) {
		o.found = true
		return
	}
	o.DefaultVisit.Visit(a)
}

func Occurs(term, tree ast.Node) bool {
	o := &occursVisitor{}
	o.Self = o
	o.term = term
	o.DefaultVisit.Visit(tree)
	return o.found || ast.Equal(term, tree)
}

// Substitute replaces every occurrence of source by target, except under a
// match or let whose patterns bind source.
type substituteRewriter struct {
	DefaultRewrite
	source ast.Node
	target ast.Node
}

func (s *substituteRewriter) Rewrite(a ast.Node) ast.Node {
	if ast.Equal(a, s.source) {
		return s.target
	}
	return s.DefaultRewrite.Rewrite(a)
}

func (s *substituteRewriter) RewriteMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) ast.Node {
	for _, m := range patterns {
		if Occurs(s.source, m) {
			return ast.NewMatch(p, patterns, guard, result)
		}
	}
	return ast.NewMatch(p, patterns, s.Self.Rewrite(guard), s.Self.Rewrite(result))
}

func (s *substituteRewriter) RewriteLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) ast.Node {
	for _, m := range patterns {
		if Occurs(s.source, m) {
			return ast.NewLet(p, patterns, rhs, body)
		}
	}
	return ast.NewLet(p, patterns, s.Self.Rewrite(rhs), s.Self.Rewrite(body))
}

func Substitute(term, source, target ast.Node) ast.Node {
	s := &substituteRewriter{}
	s.Self = s
	s.source = source
	s.target = target
	return s.Self.Rewrite(term)
}

// FreeVars computes the free variables of a tree in a deterministic order
// (sorted by name). Match and let patterns bind; everything else is a use.
type freeVarsVisitor struct {
	DefaultVisit
	removing bool
	vars     map[string]*ast.Variable
}

func (f *freeVarsVisitor) VisitVariable(p ast.Position, name string) {
	if f.removing {
		delete(f.vars, name)
	} else if _, ok := f.vars[name]; !ok {
		f.vars[name] = ast.NewVariable(p, name)
	}
}

func (f *freeVarsVisitor) VisitMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) {
	f.Self.Visit(guard)
	f.Self.Visit(result)
	f.removing = true
	f.Self.VisitAll(patterns)
	f.removing = false
}

func (f *freeVarsVisitor) VisitLet(p ast.Position, patterns []ast.Node, rhs, body ast.Node) {
	f.Self.Visit(rhs)
	f.Self.Visit(body)
	f.removing = true
	f.Self.VisitAll(patterns)
	f.removing = false
}

func FreeVars(tree ast.Node) []ast.Node {
	f := &freeVarsVisitor{vars: map[string]*ast.Variable{}}
	f.Self = f
	f.Self.Visit(tree)
	names := make([]string, 0, len(f.vars))
	for n := range f.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]ast.Node, 0, len(names))
	for _, n := range names {
		out = append(out, f.vars[n])
	}
	return out
}
