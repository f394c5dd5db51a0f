package ast

import "github.com/kestrel-lang/kestrel/internal/diag"

// Compare orders two trees structurally, ignoring positions. The order is
// total: first by tag, then by payload, children left to right. Free
// variable computation and substitution depend on this being position
// blind.
func Compare(a0, a1 Node) int {
	t0, t1 := a0.Tag(), a1.Tag()
	if t0 < t1 {
		return -1
	}
	if t0 > t1 {
		return 1
	}
	switch n0 := a0.(type) {
	case *Empty:
		return 0
	case *Integer:
		return compareText(n0.Text, a1.(*Integer).Text)
	case *HexInteger:
		return compareText(n0.Text, a1.(*HexInteger).Text)
	case *Float:
		return compareText(n0.Text, a1.(*Float).Text)
	case *Character:
		return compareText(n0.Text, a1.(*Character).Text)
	case *Text:
		return compareText(n0.Text, a1.(*Text).Text)
	case *Variable:
		return compareText(n0.Name, a1.(*Variable).Name)
	case *Wildcard:
		return compareText(n0.Name, a1.(*Wildcard).Name)
	case *Combinator:
		n1 := a1.(*Combinator)
		if c := comparePath(n0.Path, n1.Path); c != 0 {
			return c
		}
		return compareText(n0.Name, n1.Name)
	case *Operator:
		n1 := a1.(*Operator)
		if c := comparePath(n0.Path, n1.Path); c != 0 {
			return c
		}
		return compareText(n0.Name, n1.Name)
	case *Tagged:
		n1 := a1.(*Tagged)
		return compareAll([]Node{n0.Pattern, n0.Tagger}, []Node{n1.Pattern, n1.Tagger})
	case *List:
		n1 := a1.(*List)
		if c := compareAll(n0.Elements, n1.Elements); c != 0 {
			return c
		}
		return compareOpt(n0.Tail, n1.Tail)
	case *Tuple:
		return compareAll(n0.Elements, a1.(*Tuple).Elements)
	case *Application:
		return compareAll(n0.Terms, a1.(*Application).Terms)
	case *Block:
		return compareAll(n0.Matches, a1.(*Block).Matches)
	case *Match:
		n1 := a1.(*Match)
		if c := compareAll(n0.Patterns, n1.Patterns); c != 0 {
			return c
		}
		if c := Compare(n0.Guard, n1.Guard); c != 0 {
			return c
		}
		return Compare(n0.Result, n1.Result)
	case *Try:
		n1 := a1.(*Try)
		return compareAll([]Node{n0.Body, n0.Handler}, []Node{n1.Body, n1.Handler})
	case *Throw:
		return Compare(n0.Expr, a1.(*Throw).Expr)
	case *Lambda:
		return Compare(n0.Clause, a1.(*Lambda).Clause)
	case *Let:
		n1 := a1.(*Let)
		if c := compareAll(n0.Patterns, n1.Patterns); c != 0 {
			return c
		}
		if c := Compare(n0.Rhs, n1.Rhs); c != 0 {
			return c
		}
		return Compare(n0.Body, n1.Body)
	case *If:
		n1 := a1.(*If)
		return compareAll([]Node{n0.Cond, n0.Then, n0.Else}, []Node{n1.Cond, n1.Then, n1.Else})
	case *Statement:
		n1 := a1.(*Statement)
		return compareAll([]Node{n0.First, n0.Rest}, []Node{n1.First, n1.Rest})
	case *Do:
		return Compare(n0.Expr, a1.(*Do).Expr)
	case *Import:
		return compareText(n0.File, a1.(*Import).File)
	case *Using:
		return comparePath(n0.Path, a1.(*Using).Path)
	case *NamespaceDecl:
		n1 := a1.(*NamespaceDecl)
		if c := comparePath(n0.Path, n1.Path); c != 0 {
			return c
		}
		return compareAll(n0.Decls, n1.Decls)
	case *DataDecl:
		return compareAll(n0.Combinators, a1.(*DataDecl).Combinators)
	case *Definition:
		n1 := a1.(*Definition)
		return compareAll([]Node{n0.Combinator, n0.Body}, []Node{n1.Combinator, n1.Body})
	case *OperatorDecl:
		n1 := a1.(*OperatorDecl)
		return compareAll([]Node{n0.Combinator, n0.Body}, []Node{n1.Combinator, n1.Body})
	case *ObjectDecl:
		n1 := a1.(*ObjectDecl)
		if c := Compare(n0.Combinator, n1.Combinator); c != 0 {
			return c
		}
		if c := compareAll(n0.Variables, n1.Variables); c != 0 {
			return c
		}
		if c := compareAll(n0.Fields, n1.Fields); c != 0 {
			return c
		}
		return compareAll(n0.Extends, n1.Extends)
	case *ValueDecl:
		n1 := a1.(*ValueDecl)
		return compareAll([]Node{n0.Combinator, n0.Body}, []Node{n1.Combinator, n1.Body})
	case *Wrapper:
		return compareAll(n0.Decls, a1.(*Wrapper).Decls)
	default:
		diag.Fatal("compare exhausted on %s", a0.Tag())
		return 0
	}
}

// Equal is structural equality ignoring positions.
func Equal(a0, a1 Node) bool {
	return Compare(a0, a1) == 0
}

func compareText(s0, s1 string) int {
	if s0 < s1 {
		return -1
	}
	if s0 > s1 {
		return 1
	}
	return 0
}

func comparePath(p0, p1 []string) int {
	if len(p0) != len(p1) {
		if len(p0) < len(p1) {
			return -1
		}
		return 1
	}
	for i := range p0 {
		if c := compareText(p0[i], p1[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareAll(aa0, aa1 []Node) int {
	if len(aa0) != len(aa1) {
		if len(aa0) < len(aa1) {
			return -1
		}
		return 1
	}
	for i := range aa0 {
		if c := Compare(aa0[i], aa1[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareOpt(a0, a1 Node) int {
	switch {
	case a0 == nil && a1 == nil:
		return 0
	case a0 == nil:
		return -1
	case a1 == nil:
		return 1
	default:
		return Compare(a0, a1)
	}
}
