package semantic

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// fieldNamespace is the implicit namespace shared by all object fields.
const fieldNamespace = "OO"

// declareVisitor walks the module and records every declared combinator in
// the namespace tree, qualified by the namespace prefix in effect.
type declareVisitor struct {
	transform.DefaultVisit
	spaces         *Namespace
	qualifications []string
	field          bool
	data           bool
}

func concat(qq0, qq1 []string) []string {
	qq := make([]string, 0, len(qq0)+len(qq1))
	qq = append(qq, qq0...)
	qq = append(qq, qq1...)
	return qq
}

func (d *declareVisitor) VisitCombinator(p ast.Position, path []string, name string) {
	if d.field {
		nn := concat([]string{fieldNamespace}, path)
		d.spaces.DeclareImplicit(nn, name, ast.QualifiedName(nn, name))
		return
	}
	nn := concat(d.qualifications, path)
	q := ast.QualifiedName(nn, name)
	var err error
	if d.data {
		err = d.spaces.DeclareData(nn, name, q)
	} else {
		err = d.spaces.Declare(nn, name, q)
	}
	if err != nil {
		diag.Panic(diag.SemanticalError(p.Diag(), "redeclaration of %s", name))
	}
}

func (d *declareVisitor) VisitOperator(p ast.Position, path []string, name string) {
	d.VisitCombinator(p, path, name)
}

func (d *declareVisitor) VisitDataDecl(p ast.Position, combinators []ast.Node) {
	if d.field {
		// an object field declared as data is a (name, value) pair; only
		// the name declares
		d.Self.Visit(combinators[0])
		return
	}
	d.data = true
	d.Self.VisitAll(combinators)
	d.data = false
}

func (d *declareVisitor) VisitDefinition(p ast.Position, combinator, body ast.Node) {
	d.Self.Visit(combinator)
}

func (d *declareVisitor) VisitOperatorDecl(p ast.Position, combinator, body ast.Node) {
	d.Self.Visit(combinator)
}

func (d *declareVisitor) VisitValueDecl(p ast.Position, combinator, body ast.Node) {
	d.Self.Visit(combinator)
}

func (d *declareVisitor) VisitObjectDecl(p ast.Position, combinator ast.Node, variables, fields, extends []ast.Node) {
	d.Self.Visit(combinator)
	d.field = true
	d.Self.VisitAll(fields)
	d.field = false
}

func (d *declareVisitor) VisitNamespaceDecl(p ast.Position, path []string, decls []ast.Node) {
	saved := d.qualifications
	d.qualifications = concat(saved, path)
	d.Self.VisitAll(decls)
	d.qualifications = saved
}

// Declare records every declaration of the module in env. The first
// duplicate global declaration aborts with a semantical error.
func Declare(env *Namespace, a ast.Node) (err error) {
	defer diag.Recover(&err)
	d := &declareVisitor{spaces: env}
	d.Self = d
	d.Self.Visit(a)
	return nil
}
