// Package desugar lowers the surface language onto the minimal core the
// lift and emit stages understand: blocks of matches, applications,
// combinators, literals, try and tag. It is an ordered pipeline of
// small bottom-up rewrites; the order matters because several rewrites
// introduce constructs that later rewrites eliminate.
package desugar

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
)

// Desugar runs the full pipeline over an identified module.
func Desugar(a ast.Node) (out ast.Node, err error) {
	defer diag.Recover(&err)
	a = passCondition(a)
	a = passWildcard(a)
	a = passTuple(a)
	a = passList(a)
	a = passDo(a)
	a = passStatement(a)
	a = passLet(a)
	a = passLambda(a)
	a = passObject(a)
	a = passThrow(a)
	a = passTry(a)
	a = passLazyOp(a)
	a = passMonMin(a)
	return a, nil
}
