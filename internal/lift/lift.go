package lift

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// liftRewriter hoists every block that is not the direct body of a
// declaration to a fresh top-level definition and replaces the block by a
// reference to the new combinator. A declaration that sheds helpers turns
// into a wrapper holding the helpers followed by the rewritten original.
type liftRewriter struct {
	transform.DefaultRewrite
	scope   ast.Node
	counter int
	lifted  []ast.Node
}

func (r *liftRewriter) setScope(c ast.Node) {
	r.scope = c
	r.counter = 0
	r.lifted = nil
}

func (r *liftRewriter) tick() int {
	n := r.counter
	r.counter++
	return n
}

// freshCombinator derives a helper name from the enclosing declaration's
// combinator by appending a local segment and a counter.
func (r *liftRewriter) freshCombinator() ast.Node {
	suffix := fmt.Sprintf("%s%s%s%d", ast.PathSeparator, vm.LocalSegment, ast.PathSeparator, r.tick())
	switch c := r.scope.(type) {
	case *ast.Combinator:
		return ast.NewCombinator(c.Pos(), c.Path, c.Name+suffix)
	case *ast.Operator:
		return ast.NewOperator(c.Pos(), c.Path, c.Name+suffix)
	default:
		diag.FatalAt(r.scope.Pos().Diag(), "combinator expected")
		return nil
	}
}

func (r *liftRewriter) RewriteBlock(p ast.Position, matches []ast.Node) ast.Node {
	mm := r.Self.RewriteAll(matches)
	e := ast.NewBlock(p, mm...)
	c := r.freshCombinator()
	r.lifted = append(r.lifted, ast.NewDefinition(p, c, e))
	return c
}

// rewriteBody keeps a direct block body in place and only lifts the
// blocks inside its clauses.
func (r *liftRewriter) rewriteBody(body ast.Node) ast.Node {
	if block, ok := body.(*ast.Block); ok {
		mm := r.Self.RewriteAll(block.Matches)
		return ast.NewBlock(block.Pos(), mm...)
	}
	return r.Self.Rewrite(body)
}

func (r *liftRewriter) RewriteDefinition(p ast.Position, combinator, body ast.Node) ast.Node {
	r.setScope(combinator)
	e := r.rewriteBody(body)
	d := ast.NewDefinition(p, combinator, e)
	if len(r.lifted) == 0 {
		return d
	}
	return ast.NewWrapper(p, append(r.lifted, d))
}

func (r *liftRewriter) RewriteOperatorDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	r.setScope(combinator)
	e := r.rewriteBody(body)
	d := ast.NewOperatorDecl(p, combinator, e)
	if len(r.lifted) == 0 {
		return d
	}
	return ast.NewWrapper(p, append(r.lifted, d))
}

func (r *liftRewriter) RewriteValueDecl(p ast.Position, combinator, body ast.Node) ast.Node {
	r.setScope(combinator)
	e := r.rewriteBody(body)
	d := ast.NewValueDecl(p, combinator, e)
	if len(r.lifted) == 0 {
		return d
	}
	return ast.NewWrapper(p, append(r.lifted, d))
}

func passLift(a ast.Node) ast.Node {
	r := &liftRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}

// Lift runs the whole chain over a desugared module.
func Lift(a ast.Node) (out ast.Node, err error) {
	defer diag.Recover(&err)
	a = passEta(a)
	a = passDeapply(a)
	a = passLift(a)
	a = passRelambda(a)
	return a, nil
}
