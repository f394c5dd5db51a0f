package desugar

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/transform"
)

// wildcardRewriter replaces every `_` by a fresh variable so that later
// stages deal with binders only.
type wildcardRewriter struct {
	transform.DefaultRewrite
	tick int
}

func (r *wildcardRewriter) RewriteWildcard(p ast.Position, _ string) ast.Node {
	w := fmt.Sprintf("WILD%d", r.tick)
	r.tick++
	return ast.NewVariable(p, w)
}

func passWildcard(a ast.Node) ast.Node {
	r := &wildcardRewriter{}
	r.Self = r
	return r.Self.Rewrite(a)
}
