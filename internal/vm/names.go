// Package vm holds the compiler's contract with the runtime: the object
// kinds the emitter produces, the machine registry it registers them
// with, and the names of the builtin combinators the desugared core
// leans on.
package vm

import "github.com/kestrel-lang/kestrel/internal/ast"

// NamespaceSystem is the namespace the builtin combinators live in.
const NamespaceSystem = "System"

// Builtin combinator names referenced by the desugar and lift chains.
const (
	SymbolTrue   = "true"
	SymbolFalse  = "false"
	SymbolTuple  = "tuple"
	SymbolNil    = "nil"
	SymbolCons   = "cons"
	SymbolId     = "id"
	SymbolK      = "k"
	SymbolObject = "object"
	SymbolExtend = "extend"
	SymbolThrow  = "throw"

	SymbolPipe   = "|>"
	SymbolAnd    = "&&"
	SymbolOr     = "||"
	SymbolMonMin = "!-"
)

// SystemPath is the path of the System namespace.
var SystemPath = []string{NamespaceSystem}

// SystemName renders the qualified name of a System builtin.
func SystemName(name string) string {
	return ast.QualifiedName(SystemPath, name)
}

// LocalSegment is appended to a definition's path when lifting hoists one
// of its blocks to a fresh top-level combinator.
const LocalSegment = "local"
