package vm

// dataBuiltins reduce to themselves; they serve as constructors and tags.
var dataBuiltins = []string{
	SymbolTrue,
	SymbolFalse,
	SymbolTuple,
	SymbolNil,
	SymbolCons,
}

// opaqueBuiltins are implemented by the runtime.
var opaqueBuiltins = []string{
	SymbolId,
	SymbolK,
	SymbolObject,
	SymbolExtend,
	SymbolThrow,
	SymbolPipe,
	SymbolAnd,
	SymbolOr,
	SymbolMonMin,
	"+", "-", "*", "/", "%",
	"==", "/=", "<", "<=", ">", ">=",
}

// RegisterBuiltins interns the builtin combinator set on the machine.
// The driver calls this before the semantic pass so that builtins resolve
// like any other declared combinator.
func RegisterBuiltins(m *Machine) {
	for _, n := range dataBuiltins {
		m.DefineData(NewData(SystemPath, n))
	}
	for _, n := range opaqueBuiltins {
		m.DefineData(NewOpaque(SystemPath, n))
	}
}
