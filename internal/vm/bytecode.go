package vm

import (
	"fmt"
	"strings"
)

// Reg is a register number local to one definition's code.
type Reg uint32

// Label identifies a jump target before Relabel resolves it to an
// instruction index.
type Label uint32

// Opcode enumerates the instruction set of the register machine.
type Opcode int

const (
	// OpLabel is a pseudo instruction marking a jump target; Relabel
	// removes it.
	OpLabel Opcode = iota
	OpMov
	OpData
	OpNil
	OpArray
	OpConcatX
	OpSplit
	OpTakeX
	OpTest
	OpTag
	OpFail
	OpReturn
	OpSet
)

var opcodeNames = map[Opcode]string{
	OpLabel:   "label",
	OpMov:     "mov",
	OpData:    "data",
	OpNil:     "nil",
	OpArray:   "array",
	OpConcatX: "concatx",
	OpSplit:   "split",
	OpTakeX:   "takex",
	OpTest:    "test",
	OpTag:     "tag",
	OpFail:    "fail",
	OpReturn:  "return",
	OpSet:     "set",
}

func (o Opcode) String() string { return opcodeNames[o] }

// Instruction is one machine instruction. Operand use by opcode:
//
//	mov     X=dst Y=src
//	data    X=dst Data=constant index
//	nil     X=dst
//	array   X=dst Y=first Z=last          (pack register range, may be empty)
//	concatx X=dst Y=src Z=frame Off=offset
//	split   X=first Y=last Z=src
//	takex   X=first Y=last Z=frame Off=offset
//	test    X Y                            (equality, fall through to fail)
//	tag     X Y                            (head symbol equality)
//	fail    Label                          (jump target after relabeling)
//	return  X
//	set     X=thunk Y=index Z=src
type Instruction struct {
	Op    Opcode
	X     Reg
	Y     Reg
	Z     Reg
	Off   int
	Data  int
	Label Label
}

func (i Instruction) String() string {
	switch i.Op {
	case OpLabel:
		return fmt.Sprintf("L%d:", i.Label)
	case OpMov:
		return fmt.Sprintf("mov x%d, x%d", i.X, i.Y)
	case OpData:
		return fmt.Sprintf("data x%d, d%d", i.X, i.Data)
	case OpNil:
		return fmt.Sprintf("nil x%d", i.X)
	case OpArray:
		return fmt.Sprintf("array x%d, x%d, x%d", i.X, i.Y, i.Z)
	case OpConcatX:
		return fmt.Sprintf("concatx x%d, x%d, x%d, %d", i.X, i.Y, i.Z, i.Off)
	case OpSplit:
		return fmt.Sprintf("split x%d, x%d, x%d", i.X, i.Y, i.Z)
	case OpTakeX:
		return fmt.Sprintf("takex x%d, x%d, x%d, %d", i.X, i.Y, i.Z, i.Off)
	case OpTest:
		return fmt.Sprintf("test x%d, x%d", i.X, i.Y)
	case OpTag:
		return fmt.Sprintf("tag x%d, x%d", i.X, i.Y)
	case OpFail:
		return fmt.Sprintf("fail %d", i.Label)
	case OpReturn:
		return fmt.Sprintf("return x%d", i.X)
	case OpSet:
		return fmt.Sprintf("set x%d, x%d, x%d", i.X, i.Y, i.Z)
	default:
		return "unknown"
	}
}

// Bytecode is the compiled form of one definition: a code stream, its
// constant table, and the qualified name it is registered under.
type Bytecode struct {
	symbol
	Code []Instruction
	Data []Object
}

// NewBytecode builds a bytecode object for the combinator at path/name.
func NewBytecode(code []Instruction, data []Object, path []string, name string) *Bytecode {
	return &Bytecode{symbol{path, name}, code, data}
}

func (o *Bytecode) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", o.Qualified())
	for _, i := range o.Code {
		fmt.Fprintf(&b, "  %s\n", i)
	}
	return b.String()
}
