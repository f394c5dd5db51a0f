// Package emit lowers a lifted module onto the register machine: one pass
// registers the data combinators, a second generates a bytecode object
// per definition.
package emit

import (
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// Coder accumulates the code stream and constant table of one definition.
// Registers are handed out monotonically; a mark/restore pair lets the
// clauses of a block share the same register range.
type Coder struct {
	machine   *vm.Machine
	code      []vm.Instruction
	constants []vm.Object
	registers vm.Reg
	labels    vm.Label
}

func NewCoder(m *vm.Machine) *Coder {
	return &Coder{machine: m}
}

func (c *Coder) GenerateRegister() vm.Reg {
	r := c.registers
	c.registers++
	return r
}

// PeekRegister marks the current register count.
func (c *Coder) PeekRegister() vm.Reg {
	return c.registers
}

// RestoreRegister rolls the counter back to a previous mark.
func (c *Coder) RestoreRegister(r vm.Reg) {
	c.registers = r
}

func (c *Coder) GenerateLabel() vm.Label {
	l := c.labels
	c.labels++
	return l
}

// Constant appends an object to the definition's constant table and
// returns its index; equal objects are not shared.
func (c *Coder) Constant(o vm.Object) int {
	c.constants = append(c.constants, o)
	return len(c.constants) - 1
}

func (c *Coder) emit(i vm.Instruction) {
	c.code = append(c.code, i)
}

func (c *Coder) EmitMov(dst, src vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpMov, X: dst, Y: src})
}

func (c *Coder) EmitData(dst vm.Reg, index int) {
	c.emit(vm.Instruction{Op: vm.OpData, X: dst, Data: index})
}

func (c *Coder) EmitNil(dst vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpNil, X: dst})
}

func (c *Coder) EmitArray(dst, first, last vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpArray, X: dst, Y: first, Z: last})
}

func (c *Coder) EmitConcatX(dst, src, frame vm.Reg, off int) {
	c.emit(vm.Instruction{Op: vm.OpConcatX, X: dst, Y: src, Z: frame, Off: off})
}

func (c *Coder) EmitSplit(first, last, src vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpSplit, X: first, Y: last, Z: src})
}

func (c *Coder) EmitTakeX(first, last, frame vm.Reg, off int) {
	c.emit(vm.Instruction{Op: vm.OpTakeX, X: first, Y: last, Z: frame, Off: off})
}

func (c *Coder) EmitTest(r0, r1 vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpTest, X: r0, Y: r1})
}

func (c *Coder) EmitTag(r0, r1 vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpTag, X: r0, Y: r1})
}

func (c *Coder) EmitFail(l vm.Label) {
	c.emit(vm.Instruction{Op: vm.OpFail, Label: l})
}

func (c *Coder) EmitReturn(r vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpReturn, X: r})
}

func (c *Coder) EmitSet(thunk, index, src vm.Reg) {
	c.emit(vm.Instruction{Op: vm.OpSet, X: thunk, Y: index, Z: src})
}

func (c *Coder) EmitLabel(l vm.Label) {
	c.emit(vm.Instruction{Op: vm.OpLabel, Label: l})
}

// Relabel strips the label pseudo instructions and patches every fail to
// the index of the instruction its label preceded.
func (c *Coder) Relabel() {
	targets := map[vm.Label]int{}
	stripped := make([]vm.Instruction, 0, len(c.code))
	for _, i := range c.code {
		if i.Op == vm.OpLabel {
			targets[i.Label] = len(stripped)
			continue
		}
		stripped = append(stripped, i)
	}
	for n, i := range stripped {
		if i.Op == vm.OpFail {
			t, ok := targets[i.Label]
			if !ok {
				diag.Fatal("unresolved label %d", i.Label)
			}
			stripped[n].Label = vm.Label(t)
		}
	}
	c.code = stripped
}

func (c *Coder) Code() []vm.Instruction {
	return c.code
}

func (c *Coder) Data() []vm.Object {
	return c.constants
}

// Reset clears the coder for the next definition.
func (c *Coder) Reset() {
	c.code = nil
	c.constants = nil
	c.registers = 0
	c.labels = 0
}
