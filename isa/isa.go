// Package isa supplies a subset of the 8051 instruction set: data moves,
// arithmetic and logic on the accumulator, bit operations, jumps, calls
// and the stack. Opcodes outside the subset are left to the core's
// reserved-opcode handler.
package isa

import (
	"github.com/ezrec/emu8051/cpu"
)

// Subset is the instruction set table.
type Subset struct {
	ops [256]cpu.Operation
	dec [256]cpu.Decoder
}

var _ cpu.InstructionSet = (*Subset)(nil)

// entry describes one opcode: its semantics, byte length and assembly format.
type entry struct {
	op     cpu.Operation
	length int
	format string
}

// NewSubset returns the instruction set table.
func NewSubset() (is *Subset) {
	is = &Subset{}

	for opcode, ent := range opcodes() {
		is.ops[opcode] = ent.op
		is.dec[opcode] = decoder(ent.length, ent.format)
	}

	return
}

// Operation returns the operation for an opcode, or nil if not implemented.
func (is *Subset) Operation(opcode byte) cpu.Operation {
	return is.ops[opcode]
}

// Decoder returns the disassembler for an opcode, or nil if not implemented.
func (is *Subset) Decoder(opcode byte) cpu.Decoder {
	return is.dec[opcode]
}

// Implemented returns true if the opcode is part of the subset.
func (is *Subset) Implemented(opcode byte) bool {
	return is.ops[opcode] != nil
}

// opcodes builds the opcode table.
func opcodes() (table map[byte]entry) {
	table = map[byte]entry{
		0x00: {opNop, 1, "nop"},
		0x02: {opLjmp, 3, "ljmp %a"},
		0x03: {opRrA, 1, "rr a"},
		0x04: {opIncA, 1, "inc a"},
		0x05: {opIncDirect, 2, "inc %d"},
		0x10: {opJbc, 3, "jbc %b, %r"},
		0x12: {opLcall, 3, "lcall %a"},
		0x14: {opDecA, 1, "dec a"},
		0x15: {opDecDirect, 2, "dec %d"},
		0x20: {opJb, 3, "jb %b, %r"},
		0x22: {opRet, 1, "ret"},
		0x23: {opRlA, 1, "rl a"},
		0x24: {opAddImm, 2, "add a, #%i"},
		0x25: {opAddDirect, 2, "add a, %d"},
		0x30: {opJnb, 3, "jnb %b, %r"},
		0x32: {opReti, 1, "reti"},
		0x34: {opAddcImm, 2, "addc a, #%i"},
		0x40: {opJc, 2, "jc %r"},
		0x42: {logicDirectA(orl), 2, "orl %d, a"},
		0x43: {logicDirectImm(orl), 3, "orl %d, #%i"},
		0x44: {logicAImm(orl), 2, "orl a, #%i"},
		0x50: {opJnc, 2, "jnc %r"},
		0x52: {logicDirectA(anl), 2, "anl %d, a"},
		0x53: {logicDirectImm(anl), 3, "anl %d, #%i"},
		0x54: {logicAImm(anl), 2, "anl a, #%i"},
		0x60: {opJz, 2, "jz %r"},
		0x62: {logicDirectA(xrl), 2, "xrl %d, a"},
		0x63: {logicDirectImm(xrl), 3, "xrl %d, #%i"},
		0x64: {logicAImm(xrl), 2, "xrl a, #%i"},
		0x70: {opJnz, 2, "jnz %r"},
		0x74: {opMovAImm, 2, "mov a, #%i"},
		0x75: {opMovDirectImm, 3, "mov %d, #%i"},
		0x80: {opSjmp, 2, "sjmp %r"},
		0x85: {opMovDirectDirect, 3, "mov %D, %d"},
		0x90: {opMovDptrImm, 3, "mov dptr, #%a"},
		0x94: {opSubbImm, 2, "subb a, #%i"},
		0xA3: {opIncDptr, 1, "inc dptr"},
		0xB2: {opCplBit, 2, "cpl %b"},
		0xB3: {opCplC, 1, "cpl c"},
		0xB4: {opCjneImm, 3, "cjne a, #%i, %r"},
		0xC0: {opPush, 2, "push %d"},
		0xC2: {opClrBit, 2, "clr %b"},
		0xC3: {opClrC, 1, "clr c"},
		0xC4: {opSwapA, 1, "swap a"},
		0xD0: {opPop, 2, "pop %d"},
		0xD2: {opSetbBit, 2, "setb %b"},
		0xD3: {opSetbC, 1, "setb c"},
		0xD5: {opDjnzDirect, 3, "djnz %d, %r"},
		0xE0: {opMovxADptr, 1, "movx a, @dptr"},
		0xE4: {opClrA, 1, "clr a"},
		0xE5: {opMovADirect, 2, "mov a, %d"},
		0xF0: {opMovxDptrA, 1, "movx @dptr, a"},
		0xF4: {opCplA, 1, "cpl a"},
		0xF5: {opMovDirectA, 2, "mov %d, a"},
	}

	// @Ri forms
	for n := range byte(2) {
		table[0x06+n] = entry{opIncIndirect, 1, "inc %@"}
		table[0x16+n] = entry{opDecIndirect, 1, "dec %@"}
		table[0x76+n] = entry{opMovIndirectImm, 2, "mov %@, #%i"}
		table[0xE6+n] = entry{opMovAIndirect, 1, "mov a, %@"}
		table[0xF6+n] = entry{opMovIndirectA, 1, "mov %@, a"}
	}

	// Rn forms
	for n := range byte(8) {
		table[0x08+n] = entry{opIncReg, 1, "inc %n"}
		table[0x18+n] = entry{opDecReg, 1, "dec %n"}
		table[0x28+n] = entry{opAddReg, 1, "add a, %n"}
		table[0x78+n] = entry{opMovRegImm, 2, "mov %n, #%i"}
		table[0xD8+n] = entry{opDjnzReg, 2, "djnz %n, %r"}
		table[0xE8+n] = entry{opMovAReg, 1, "mov a, %n"}
		table[0xF8+n] = entry{opMovRegA, 1, "mov %n, a"}
	}

	return
}
