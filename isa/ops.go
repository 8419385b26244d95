package isa

import (
	"github.com/ezrec/emu8051/cpu"
)

// Operations return the number of ticks the instruction takes.

func imm(mcu *cpu.Cpu, n int) byte {
	return mcu.ReadCode(mcu.PC + n)
}

// jump adds a relative offset to the address of the next instruction.
func jump(mcu *cpu.Cpu, length int, offset byte) {
	mcu.PC = (mcu.PC + length + int(int8(offset))) & 0xffff
}

func branch(mcu *cpu.Cpu, length int, taken bool) int {
	if taken {
		jump(mcu, length, imm(mcu, length-1))
	} else {
		mcu.PC += length
	}
	return 2
}

func reg(mcu *cpu.Cpu) int {
	return int(mcu.ReadCode(mcu.PC) & 7)
}

// indirect returns the address held in @R0 or @R1.
func indirect(mcu *cpu.Cpu) int {
	return int(mcu.Reg(int(mcu.ReadCode(mcu.PC) & 1)))
}

func opNop(mcu *cpu.Cpu) int {
	mcu.PC++
	return 1
}

func opLjmp(mcu *cpu.Cpu) int {
	mcu.PC = int(imm(mcu, 1))<<8 | int(imm(mcu, 2))
	return 2
}

func opSjmp(mcu *cpu.Cpu) int {
	jump(mcu, 2, imm(mcu, 1))
	return 2
}

func opLcall(mcu *cpu.Cpu) int {
	ret := (mcu.PC + 3) & 0xffff
	mcu.Push(byte(ret))
	mcu.Push(byte(ret >> 8))
	mcu.PC = int(imm(mcu, 1))<<8 | int(imm(mcu, 2))
	return 2
}

func opRet(mcu *cpu.Cpu) int {
	hi := mcu.Pop()
	lo := mcu.Pop()
	mcu.PC = int(hi)<<8 | int(lo)
	return 2
}

// opReti checks the state against the interrupt entry snapshot before
// returning.
func opReti(mcu *cpu.Cpu) int {
	mcu.ReturnFromInterrupt()
	return opRet(mcu)
}

func opJc(mcu *cpu.Cpu) int {
	return branch(mcu, 2, mcu.Carry())
}

func opJnc(mcu *cpu.Cpu) int {
	return branch(mcu, 2, !mcu.Carry())
}

func opJz(mcu *cpu.Cpu) int {
	return branch(mcu, 2, mcu.Acc() == 0)
}

func opJnz(mcu *cpu.Cpu) int {
	return branch(mcu, 2, mcu.Acc() != 0)
}

func opJb(mcu *cpu.Cpu) int {
	return branch(mcu, 3, mcu.ReadBit(int(imm(mcu, 1))))
}

func opJnb(mcu *cpu.Cpu) int {
	return branch(mcu, 3, !mcu.ReadBit(int(imm(mcu, 1))))
}

func opJbc(mcu *cpu.Cpu) int {
	bit := int(imm(mcu, 1))
	set := latchBit(mcu, bit)
	if set {
		mcu.WriteBit(bit, false)
	}
	return branch(mcu, 3, set)
}

func opCjneImm(mcu *cpu.Cpu) int {
	value := imm(mcu, 1)
	acc := mcu.Acc()
	mcu.SetCarry(acc < value)
	return branch(mcu, 3, acc != value)
}

func opDjnzReg(mcu *cpu.Cpu) int {
	n := reg(mcu)
	value := mcu.Reg(n) - 1
	mcu.SetReg(n, value)
	return branch(mcu, 2, value != 0)
}

func opDjnzDirect(mcu *cpu.Cpu) int {
	addr := int(imm(mcu, 1))
	value := mcu.ReadDirect(addr) - 1
	mcu.WriteDirect(addr, value)
	return branch(mcu, 3, value != 0)
}

func opMovAImm(mcu *cpu.Cpu) int {
	mcu.SetAcc(imm(mcu, 1))
	mcu.PC += 2
	return 1
}

func opMovADirect(mcu *cpu.Cpu) int {
	addr := int(imm(mcu, 1))
	if addr == cpu.REG_ACC+0x80 {
		mcu.Report(cpu.EXCEPTION_ACC_TO_A)
	}
	mcu.SetAcc(mcu.ReadDirect(addr))
	mcu.PC += 2
	return 1
}

func opMovDirectA(mcu *cpu.Cpu) int {
	mcu.WriteDirect(int(imm(mcu, 1)), mcu.Acc())
	mcu.PC += 2
	return 1
}

func opMovDirectImm(mcu *cpu.Cpu) int {
	mcu.WriteDirect(int(imm(mcu, 1)), imm(mcu, 2))
	mcu.PC += 3
	return 2
}

// opMovDirectDirect encodes the source before the destination.
func opMovDirectDirect(mcu *cpu.Cpu) int {
	mcu.WriteDirect(int(imm(mcu, 2)), mcu.ReadDirect(int(imm(mcu, 1))))
	mcu.PC += 3
	return 2
}

func opMovAReg(mcu *cpu.Cpu) int {
	mcu.SetAcc(mcu.Reg(reg(mcu)))
	mcu.PC++
	return 1
}

func opMovRegA(mcu *cpu.Cpu) int {
	mcu.SetReg(reg(mcu), mcu.Acc())
	mcu.PC++
	return 1
}

func opMovRegImm(mcu *cpu.Cpu) int {
	mcu.SetReg(reg(mcu), imm(mcu, 1))
	mcu.PC += 2
	return 1
}

func opMovAIndirect(mcu *cpu.Cpu) int {
	mcu.SetAcc(mcu.ReadIndirect(indirect(mcu)))
	mcu.PC++
	return 1
}

func opMovIndirectA(mcu *cpu.Cpu) int {
	mcu.WriteIndirect(indirect(mcu), mcu.Acc())
	mcu.PC++
	return 1
}

func opMovIndirectImm(mcu *cpu.Cpu) int {
	mcu.WriteIndirect(indirect(mcu), imm(mcu, 1))
	mcu.PC += 2
	return 1
}

func opMovDptrImm(mcu *cpu.Cpu) int {
	mcu.SetDptr(int(imm(mcu, 1))<<8 | int(imm(mcu, 2)))
	mcu.PC += 3
	return 2
}

func opIncDptr(mcu *cpu.Cpu) int {
	mcu.SetDptr(mcu.Dptr() + 1)
	mcu.PC++
	return 2
}

func opMovxADptr(mcu *cpu.Cpu) int {
	mcu.SetAcc(mcu.ReadExternal(mcu.Dptr()))
	mcu.PC++
	return 2
}

func opMovxDptrA(mcu *cpu.Cpu) int {
	mcu.WriteExternal(mcu.Dptr(), mcu.Acc())
	mcu.PC++
	return 2
}

func opPush(mcu *cpu.Cpu) int {
	mcu.Push(mcu.ReadDirect(int(imm(mcu, 1))))
	mcu.PC += 2
	return 2
}

func opPop(mcu *cpu.Cpu) int {
	mcu.WriteDirect(int(imm(mcu, 1)), mcu.Pop())
	mcu.PC += 2
	return 2
}

func opIncA(mcu *cpu.Cpu) int {
	mcu.SetAcc(mcu.Acc() + 1)
	mcu.PC++
	return 1
}

func opDecA(mcu *cpu.Cpu) int {
	mcu.SetAcc(mcu.Acc() - 1)
	mcu.PC++
	return 1
}

func opIncDirect(mcu *cpu.Cpu) int {
	addr := int(imm(mcu, 1))
	mcu.WriteDirect(addr, mcu.ReadDirect(addr)+1)
	mcu.PC += 2
	return 1
}

func opDecDirect(mcu *cpu.Cpu) int {
	addr := int(imm(mcu, 1))
	mcu.WriteDirect(addr, mcu.ReadDirect(addr)-1)
	mcu.PC += 2
	return 1
}

func opIncReg(mcu *cpu.Cpu) int {
	n := reg(mcu)
	mcu.SetReg(n, mcu.Reg(n)+1)
	mcu.PC++
	return 1
}

func opDecReg(mcu *cpu.Cpu) int {
	n := reg(mcu)
	mcu.SetReg(n, mcu.Reg(n)-1)
	mcu.PC++
	return 1
}

func opIncIndirect(mcu *cpu.Cpu) int {
	addr := indirect(mcu)
	mcu.WriteIndirect(addr, mcu.ReadIndirect(addr)+1)
	mcu.PC++
	return 1
}

func opDecIndirect(mcu *cpu.Cpu) int {
	addr := indirect(mcu)
	mcu.WriteIndirect(addr, mcu.ReadIndirect(addr)-1)
	mcu.PC++
	return 1
}

// add sets ACC to ACC + value + carry, updating CY, AC and OV.
func add(mcu *cpu.Cpu, value byte, carry bool) {
	acc := mcu.Acc()
	var c byte
	if carry {
		c = 1
	}

	sum := int(acc) + int(value) + int(c)
	result := byte(sum)

	psw := mcu.SFR[cpu.REG_PSW] &^ (cpu.PSW_CY | cpu.PSW_AC | cpu.PSW_OV)
	if sum > 0xff {
		psw |= cpu.PSW_CY
	}
	if (acc&0xf)+(value&0xf)+c > 0xf {
		psw |= cpu.PSW_AC
	}
	if (acc^value)&0x80 == 0 && (acc^result)&0x80 != 0 {
		psw |= cpu.PSW_OV
	}

	mcu.SFR[cpu.REG_PSW] = psw
	mcu.SetAcc(result)
}

// subb sets ACC to ACC - value - carry, updating CY, AC and OV.
func subb(mcu *cpu.Cpu, value byte) {
	acc := mcu.Acc()
	var c byte
	if mcu.Carry() {
		c = 1
	}

	diff := int(acc) - int(value) - int(c)
	result := byte(diff)

	psw := mcu.SFR[cpu.REG_PSW] &^ (cpu.PSW_CY | cpu.PSW_AC | cpu.PSW_OV)
	if diff < 0 {
		psw |= cpu.PSW_CY
	}
	if int(acc&0xf)-int(value&0xf)-int(c) < 0 {
		psw |= cpu.PSW_AC
	}
	if (acc^value)&0x80 != 0 && (acc^result)&0x80 != 0 {
		psw |= cpu.PSW_OV
	}

	mcu.SFR[cpu.REG_PSW] = psw
	mcu.SetAcc(result)
}

func opAddImm(mcu *cpu.Cpu) int {
	add(mcu, imm(mcu, 1), false)
	mcu.PC += 2
	return 1
}

func opAddcImm(mcu *cpu.Cpu) int {
	add(mcu, imm(mcu, 1), mcu.Carry())
	mcu.PC += 2
	return 1
}

func opAddDirect(mcu *cpu.Cpu) int {
	add(mcu, mcu.ReadDirect(int(imm(mcu, 1))), false)
	mcu.PC += 2
	return 1
}

func opAddReg(mcu *cpu.Cpu) int {
	add(mcu, mcu.Reg(reg(mcu)), false)
	mcu.PC++
	return 1
}

func opSubbImm(mcu *cpu.Cpu) int {
	subb(mcu, imm(mcu, 1))
	mcu.PC += 2
	return 1
}

func orl(a, b byte) byte { return a | b }
func anl(a, b byte) byte { return a & b }
func xrl(a, b byte) byte { return a ^ b }

func logicAImm(logic func(a, b byte) byte) cpu.Operation {
	return func(mcu *cpu.Cpu) int {
		mcu.SetAcc(logic(mcu.Acc(), imm(mcu, 1)))
		mcu.PC += 2
		return 1
	}
}

// logicDirectA reads the port latch, not the pins, for the
// read-modify-write.
func logicDirectA(logic func(a, b byte) byte) cpu.Operation {
	return func(mcu *cpu.Cpu) int {
		addr := int(imm(mcu, 1))
		mcu.WriteDirect(addr, logic(latch(mcu, addr), mcu.Acc()))
		mcu.PC += 2
		return 1
	}
}

func logicDirectImm(logic func(a, b byte) byte) cpu.Operation {
	return func(mcu *cpu.Cpu) int {
		addr := int(imm(mcu, 1))
		mcu.WriteDirect(addr, logic(latch(mcu, addr), imm(mcu, 2)))
		mcu.PC += 3
		return 2
	}
}

func latch(mcu *cpu.Cpu, addr int) byte {
	if addr < 0x80 {
		return mcu.Lower[addr]
	}
	return mcu.SFR[addr-0x80]
}

func latchBit(mcu *cpu.Cpu, bit int) bool {
	addr := bit & 0xf8
	if bit < 0x80 {
		addr = 0x20 + bit>>3
	}
	return latch(mcu, addr)&(1<<(bit&7)) != 0
}

func opClrA(mcu *cpu.Cpu) int {
	mcu.SetAcc(0)
	mcu.PC++
	return 1
}

func opCplA(mcu *cpu.Cpu) int {
	mcu.SetAcc(^mcu.Acc())
	mcu.PC++
	return 1
}

func opRlA(mcu *cpu.Cpu) int {
	acc := mcu.Acc()
	mcu.SetAcc(acc<<1 | acc>>7)
	mcu.PC++
	return 1
}

func opRrA(mcu *cpu.Cpu) int {
	acc := mcu.Acc()
	mcu.SetAcc(acc>>1 | acc<<7)
	mcu.PC++
	return 1
}

func opSwapA(mcu *cpu.Cpu) int {
	acc := mcu.Acc()
	mcu.SetAcc(acc<<4 | acc>>4)
	mcu.PC++
	return 1
}

func opSetbBit(mcu *cpu.Cpu) int {
	mcu.WriteBit(int(imm(mcu, 1)), true)
	mcu.PC += 2
	return 1
}

func opClrBit(mcu *cpu.Cpu) int {
	mcu.WriteBit(int(imm(mcu, 1)), false)
	mcu.PC += 2
	return 1
}

func opCplBit(mcu *cpu.Cpu) int {
	bit := int(imm(mcu, 1))
	mcu.WriteBit(bit, !latchBit(mcu, bit))
	mcu.PC += 2
	return 1
}

func opSetbC(mcu *cpu.Cpu) int {
	mcu.SetCarry(true)
	mcu.PC++
	return 1
}

func opClrC(mcu *cpu.Cpu) int {
	mcu.SetCarry(false)
	mcu.PC++
	return 1
}

func opCplC(mcu *cpu.Cpu) int {
	mcu.SetCarry(!mcu.Carry())
	mcu.PC++
	return 1
}
