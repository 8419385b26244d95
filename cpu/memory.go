package cpu

// ReadCode reads code memory. Addresses wrap on the code memory size.
func (cpu *Cpu) ReadCode(addr int) byte {
	return cpu.Code[addr&(len(cpu.Code)-1)]
}

// ReadExternal reads external data memory, through the XRead hook if set.
func (cpu *Cpu) ReadExternal(addr int) byte {
	if cpu.XRead != nil {
		return cpu.XRead(cpu, addr)
	}

	if len(cpu.ExtData) == 0 {
		return 0
	}

	return cpu.ExtData[addr&(len(cpu.ExtData)-1)]
}

// WriteExternal writes external data memory, through the XWrite hook if set.
func (cpu *Cpu) WriteExternal(addr int, value byte) {
	if cpu.XWrite != nil {
		cpu.XWrite(cpu, addr, value)
		return
	}

	if len(cpu.ExtData) == 0 {
		return
	}

	cpu.ExtData[addr&(len(cpu.ExtData)-1)] = value
}

// ReadSFR reads an SFR by its address (0x80-0xFF). The SfrRead hook may
// override the latch value, for example to present port pin levels.
func (cpu *Cpu) ReadSFR(addr int) byte {
	reg := addr & 0x7f
	if cpu.SfrRead != nil {
		return cpu.SfrRead(cpu, reg+0x80)
	}

	return cpu.SFR[reg]
}

// WriteSFR writes an SFR by its address (0x80-0xFF), then notifies the
// SfrWrite hook.
func (cpu *Cpu) WriteSFR(addr int, value byte) {
	reg := addr & 0x7f
	cpu.SFR[reg] = value
	if cpu.SfrWrite != nil {
		cpu.SfrWrite(cpu, reg+0x80)
	}
}

// ReadDirect reads a directly addressed byte: lower RAM below 0x80, SFRs above.
func (cpu *Cpu) ReadDirect(addr int) byte {
	addr &= 0xff
	if addr < 0x80 {
		return cpu.Lower[addr]
	}

	return cpu.ReadSFR(addr)
}

// WriteDirect writes a directly addressed byte.
func (cpu *Cpu) WriteDirect(addr int, value byte) {
	addr &= 0xff
	if addr < 0x80 {
		cpu.Lower[addr] = value
		return
	}

	cpu.WriteSFR(addr, value)
}

// ReadIndirect reads an indirectly addressed byte: lower RAM below 0x80,
// upper RAM above. Without upper RAM, the upper half reads as zero.
func (cpu *Cpu) ReadIndirect(addr int) byte {
	addr &= 0xff
	if addr < 0x80 {
		return cpu.Lower[addr]
	}

	if cpu.Upper == nil {
		return 0
	}

	return cpu.Upper[addr-0x80]
}

// WriteIndirect writes an indirectly addressed byte. Without upper RAM,
// writes to the upper half are dropped.
func (cpu *Cpu) WriteIndirect(addr int, value byte) {
	addr &= 0xff
	if addr < 0x80 {
		cpu.Lower[addr] = value
		return
	}

	if cpu.Upper == nil {
		return
	}

	cpu.Upper[addr-0x80] = value
}

// bitAddress maps a bit address to its byte address and mask.
// Bits 0x00-0x7F live in RAM 0x20-0x2F, bits 0x80-0xFF in the SFRs whose
// address is a multiple of eight.
func bitAddress(bit int) (addr int, mask byte) {
	bit &= 0xff
	if bit < 0x80 {
		addr = 0x20 + (bit >> 3)
	} else {
		addr = bit & 0xf8
	}
	mask = 1 << (bit & 7)
	return
}

// ReadBit reads an addressable bit.
func (cpu *Cpu) ReadBit(bit int) bool {
	addr, mask := bitAddress(bit)
	return cpu.ReadDirect(addr)&mask != 0
}

// WriteBit writes an addressable bit. The other bits of an SFR are taken
// from its latch, not from the SfrRead hook.
func (cpu *Cpu) WriteBit(bit int, value bool) {
	addr, mask := bitAddress(bit)

	var old byte
	if addr < 0x80 {
		old = cpu.Lower[addr]
	} else {
		old = cpu.SFR[addr-0x80]
	}

	if value {
		old |= mask
	} else {
		old &^= mask
	}

	cpu.WriteDirect(addr, old)
}

// Reg reads R0-R7 of the register bank selected by PSW.
func (cpu *Cpu) Reg(n int) byte {
	return cpu.Lower[int(cpu.SFR[REG_PSW]&(PSW_RS0|PSW_RS1))+(n&7)]
}

// SetReg writes R0-R7 of the register bank selected by PSW.
func (cpu *Cpu) SetReg(n int, value byte) {
	cpu.Lower[int(cpu.SFR[REG_PSW]&(PSW_RS0|PSW_RS1))+(n&7)] = value
}

// Acc returns the accumulator.
func (cpu *Cpu) Acc() byte {
	return cpu.SFR[REG_ACC]
}

// SetAcc sets the accumulator. No hooks are called.
func (cpu *Cpu) SetAcc(value byte) {
	cpu.SFR[REG_ACC] = value
}

// Carry returns PSW.CY.
func (cpu *Cpu) Carry() bool {
	return cpu.SFR[REG_PSW]&PSW_CY != 0
}

// SetCarry sets PSW.CY.
func (cpu *Cpu) SetCarry(carry bool) {
	if carry {
		cpu.SFR[REG_PSW] |= PSW_CY
	} else {
		cpu.SFR[REG_PSW] &^= PSW_CY
	}
}

// Dptr returns the data pointer.
func (cpu *Cpu) Dptr() int {
	return int(cpu.SFR[REG_DPH])<<8 | int(cpu.SFR[REG_DPL])
}

// SetDptr sets the data pointer.
func (cpu *Cpu) SetDptr(value int) {
	cpu.SFR[REG_DPH] = byte(value >> 8)
	cpu.SFR[REG_DPL] = byte(value)
}
