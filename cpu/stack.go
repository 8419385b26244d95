package cpu

// stackLimit is the first stack address beyond internal RAM.
func (cpu *Cpu) stackLimit() int {
	if cpu.Upper != nil {
		return LOWER_DATA_SIZE + UPPER_DATA_SIZE
	}
	return LOWER_DATA_SIZE
}

// Push a byte onto the stack in internal RAM.
// Reports EXCEPTION_STACK if SP leaves the available RAM; the push is
// still performed, with SP wrapping at 0xFF.
func (cpu *Cpu) Push(value byte) {
	sp := int(cpu.SFR[REG_SP]) + 1
	if sp >= cpu.stackLimit() {
		cpu.Report(EXCEPTION_STACK)
	}

	cpu.SFR[REG_SP] = byte(sp)
	cpu.WriteIndirect(int(cpu.SFR[REG_SP]), value)
}

// Pop a byte from the stack in internal RAM.
// Reports EXCEPTION_STACK if SP rolls under zero.
func (cpu *Cpu) Pop() (value byte) {
	sp := int(cpu.SFR[REG_SP])
	value = cpu.ReadIndirect(sp)

	sp--
	if sp < 0 {
		cpu.Report(EXCEPTION_STACK)
	}

	cpu.SFR[REG_SP] = byte(sp & 0xff)

	return
}
