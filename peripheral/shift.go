package peripheral

import (
	"github.com/ezrec/emu8051/cpu"
)

// SHIFT_REGISTERS is the number of shift registers on each port.
const SHIFT_REGISTERS = 4

// ShiftRegisters are 8-bit serial-in registers clocked from the ports.
// Register n of a port is clocked by a rising edge on port bit 2n+1, and
// shifts in port bit 2n.
type ShiftRegisters struct {
	Value [PORTS][SHIFT_REGISTERS]byte

	last   [PORTS]byte
	primed bool
}

var _ Device = (*ShiftRegisters)(nil)

// Reset clears the registers.
func (sr *ShiftRegisters) Reset() {
	sr.Value = [PORTS][SHIFT_REGISTERS]byte{}
	sr.primed = false
}

// Tick clocks the registers from the port latches.
func (sr *ShiftRegisters) Tick(mcu *cpu.Cpu) {
	for port, reg := range portRegs {
		now := mcu.SFR[reg]
		if sr.primed {
			rising := now &^ sr.last[port]
			for n := range SHIFT_REGISTERS {
				clock := byte(2) << (n * 2)
				if rising&clock == 0 {
					continue
				}
				data := (now >> (n * 2)) & 1
				sr.Value[port][n] = sr.Value[port][n]<<1 | data
			}
		}
		sr.last[port] = now
	}

	sr.primed = true
}
