// Package peripheral simulates the hardware around an 8051: input pins,
// shift registers, a character display, and recorders for port activity.
package peripheral

import (
	"github.com/ezrec/emu8051/cpu"
)

// Device is stepped once per tick, after the processor.
type Device interface {
	// Reset the device state.
	Reset()
	// Tick observes or drives the processor after its tick.
	Tick(mcu *cpu.Cpu)
}

// SfrReader devices alter the value seen when an SFR is read, such as
// port pin levels. value is the result so far, starting from the latch.
type SfrReader interface {
	ReadSFR(mcu *cpu.Cpu, addr int, value byte) byte
}

// PORTS is the number of ports, P0 through P6.
const PORTS = 7

// portRegs are the SFR offsets of P0 through P6.
var portRegs = [PORTS]int{
	cpu.REG_P0,
	cpu.REG_P1,
	cpu.REG_P2,
	cpu.REG_P3,
	cpu.REG_P4,
	cpu.REG_P5,
	cpu.REG_P6,
}

// PortOf returns the port number of an SFR address (0x80-0xFF), or -1 if
// the address is not a port.
func PortOf(addr int) int {
	for port, reg := range portRegs {
		if reg+0x80 == addr {
			return port
		}
	}

	return -1
}
