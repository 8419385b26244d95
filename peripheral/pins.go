package peripheral

import (
	"github.com/ezrec/emu8051/cpu"
)

// Pins drives the external pin levels of the ports. A port reads as its
// latch ANDed with its pins, so a pin held low reads as zero whatever the
// program wrote.
type Pins struct {
	Level [PORTS]byte // Pin levels of P0 through P6; 0xFF when released.
}

var _ Device = (*Pins)(nil)
var _ SfrReader = (*Pins)(nil)

// NewPins returns pins with every level released high.
func NewPins() (pins *Pins) {
	pins = &Pins{}
	pins.Reset()
	return
}

// Reset releases all pins.
func (pins *Pins) Reset() {
	for port := range pins.Level {
		pins.Level[port] = 0xff
	}
}

// Tick does nothing; pins are sampled when the port is read.
func (pins *Pins) Tick(mcu *cpu.Cpu) {
}

// Set drives a pin level.
func (pins *Pins) Set(port int, bit int, high bool) (err error) {
	if port < 0 || port >= PORTS {
		err = ErrPort
		return
	}

	if high {
		pins.Level[port] |= 1 << (bit & 7)
	} else {
		pins.Level[port] &^= 1 << (bit & 7)
	}

	return
}

// Toggle inverts a pin level.
func (pins *Pins) Toggle(port int, bit int) (err error) {
	if port < 0 || port >= PORTS {
		err = ErrPort
		return
	}

	pins.Level[port] ^= 1 << (bit & 7)

	return
}

// ReadSFR applies the pin levels to port reads.
func (pins *Pins) ReadSFR(mcu *cpu.Cpu, addr int, value byte) byte {
	port := PortOf(addr)
	if port < 0 {
		return value
	}

	return value & pins.Level[port]
}
