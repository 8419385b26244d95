package peripheral

import (
	"github.com/ezrec/emu8051/cpu"
)

// Character display control lines, on P4.
const (
	LCD_RW = 0x01 // P4.0: high to read, low to write.
	LCD_RS = 0x02 // P4.1: high for data, low for instructions.
	LCD_E  = 0x04 // P4.2: reads on the rising edge, writes on the falling edge.
)

// Character display geometry.
const (
	LCD_DDRAM_SIZE = 0x80 // Display data RAM.
	LCD_CGRAM_SIZE = 0x40 // Character generator RAM.
	LCD_COLUMNS    = 16
	LCD_LINE2      = 0x40 // DDRAM address of the second line.
)

// Display control bits, as set by the display on/off instruction.
const (
	LCD_BLINK   = 0x01
	LCD_CURSOR  = 0x02
	LCD_DISPLAY = 0x04
)

// CharDisplay is a 2x16 HD44780 style character display. Written data is
// taken from the P5 latch; read data is driven onto the P1 pins.
type CharDisplay struct {
	ClockHz int // Oscillator frequency, for busy timing.

	DDRAM   [LCD_DDRAM_SIZE]byte
	CGRAM   [LCD_CGRAM_SIZE]byte
	Address int  // Address counter.
	Offset  int  // Display shift.
	Control byte // LCD_DISPLAY, LCD_CURSOR and LCD_BLINK.
	Busy    int  // Ticks until the next operation is accepted.
	FourBit bool // 4-bit interface; transfers are two nibbles, high first.

	dir    int
	shift  bool
	cgram  bool
	nibble bool
	data   byte
	bus    byte
	last   byte
	primed bool
}

var _ Device = (*CharDisplay)(nil)
var _ SfrReader = (*CharDisplay)(nil)

// NewCharDisplay returns a cleared display in 8-bit mode.
func NewCharDisplay(clockHz int) (cd *CharDisplay, err error) {
	if clockHz <= 0 {
		err = ErrClock
		return
	}

	cd = &CharDisplay{ClockHz: clockHz}
	cd.Reset()

	return
}

// Reset the display to its power-on state.
func (cd *CharDisplay) Reset() {
	for n := range cd.DDRAM {
		cd.DDRAM[n] = ' '
	}
	clear(cd.CGRAM[:])

	cd.Address = 0
	cd.Offset = 0
	cd.Control = LCD_DISPLAY | LCD_CURSOR | LCD_BLINK
	cd.Busy = 0
	cd.FourBit = false

	cd.dir = 1
	cd.shift = false
	cd.cgram = false
	cd.nibble = false
	cd.data = 0
	cd.bus = 0xff
	cd.primed = false
}

// busyFor returns the ticks taken by an operation of us microseconds.
func (cd *CharDisplay) busyFor(us int) int {
	return us * cd.ClockHz / (CYCLES_PER_TICK * 1000000)
}

func (cd *CharDisplay) advance() {
	cd.Address = (cd.Address + cd.dir) & (LCD_DDRAM_SIZE - 1)
	if cd.shift {
		cd.Offset = (cd.Offset + cd.dir) & (LCD_DDRAM_SIZE - 1)
	}
}

// Tick watches the E line of P4 for transfers.
func (cd *CharDisplay) Tick(mcu *cpu.Cpu) {
	if cd.Busy > 0 {
		cd.Busy--
	}

	ctl := mcu.SFR[cpu.REG_P4]
	last := cd.last
	cd.last = ctl

	if !cd.primed {
		cd.primed = true
		return
	}

	rising := last&LCD_E == 0 && ctl&LCD_E != 0
	falling := last&LCD_E != 0 && ctl&LCD_E == 0

	switch {
	case ctl&LCD_RW != 0 && rising:
		cd.read(ctl&LCD_RS != 0)
	case ctl&LCD_RW == 0 && falling:
		cd.write(ctl&LCD_RS != 0, mcu.SFR[cpu.REG_P5])
	}
}

func (cd *CharDisplay) read(rs bool) {
	// In 4-bit mode the address counter moves after the second nibble.
	last := !cd.FourBit || cd.nibble

	if !rs {
		cd.data = byte(cd.Address & 0x7f)
		if cd.Busy > 0 {
			cd.data |= 0x80
		}
	} else if cd.Busy == 0 {
		if cd.cgram {
			cd.data = cd.CGRAM[cd.Address&(LCD_CGRAM_SIZE-1)]
			if last {
				cd.Address = (cd.Address + 1) & (LCD_DDRAM_SIZE - 1)
			}
		} else {
			cd.data = cd.DDRAM[cd.Address&(LCD_DDRAM_SIZE-1)]
			if last {
				cd.advance()
			}
		}
		if last {
			cd.Busy = cd.busyFor(250)
		}
	}

	switch {
	case !cd.FourBit:
		cd.bus = cd.data
	case cd.nibble:
		cd.bus = cd.data << 4
	default:
		cd.bus = cd.data & 0xf0
	}

	if cd.FourBit {
		cd.nibble = !cd.nibble
	}
}

func (cd *CharDisplay) write(rs bool, value byte) {
	if cd.FourBit {
		if cd.nibble {
			cd.data = cd.data&0xf0 | value>>4
		} else {
			cd.data = cd.data&0x0f | value&0xf0
		}
		cd.nibble = !cd.nibble
		if cd.nibble {
			return
		}
	} else {
		cd.data = value
	}

	// A busy display ignores everything but busy flag reads.
	if cd.Busy > 0 {
		return
	}

	if rs {
		if cd.cgram {
			cd.CGRAM[cd.Address&(LCD_CGRAM_SIZE-1)] = cd.data
			cd.Address = (cd.Address + 1) & (LCD_DDRAM_SIZE - 1)
		} else {
			cd.DDRAM[cd.Address&(LCD_DDRAM_SIZE-1)] = cd.data
			cd.advance()
		}
		cd.Busy = cd.busyFor(250)
		return
	}

	cd.instruction(cd.data)
}

func (cd *CharDisplay) instruction(op byte) {
	switch {
	case op&0x80 != 0:
		// Set DDRAM address.
		cd.Address = int(op & 0x7f)
		cd.cgram = false
	case op&0x40 != 0:
		// Set CGRAM address.
		cd.Address = int(op & 0x3f)
		cd.cgram = true
	case op&0x20 != 0:
		// Function set.
		cd.FourBit = op&0x10 == 0
		cd.nibble = false
	case op&0x10 != 0:
		// Cursor or display shift.
		step := -1
		if op&0x04 != 0 {
			step = 1
		}
		if op&0x08 != 0 {
			cd.Offset = (cd.Offset + step) & (LCD_DDRAM_SIZE - 1)
		} else {
			cd.Address = (cd.Address + step) & (LCD_DDRAM_SIZE - 1)
		}
	case op&0x08 != 0:
		cd.Control = op & (LCD_DISPLAY | LCD_CURSOR | LCD_BLINK)
	case op&0x04 != 0:
		// Entry mode set.
		cd.shift = op&0x01 != 0
		cd.dir = -1
		if op&0x02 != 0 {
			cd.dir = 1
		}
	case op&0x02 != 0:
		// Return home.
		cd.Address = 0
		cd.Offset = 0
	case op == 0x01:
		// Clear display.
		for n := range cd.DDRAM {
			cd.DDRAM[n] = ' '
		}
		cd.Address = 0
		cd.Offset = 0
		cd.dir = 1
		cd.Busy = cd.busyFor(2000)
		return
	default:
		return
	}

	cd.Busy = cd.busyFor(200)
}

// ReadSFR drives the last read result onto the P1 pins.
func (cd *CharDisplay) ReadSFR(mcu *cpu.Cpu, addr int, value byte) byte {
	if addr != cpu.REG_P1+0x80 {
		return value
	}

	return value & cd.bus
}

// Lines returns the visible text of both display lines. Unprintable
// characters are shown as '?'.
func (cd *CharDisplay) Lines() (lines [2]string) {
	for line, base := range []int{0, LCD_LINE2} {
		text := make([]byte, LCD_COLUMNS)
		for n := range text {
			c := cd.DDRAM[(base+cd.Offset+n)&(LCD_DDRAM_SIZE-1)]
			switch {
			case cd.Control&LCD_DISPLAY == 0, c == 0:
				c = ' '
			case c < 0x20 || c > 0x7e:
				c = '?'
			}
			text[n] = c
		}
		lines[line] = string(text)
	}

	return
}
