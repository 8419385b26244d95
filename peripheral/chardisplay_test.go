package peripheral

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/emu8051/cpu"
)

// 1.2MHz: 20 ticks per instruction, 25 per data transfer, 200 to clear.
const lcdClockHz = 1200000

// lcdBus drives a CharDisplay through the port latches.
type lcdBus struct {
	mcu *cpu.Cpu
	cd  *CharDisplay
}

func newLcdBus(t *testing.T) *lcdBus {
	cd, err := NewCharDisplay(lcdClockHz)
	require.NoError(t, err)

	bus := &lcdBus{mcu: newCpu(t), cd: cd}
	bus.cd.Tick(bus.mcu)

	return bus
}

func (bus *lcdBus) idle() {
	for bus.cd.Busy > 0 {
		bus.cd.Tick(bus.mcu)
	}
}

func (bus *lcdBus) control(rs bool) (ctl byte) {
	if rs {
		ctl = LCD_RS
	}
	return
}

func (bus *lcdBus) write(rs bool, value byte) {
	ctl := bus.control(rs)
	bus.mcu.SFR[cpu.REG_P5] = value
	bus.mcu.SFR[cpu.REG_P4] = ctl | LCD_E
	bus.cd.Tick(bus.mcu)
	bus.mcu.SFR[cpu.REG_P4] = ctl
	bus.cd.Tick(bus.mcu)
}

func (bus *lcdBus) read(rs bool) byte {
	ctl := bus.control(rs) | LCD_RW
	bus.mcu.SFR[cpu.REG_P4] = ctl
	bus.cd.Tick(bus.mcu)
	bus.mcu.SFR[cpu.REG_P4] = ctl | LCD_E
	bus.cd.Tick(bus.mcu)
	return bus.cd.ReadSFR(bus.mcu, 0x90, bus.mcu.SFR[cpu.REG_P1])
}

func TestCharDisplay(t *testing.T) {
	assert := assert.New(t)

	type op struct {
		rs    bool
		value byte
	}

	cmd := func(value byte) op { return op{false, value} }
	text := func(s string) (ops []op) {
		for _, c := range []byte(s) {
			ops = append(ops, op{true, c})
		}
		return
	}

	table := []struct {
		name    string
		ops     []op
		line1   string
		line2   string
		address int
		offset  int
	}{
		{"reset", nil, "", "", 0, 0},
		{"write", text("HI"), "HI", "", 2, 0},
		{"decrement", append([]op{cmd(0x85), cmd(0x04)}, text("ab")...), "    ba", "", 3, 0},
		{"entry shift", append([]op{cmd(0x07)}, text("x")...), "", "", 1, 1},
		{"cursor move", append([]op{cmd(0x14), cmd(0x14), cmd(0x10)}, text("q")...), " q", "", 2, 0},
		{"display shift", append([]op{cmd(0x1c), cmd(0x18), cmd(0x18)}, text("k")...), " k", "", 1, 0x7f},
		{"second line", append([]op{cmd(0xc0)}, text("Z")...), "", "Z", 0x41, 0},
		{"display off", append(text("H"), cmd(0x08)), "", "", 1, 0},
		{"display on", append(text("H"), cmd(0x08), cmd(0x0c)), "H", "", 1, 0},
		{"clear", append(text("HI"), cmd(0x01)), "", "", 0, 0},
		{"home", append(text("HI"), cmd(0x1c), cmd(0x02)), "HI", "", 0, 0},
		{"unprintable", append(text("\x01"), op{true, 0}, op{true, 0xff}), "? ?", "", 3, 0},
	}

	for _, entry := range table {
		bus := newLcdBus(t)
		for _, op := range entry.ops {
			bus.idle()
			bus.write(op.rs, op.value)
		}

		lines := bus.cd.Lines()
		assert.Equal(pad16(entry.line1), lines[0], entry.name)
		assert.Equal(pad16(entry.line2), lines[1], entry.name)
		assert.Equal(entry.address, bus.cd.Address, entry.name)
		assert.Equal(entry.offset, bus.cd.Offset, entry.name)
	}
}

func TestCharDisplay_Busy(t *testing.T) {
	assert := assert.New(t)

	bus := newLcdBus(t)
	bus.write(true, 'A')
	assert.Equal(25, bus.cd.Busy)

	// Dropped while busy.
	bus.write(true, 'B')
	assert.Equal(byte(0x81), bus.read(false))

	bus.idle()
	assert.Equal(byte(0x01), bus.read(false))
	assert.Equal(pad16("A"), bus.cd.Lines()[0])

	bus.write(false, 0x01)
	assert.Equal(200, bus.cd.Busy)
}

func TestCharDisplay_Read(t *testing.T) {
	assert := assert.New(t)

	bus := newLcdBus(t)
	for _, c := range []byte("HI") {
		bus.idle()
		bus.write(true, c)
	}

	bus.idle()
	bus.write(false, 0x80)
	bus.idle()
	assert.Equal(byte('H'), bus.read(true))
	assert.Equal(1, bus.cd.Address)
	bus.idle()
	assert.Equal(byte('I'), bus.read(true))

	// Other registers pass through.
	assert.Equal(byte(0x12), bus.cd.ReadSFR(bus.mcu, 0xe0, 0x12))

	// The P1 latch still masks the pins.
	bus.mcu.SFR[cpu.REG_P1] = 0x0f
	assert.Equal(byte('I')&0x0f, bus.cd.ReadSFR(bus.mcu, 0x90, bus.mcu.SFR[cpu.REG_P1]))
}

func TestCharDisplay_FourBit(t *testing.T) {
	assert := assert.New(t)

	bus := newLcdBus(t)
	bus.write(false, 0x20)
	assert.True(bus.cd.FourBit)
	bus.idle()

	// 'A' as two nibbles, high first, on P5.7-P5.4.
	bus.write(true, 0x40)
	assert.Equal(0, bus.cd.Address)
	bus.write(true, 0x10)
	assert.Equal(1, bus.cd.Address)
	assert.Equal(byte('A'), bus.cd.DDRAM[0])

	bus.idle()
	hi := bus.read(false)
	lo := bus.read(false)
	assert.Equal(byte(0x01), hi&0xf0|lo>>4)

	// Back to 8-bit mode with a single transfer pair.
	bus.idle()
	bus.write(false, 0x30)
	bus.write(false, 0x00)
	assert.False(bus.cd.FourBit)
}

func TestCharDisplay_CGRAM(t *testing.T) {
	assert := assert.New(t)

	bus := newLcdBus(t)
	for _, op := range []struct {
		rs    bool
		value byte
	}{
		{false, 0x48},
		{true, 0x1f},
		{true, 0x11},
		{false, 0x80},
		{true, 'H'},
	} {
		bus.idle()
		bus.write(op.rs, op.value)
	}

	assert.Equal(byte(0x1f), bus.cd.CGRAM[8])
	assert.Equal(byte(0x11), bus.cd.CGRAM[9])
	assert.Equal(byte('H'), bus.cd.DDRAM[0])
	assert.Equal(1, bus.cd.Address)
}

func TestCharDisplay_Errors(t *testing.T) {
	assert := assert.New(t)

	cd, err := NewCharDisplay(0)
	assert.ErrorIs(err, ErrClock)
	assert.Nil(cd)
}

func pad16(s string) string {
	return s + strings.Repeat(" ", LCD_COLUMNS-len(s))
}
