package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Code(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, false)
	cpu.Code[3] = 0xa5

	assert.Equal(byte(0xa5), cpu.ReadCode(3))
	assert.Equal(byte(0xa5), cpu.ReadCode(1024+3))
	assert.Equal(byte(0xa5), cpu.ReadCode(0xfc03))
}

func TestMemory_External(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, false)
	cpu.WriteExternal(0x105, 0x42)
	assert.Equal(byte(0x42), cpu.ExtData[5])
	assert.Equal(byte(0x42), cpu.ReadExternal(5))

	var written []int
	cpu.XRead = func(cpu *Cpu, addr int) byte { return byte(addr >> 8) }
	cpu.XWrite = func(cpu *Cpu, addr int, value byte) { written = append(written, addr, int(value)) }

	assert.Equal(byte(0x12), cpu.ReadExternal(0x1234))
	cpu.WriteExternal(0x8000, 0x99)
	assert.Equal([]int{0x8000, 0x99}, written)
	assert.Equal(byte(0x42), cpu.ExtData[5])

	none, err := NewCpu(Config{CodeSize: 1024})
	assert.NoError(err)
	none.WriteExternal(5, 1)
	assert.Equal(byte(0), none.ReadExternal(5))
}

func TestMemory_Direct(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, true)

	cpu.WriteDirect(0x30, 0x11)
	assert.Equal(byte(0x11), cpu.Lower[0x30])
	assert.Equal(byte(0x11), cpu.ReadDirect(0x30))

	cpu.WriteDirect(0xe0, 0x22)
	assert.Equal(byte(0x22), cpu.Acc())
	assert.Equal(byte(0x22), cpu.ReadDirect(0xe0))
	assert.Equal(byte(0), cpu.Upper[0x60])
}

func TestMemory_SfrHooks(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, false)

	var writes []int
	cpu.SfrWrite = func(cpu *Cpu, addr int) { writes = append(writes, addr) }
	cpu.SfrRead = func(cpu *Cpu, addr int) byte {
		if addr == 0x90 {
			return cpu.SFR[REG_P1] & 0x0f
		}
		return cpu.SFR[addr-0x80]
	}

	cpu.WriteDirect(0x90, 0xa5)
	assert.Equal(byte(0xa5), cpu.SFR[REG_P1])
	assert.Equal(byte(0x05), cpu.ReadDirect(0x90))
	assert.Equal([]int{0x90}, writes)

	cpu.WriteDirect(0x20, 0xff)
	assert.Equal([]int{0x90}, writes)
}

func TestMemory_Indirect(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, true)
	cpu.WriteIndirect(0x85, 0x12)
	assert.Equal(byte(0x12), cpu.Upper[5])
	assert.Equal(byte(0x12), cpu.ReadIndirect(0x85))
	assert.Equal(byte(0xff), cpu.SFR[REG_P0])

	cpu.WriteIndirect(0x05, 0x34)
	assert.Equal(byte(0x34), cpu.Lower[5])

	lower := newTestCpu(t, false)
	lower.WriteIndirect(0x85, 0x12)
	assert.Equal(byte(0), lower.ReadIndirect(0x85))
	assert.Equal(byte(0xff), lower.SFR[REG_P0])
}

func TestMemory_Bits(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, false)

	cpu.WriteBit(0x00, true)
	cpu.WriteBit(0x7f, true)
	assert.Equal(byte(0x01), cpu.Lower[0x20])
	assert.Equal(byte(0x80), cpu.Lower[0x2f])
	assert.True(cpu.ReadBit(0x7f))
	assert.False(cpu.ReadBit(0x7e))

	// PSW.CY is bit 0xD7.
	cpu.WriteBit(0xd7, true)
	assert.True(cpu.Carry())
	cpu.SetCarry(false)
	assert.False(cpu.ReadBit(0xd7))

	// The read-modify-write uses the latch, not the pins.
	cpu.SfrRead = func(cpu *Cpu, addr int) byte { return 0 }
	cpu.WriteBit(0x90, false)
	assert.Equal(byte(0xfe), cpu.SFR[REG_P1])
	assert.False(cpu.ReadBit(0x91))
}

func TestMemory_Registers(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, false)

	for bank := range 4 {
		cpu.SFR[REG_PSW] = byte(bank) << 3
		cpu.SetReg(2, byte(0x10+bank))
	}

	assert.Equal(byte(0x10), cpu.Lower[0x02])
	assert.Equal(byte(0x11), cpu.Lower[0x0a])
	assert.Equal(byte(0x12), cpu.Lower[0x12])
	assert.Equal(byte(0x13), cpu.Lower[0x1a])

	cpu.SFR[REG_PSW] = PSW_RS0
	assert.Equal(byte(0x11), cpu.Reg(2))
	assert.Equal(byte(0x11), cpu.Reg(10))
}

func TestMemory_Dptr(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, false)
	cpu.SetDptr(0x1234)
	assert.Equal(byte(0x12), cpu.SFR[REG_DPH])
	assert.Equal(byte(0x34), cpu.SFR[REG_DPL])
	assert.Equal(0x1234, cpu.Dptr())
}
