package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/emu8051/cpu"
)

func newCpu(t *testing.T, program []byte) (mcu *cpu.Cpu, seen *[]cpu.Exception) {
	mcu, err := cpu.NewCpu(cpu.Config{
		CodeSize:       1024,
		ExtDataSize:    256,
		InstructionSet: NewSubset(),
	})
	require.NoError(t, err)
	mcu.Reset(true)
	copy(mcu.Code, program)

	seen = &[]cpu.Exception{}
	mcu.Except = func(mcu *cpu.Cpu, code cpu.Exception) {
		*seen = append(*seen, code)
	}

	return
}

func run(mcu *cpu.Cpu, ticks int) {
	for range ticks {
		mcu.Tick()
	}
}

func TestSubset_Implemented(t *testing.T) {
	assert := assert.New(t)

	is := NewSubset()
	assert.True(is.Implemented(0x00))
	assert.True(is.Implemented(0xff))
	assert.False(is.Implemented(0xa5))
	assert.Nil(is.Operation(0xa5))
	assert.Nil(is.Decoder(0xa5))
}

func TestSubset_Loop(t *testing.T) {
	assert := assert.New(t)

	mcu, seen := newCpu(t, []byte{
		0x78, 0x05, // mov r0, #5
		0x74, 0x00, // mov a, #0
		0x24, 0x03, // add a, #3
		0xd8, 0xfc, // djnz r0, 0004h
		0x80, 0xfe, // sjmp $
	})

	run(mcu, 17)
	assert.Equal(0x08, mcu.PC)
	assert.Equal(byte(15), mcu.Acc())
	assert.Equal(byte(0), mcu.Reg(0))
	assert.Equal(2+5*2, mcu.Instructions)
	assert.Empty(*seen)
}

func TestSubset_Call(t *testing.T) {
	assert := assert.New(t)

	program := make([]byte, 0x20)
	copy(program, []byte{
		0x75, 0x81, 0x30, // mov sp, #30h
		0x12, 0x00, 0x10, // lcall 0010h
		0x80, 0xfe, // sjmp $
	})
	copy(program[0x10:], []byte{
		0x74, 0x42, // mov a, #42h
		0xc0, 0xe0, // push acc
		0xd0, 0xf0, // pop b
		0x22, // ret
	})
	mcu, seen := newCpu(t, program)

	run(mcu, 2+2+1+2+2+2)
	assert.Equal(0x06, mcu.PC)
	assert.Equal(byte(0x42), mcu.Acc())
	assert.Equal(byte(0x42), mcu.SFR[cpu.REG_B])
	assert.Equal(byte(0x30), mcu.SFR[cpu.REG_SP])
	assert.Equal(byte(0x06), mcu.Lower[0x31])
	assert.Equal(byte(0x00), mcu.Lower[0x32])
	assert.Empty(*seen)
}

func TestSubset_External(t *testing.T) {
	assert := assert.New(t)

	mcu, _ := newCpu(t, []byte{
		0x90, 0x00, 0x10, // mov dptr, #0010h
		0xe0, // movx a, @dptr
		0x04, // inc a
		0xa3, // inc dptr
		0xf0, // movx @dptr, a
	})
	mcu.ExtData[0x10] = 0x7f

	run(mcu, 2+2+1+2+2)
	assert.Equal(byte(0x80), mcu.ExtData[0x11])
	assert.Equal(0x11, mcu.Dptr())
}

func TestSubset_Bits(t *testing.T) {
	assert := assert.New(t)

	mcu, _ := newCpu(t, []byte{
		0xc2, 0x90, // clr p1.0
		0xd2, 0x07, // setb 20h.7
		0x20, 0x07, 0x01, // jb 20h.7, +1
		0x00,             // nop (skipped)
		0x10, 0x07, 0x00, // jbc 20h.7, +0
		0xb3, // cpl c
	})

	run(mcu, 1+1+2+2+1)
	assert.Equal(byte(0xfe), mcu.SFR[cpu.REG_P1])
	assert.Equal(byte(0x00), mcu.Lower[0x20])
	assert.True(mcu.Carry())
	assert.Equal(12, mcu.PC)
}

func TestSubset_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		program []byte
		carry   bool
		acc     byte
		flags   byte
	}{
		{[]byte{0x24, 0x01}, false, 0x80, cpu.PSW_AC | cpu.PSW_OV},
		{[]byte{0x24, 0x01}, true, 0x80, cpu.PSW_AC | cpu.PSW_OV},
		{[]byte{0x34, 0x01}, true, 0x81, cpu.PSW_AC | cpu.PSW_OV},
		{[]byte{0x24, 0x81}, false, 0x00, cpu.PSW_CY | cpu.PSW_AC},
		{[]byte{0x94, 0x80}, false, 0xff, cpu.PSW_CY | cpu.PSW_OV},
		{[]byte{0x94, 0x0f}, true, 0x6f, cpu.PSW_AC},
	}

	for n, entry := range table {
		mcu, _ := newCpu(t, entry.program)
		mcu.SetAcc(0x7f)
		mcu.SetCarry(entry.carry)

		mcu.Tick()

		assert.Equal(entry.acc, mcu.Acc(), "entry %d", n)
		assert.Equal(entry.flags, mcu.SFR[cpu.REG_PSW]&(cpu.PSW_CY|cpu.PSW_AC|cpu.PSW_OV), "entry %d", n)
	}
}

func TestSubset_Logic(t *testing.T) {
	assert := assert.New(t)

	mcu, _ := newCpu(t, []byte{
		0x74, 0xf0, // mov a, #F0h
		0x44, 0x0f, // orl a, #0Fh
		0x54, 0x3c, // anl a, #3Ch
		0x64, 0xff, // xrl a, #FFh
		0x53, 0x90, 0x0f, // anl p1, #0Fh
		0xc4, // swap a
		0x23, // rl a
	})

	run(mcu, 1+1+1+1+2+1+1)
	assert.Equal(byte(0x78), mcu.Acc())
	assert.Equal(byte(0x0f), mcu.SFR[cpu.REG_P1])
}

func TestSubset_AccToA(t *testing.T) {
	assert := assert.New(t)

	mcu, seen := newCpu(t, []byte{0xe5, 0xe0})
	mcu.SetAcc(0x33)

	mcu.Tick()
	assert.Equal([]cpu.Exception{cpu.EXCEPTION_ACC_TO_A}, *seen)
	assert.Equal(byte(0x33), mcu.Acc())
	assert.Equal(2, mcu.PC)
}

func TestSubset_Reserved(t *testing.T) {
	assert := assert.New(t)

	mcu, seen := newCpu(t, []byte{0xa5, 0x00})

	assert.True(mcu.Tick())
	assert.Equal([]cpu.Exception{cpu.EXCEPTION_ILLEGAL_OPCODE}, *seen)
	assert.Equal(1, mcu.PC)
}

func TestSubset_Interrupt(t *testing.T) {
	assert := assert.New(t)

	program := make([]byte, 0x20)
	copy(program, []byte{0x80, 0xfe}) // sjmp $
	copy(program[0x0b:], []byte{
		0xb2, 0x90, // cpl p1.0
		0x32, // reti
	})
	mcu, seen := newCpu(t, program)

	toggles := 0
	mcu.SfrWrite = func(mcu *cpu.Cpu, addr int) {
		if addr == cpu.REG_P1+0x80 {
			toggles++
		}
	}

	mcu.SFR[cpu.REG_TMOD] = cpu.TMOD_M1_0 // mode 2
	mcu.SFR[cpu.REG_TH0] = 0xf0
	mcu.SFR[cpu.REG_TL0] = 0xf0
	mcu.SFR[cpu.REG_TCON] = cpu.TCON_TR0
	mcu.SFR[cpu.REG_IEN0] = cpu.IEN0_EA | cpu.IEN0_ET0

	run(mcu, 100)
	assert.GreaterOrEqual(toggles, 4)
	assert.Empty(*seen)
	assert.Equal(7+2*mcu.InterruptActive, int(mcu.SFR[cpu.REG_SP]))
}

func TestSubset_RetiMismatch(t *testing.T) {
	assert := assert.New(t)

	program := make([]byte, 0x10)
	copy(program[0x03:], []byte{
		0x74, 0x01, // mov a, #1
		0x32, // reti
	})
	mcu, seen := newCpu(t, program)
	mcu.SFR[cpu.REG_TCON] = cpu.TCON_IE0
	mcu.SFR[cpu.REG_IEN0] = cpu.IEN0_EA | cpu.IEN0_EX0

	run(mcu, 2+1+2)
	assert.Equal([]cpu.Exception{cpu.EXCEPTION_IRET_ACC_MISMATCH}, *seen)
	assert.Equal(0, mcu.InterruptActive)
	assert.Equal(0, mcu.PC)
	assert.Equal(byte(7), mcu.SFR[cpu.REG_SP])
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		code   []byte
		text   string
		length int
	}{
		{[]byte{0x00}, "nop", 1},
		{[]byte{0x02, 0x12, 0x34}, "ljmp 1234h", 3},
		{[]byte{0x75, 0x81, 0x30}, "mov sp, #30h", 3},
		{[]byte{0x85, 0x30, 0xe0}, "mov acc, 30h", 3},
		{[]byte{0xd2, 0x90}, "setb p1.0", 2},
		{[]byte{0xc2, 0x07}, "clr 20h.7", 2},
		{[]byte{0xc2, 0x7f}, "clr 2Fh.7", 2},
		{[]byte{0x80, 0xfe}, "sjmp 0000h", 2},
		{[]byte{0xe9}, "mov a, r1", 1},
		{[]byte{0xf7}, "mov @r1, a", 1},
		{[]byte{0xb4, 0x10, 0x05}, "cjne a, #10h, 0008h", 3},
		{[]byte{0x25, 0x40}, "add a, 40h", 2},
		{[]byte{0xa5}, "db A5h", 1},
	}

	for _, entry := range table {
		mcu, _ := newCpu(t, entry.code)
		text, length := mcu.Decode(0)
		assert.Equal(entry.text, text)
		assert.Equal(entry.length, length, entry.text)
	}
}
