// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"math/bits"

	"github.com/ezrec/emu8051/translate"
)

// Memory geometry.
const (
	LOWER_DATA_SIZE = 128   // Directly addressable internal RAM.
	UPPER_DATA_SIZE = 128   // Optional indirect-only internal RAM.
	SFR_SIZE        = 128   // Special function register bank.
	CODE_SIZE_MIN   = 1024  // Smallest code memory.
	MEMORY_SIZE_MAX = 65536 // Largest code or external data memory.
)

// InterruptActive levels.
const (
	INTERRUPT_LOW  = 1 // A low priority service routine is running.
	INTERRUPT_HIGH = 2 // A high priority service routine is running.
)

// Operation executes the instruction at PC, and returns the number of
// ticks the instruction takes.
type Operation func(cpu *Cpu) int

// Decoder renders the instruction at pos, and returns its length in bytes.
type Decoder func(cpu *Cpu, pos int) (text string, length int)

// InstructionSet supplies the opcode and decoder tables installed at Reset.
// A nil Operation or Decoder selects the reserved-opcode default.
type InstructionSet interface {
	Operation(opcode byte) Operation
	Decoder(opcode byte) Decoder
}

// Snapshot is the register state captured when an interrupt is vectored,
// checked again on return from the service routine.
type Snapshot struct {
	Acc byte
	Psw byte
	Sp  byte
}

// Config describes the memory geometry and instruction set of a Cpu.
type Config struct {
	CodeSize       int            // Code memory size, a power of two from 1KiB to 64KiB.
	ExtDataSize    int            // External data size, zero or a power of two up to 64KiB.
	UpperData      bool           // If set, the 128 bytes of upper internal RAM are present.
	InstructionSet InstructionSet // Opcode and decoder tables; nil for none.
}

// Cpu is the processor state of an 8051.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Code    []byte                // Code memory.
	ExtData []byte                // External data memory.
	Lower   [LOWER_DATA_SIZE]byte // Lower internal RAM.
	Upper   []byte                // Upper internal RAM, or nil if absent.
	SFR     [SFR_SIZE]byte        // Special function registers, 0x80-0xFF.

	PC        int // Program counter.
	TickDelay int // Ticks remaining before the next fetch or interrupt check.

	Ops [256]Operation // Opcode handlers.
	Dec [256]Decoder   // Opcode disassemblers.

	Except   func(cpu *Cpu, code Exception)       // Exceptional situation report.
	SfrRead  func(cpu *Cpu, addr int) byte        // SFR about to be read; returns the value seen.
	SfrWrite func(cpu *Cpu, addr int)             // SFR has been written.
	XRead    func(cpu *Cpu, addr int) byte        // External memory read override.
	XWrite   func(cpu *Cpu, addr int, value byte) // External memory write override.

	InterruptActive int         // INTERRUPT_LOW and/or INTERRUPT_HIGH.
	Snapshot        [2]Snapshot // Per-level state at vector time; [0] low, [1] high.

	Ticks        int // Ticks since reset.
	Instructions int // Instructions executed since reset.

	isa InstructionSet
}

func isPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// NewCpu creates a new CPU with the memory geometry of cfg.
func NewCpu(cfg Config) (cpu *Cpu, err error) {
	if !isPowerOfTwo(cfg.CodeSize) || cfg.CodeSize < CODE_SIZE_MIN || cfg.CodeSize > MEMORY_SIZE_MAX {
		err = ErrCodeSize
		return
	}

	if cfg.ExtDataSize != 0 && (!isPowerOfTwo(cfg.ExtDataSize) || cfg.ExtDataSize > MEMORY_SIZE_MAX) {
		err = ErrExtDataSize
		return
	}

	cpu = &Cpu{
		Code:    make([]byte, cfg.CodeSize),
		ExtData: make([]byte, cfg.ExtDataSize),
		isa:     cfg.InstructionSet,
	}

	if cfg.UpperData {
		cpu.Upper = make([]byte, UPPER_DATA_SIZE)
	}

	return
}

// Reset the CPU state. Must be called before Tick.
//   - Installs the opcode and decoder tables.
//   - If wipe is set, zeros all memory regions.
//   - Zeros the SFR bank, then sets SP to 7 and all port latches to 0xFF.
//   - Clears the interrupt bookkeeping and the statistics counters.
func (cpu *Cpu) Reset(wipe bool) {
	if cpu.Verbose {
		log.Printf("cpu: reset (wipe %v)", wipe)
	}

	if wipe {
		clear(cpu.Code)
		clear(cpu.ExtData)
		clear(cpu.Lower[:])
		clear(cpu.Upper)
	}

	clear(cpu.SFR[:])

	cpu.PC = 0
	cpu.TickDelay = 0
	cpu.SFR[REG_SP] = 7
	for _, port := range []int{REG_P0, REG_P1, REG_P2, REG_P3, REG_P4, REG_P5} {
		cpu.SFR[port] = 0xff
	}

	for n := range 256 {
		var op Operation
		var dec Decoder
		if cpu.isa != nil {
			op = cpu.isa.Operation(byte(n))
			dec = cpu.isa.Decoder(byte(n))
		}
		if op == nil {
			op = reservedOperation
		}
		if dec == nil {
			dec = reservedDecoder
		}
		cpu.Ops[n] = op
		cpu.Dec[n] = dec
	}

	cpu.InterruptActive = 0
	cpu.Snapshot = [2]Snapshot{}
	cpu.Ticks = 0
	cpu.Instructions = 0
}

// reservedOperation reports the opcode and skips it.
func reservedOperation(cpu *Cpu) int {
	cpu.Report(EXCEPTION_ILLEGAL_OPCODE)
	cpu.PC++
	return 1
}

func reservedDecoder(cpu *Cpu, pos int) (text string, length int) {
	return "db " + translate.Hex(int(cpu.ReadCode(pos)), 2) + "h", 1
}

// Tick runs one tick of the processor, twelve oscillator cycles.
// Returns true if a new instruction was executed.
func (cpu *Cpu) Tick() (ticked bool) {
	if cpu.TickDelay > 0 {
		cpu.TickDelay--
	}

	// Interrupts are only taken on an instruction boundary.
	if cpu.TickDelay == 0 {
		cpu.handleInterrupts()
	}

	if cpu.TickDelay == 0 {
		opcode := cpu.ReadCode(cpu.PC)
		if cpu.Verbose {
			text, _ := cpu.Decode(cpu.PC)
			log.Printf("cpu: %04X: %v", cpu.PC&0xffff, text)
		}
		cpu.TickDelay = max(cpu.Ops[opcode](cpu), 0)
		cpu.Instructions++
		ticked = true
	}

	cpu.updateParity()

	cpu.timerTick()

	cpu.Ticks++

	return
}

// updateParity sets PSW.P so that ACC plus P hold an even number of ones.
func (cpu *Cpu) updateParity() {
	psw := cpu.SFR[REG_PSW] &^ PSW_P
	if bits.OnesCount8(cpu.SFR[REG_ACC])&1 == 1 {
		psw |= PSW_P
	}
	cpu.SFR[REG_PSW] = psw
}

// Decode disassembles the instruction at pos.
func (cpu *Cpu) Decode(pos int) (text string, length int) {
	return cpu.Dec[cpu.ReadCode(pos)](cpu, pos)
}

// Report an exceptional situation to the exception hook.
func (cpu *Cpu) Report(code Exception) {
	if cpu.Verbose {
		log.Printf("cpu: %04X: exception %v", cpu.PC&0xffff, code)
	}

	if cpu.Except != nil {
		cpu.Except(cpu, code)
	}
}

// Symbols iterates over the named SFRs and their current latch values.
func (cpu *Cpu) Symbols() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for reg, name := range sfrNames {
			if !yield(name, int(cpu.SFR[reg])) {
				return
			}
		}
	}
}

// Registers iterates over R0-R7 of the selected register bank.
func (cpu *Cpu) Registers() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for n := range 8 {
			if !yield(fmt.Sprintf("r%d", n), int(cpu.Reg(n))) {
				return
			}
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"acc", "b", "psw", "sp", "dptr",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"tcon", "tmod", "t0", "t1",
		"ien0", "ip1",
		"active",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.PC&0xffff)
		case "dptr":
			strval = fmt.Sprintf("%04X", cpu.Dptr())
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%02X", cpu.Reg(int(reg[1]-'0')))
		case "psw":
			psw := cpu.SFR[REG_PSW]
			strval = fmt.Sprintf("%02X ", psw)
			for n, flag := range "CAFRROFP" {
				if psw&(0x80>>n) == 0 {
					flag = '-'
				}
				strval += string(flag)
			}
		case "t0":
			strval = fmt.Sprintf("%02X%02X", cpu.SFR[REG_TH0], cpu.SFR[REG_TL0])
		case "t1":
			strval = fmt.Sprintf("%02X%02X", cpu.SFR[REG_TH1], cpu.SFR[REG_TL1])
		case "active":
			strval = fmt.Sprintf("%d", cpu.InterruptActive)
		default:
			for addr, name := range sfrNames {
				if name == reg {
					strval = fmt.Sprintf("%02X", cpu.SFR[addr])
				}
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}
