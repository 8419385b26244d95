// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/ezrec/emu8051/cpu"
	"github.com/ezrec/emu8051/isa"
	"github.com/ezrec/emu8051/loader"
	"github.com/ezrec/emu8051/monitor"
	"github.com/ezrec/emu8051/peripheral"
)

const (
	CODE_SIZE_DEFAULT = 65536    // Code memory when none is configured.
	CLOCK_HZ_DEFAULT  = 12000000 // Oscillator of the reference board.
	CYCLES_PER_TICK   = 12       // Oscillator cycles per tick.
	PACE_INTERVAL     = 1000     // Ticks between wall clock adjustments.
	EXCEPTIONS_MAX    = 256      // Exceptions retained; later ones are only counted.
)

// Config describes an emulator.
type Config struct {
	CodeSize       int                // Code memory size; zero selects CODE_SIZE_DEFAULT.
	ExtDataSize    int                // External data size; may be zero.
	UpperData      bool               // If set, upper internal RAM is present.
	InstructionSet cpu.InstructionSet // Instruction set; nil selects isa.NewSubset.
	ClockHz        int                // Oscillator frequency to pace Run to; zero runs unpaced.
	Strict         bool               // If set, exceptions stop Tick and Run.
	Verbose        bool               // If set, enables verbose logging.
}

// Emulator state. CPU + peripheral devices.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	Strict   bool // If set, exceptions are returned as errors.
	ClockHz  int  // Oscillator frequency to pace Run to; zero runs unpaced.
	*cpu.Cpu      // Reference to the CPU simulation.

	devices        []peripheral.Device
	readers        []peripheral.SfrReader
	exceptions     []*ErrRuntime
	exceptionCount int
	tickErr        *ErrRuntime

	paceStart time.Time
	paceTicks int
}

// NewEmulator creates a new emulator, reset and ready to load.
func NewEmulator(cfg Config) (emu *Emulator, err error) {
	if cfg.CodeSize == 0 {
		cfg.CodeSize = CODE_SIZE_DEFAULT
	}

	if cfg.InstructionSet == nil {
		cfg.InstructionSet = isa.NewSubset()
	}

	mcu, err := cpu.NewCpu(cpu.Config{
		CodeSize:       cfg.CodeSize,
		ExtDataSize:    cfg.ExtDataSize,
		UpperData:      cfg.UpperData,
		InstructionSet: cfg.InstructionSet,
	})
	if err != nil {
		return
	}

	emu = &Emulator{
		Verbose: cfg.Verbose,
		Strict:  cfg.Strict,
		ClockHz: cfg.ClockHz,
		Cpu:     mcu,
	}

	emu.Cpu.Except = emu.except
	emu.Cpu.SfrRead = emu.readSFR

	emu.Reset(true)

	return
}

func (emu *Emulator) except(mcu *cpu.Cpu, code cpu.Exception) {
	ex := &ErrRuntime{PC: mcu.PC & 0xffff, Err: code}

	emu.exceptionCount++
	if len(emu.exceptions) < EXCEPTIONS_MAX {
		emu.exceptions = append(emu.exceptions, ex)
	}

	if emu.tickErr == nil {
		emu.tickErr = ex
	}
}

// readSFR passes an SFR read through every attached reader.
func (emu *Emulator) readSFR(mcu *cpu.Cpu, addr int) (value byte) {
	value = mcu.SFR[addr-0x80]
	for _, reader := range emu.readers {
		value = reader.ReadSFR(mcu, addr, value)
	}

	return
}

// Attach a device, stepped after every tick of the CPU.
func (emu *Emulator) Attach(dev peripheral.Device) {
	emu.devices = append(emu.devices, dev)

	if reader, ok := dev.(peripheral.SfrReader); ok {
		emu.readers = append(emu.readers, reader)
	}
}

// Reset the CPU and every device. If wipe is set, memory is cleared.
func (emu *Emulator) Reset(wipe bool) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(wipe)

	for _, dev := range emu.devices {
		dev.Reset()
	}

	emu.exceptions = nil
	emu.exceptionCount = 0
	emu.tickErr = nil
	emu.paceStart = time.Time{}
}

// LoadHex loads an Intel HEX file into code memory.
func (emu *Emulator) LoadHex(path string) (err error) {
	if emu.Verbose {
		log.Printf("emulator: load hex %v", path)
	}

	return loader.LoadHexFile(path, emu.Cpu.Code)
}

// LoadRaw loads a raw binary file into external data memory.
func (emu *Emulator) LoadRaw(path string) (err error) {
	if emu.Verbose {
		log.Printf("emulator: load raw %v", path)
	}

	return loader.LoadRawFile(path, emu.Cpu.ExtData)
}

// Exceptions returns the first EXCEPTIONS_MAX exceptions reported since
// the last reset.
func (emu *Emulator) Exceptions() []*ErrRuntime {
	return emu.exceptions
}

// ExceptionCount returns the number of exceptions reported since the last
// reset, including those not retained.
func (emu *Emulator) ExceptionCount() int {
	return emu.exceptionCount
}

// Tick performs a single tick of the emulator.
// In strict mode, the first exception reported during the tick is
// returned as an error.
func (emu *Emulator) Tick() (ticked bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	emu.tickErr = nil

	ticked = emu.Cpu.Tick()

	for _, dev := range emu.devices {
		dev.Tick(emu.Cpu)
	}

	if emu.Strict && emu.tickErr != nil {
		err = emu.tickErr
	}

	return
}

// Run ticks until the condition holds after a tick, limit ticks have
// elapsed, or Tick returns an error. A nil condition never holds, and a
// zero limit is unlimited.
func (emu *Emulator) Run(until *monitor.Condition, limit int) (ticks int, err error) {
	emu.paceStart = time.Time{}

	for limit == 0 || ticks < limit {
		_, err = emu.Tick()
		ticks++
		if err != nil {
			return
		}

		emu.pace(ticks)

		if until != nil {
			var done bool
			done, err = until.Eval(emu.Cpu)
			if err != nil || done {
				return
			}
		}
	}

	return
}

// pace sleeps while the emulated clock is ahead of the wall clock.
func (emu *Emulator) pace(ticks int) {
	if emu.ClockHz <= 0 {
		return
	}

	if emu.paceStart.IsZero() {
		emu.paceStart = time.Now()
		emu.paceTicks = ticks
		return
	}

	if (ticks-emu.paceTicks)%PACE_INTERVAL != 0 {
		return
	}

	seconds := float64(ticks-emu.paceTicks) * CYCLES_PER_TICK / float64(emu.ClockHz)
	emulated := time.Duration(seconds * float64(time.Second))
	ahead := emulated - time.Since(emu.paceStart)
	if ahead > 0 {
		time.Sleep(ahead)
	}
}

// Close the emulator, closing every device that is an io.Closer.
func (emu *Emulator) Close() (err error) {
	var errs []error
	for _, dev := range emu.devices {
		if closer, ok := dev.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}

	err = errors.Join(errs...)
	return
}
