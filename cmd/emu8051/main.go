// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/emu8051/emulator"
	"github.com/ezrec/emu8051/loader"
	"github.com/ezrec/emu8051/monitor"
	"github.com/ezrec/emu8051/peripheral"
)

func main() {
	var hexfile string
	var rawfile string
	var codeSize int
	var xdataSize int
	var upper bool
	var clockHz int
	var until string
	var ticks int
	var strict bool
	var trace bool
	var verbose bool
	var wavfile string
	var binfile string
	var dumpfile string
	var lcd bool

	flag.StringVar(&hexfile, "hex", "", "Intel HEX file to load into code memory")
	flag.StringVar(&rawfile, "raw", "", "Raw binary file to load into external data memory")
	flag.IntVar(&codeSize, "code", emulator.CODE_SIZE_DEFAULT, "Code memory size in bytes")
	flag.IntVar(&xdataSize, "xdata", 65536, "External data memory size in bytes")
	flag.BoolVar(&upper, "upper", true, "Upper 128 bytes of internal RAM present")
	flag.IntVar(&clockHz, "clock", 0, "Oscillator frequency in Hz to pace execution to; 0 runs unpaced")
	flag.StringVar(&until, "until", "", "Stop when this expression is true, for example 'pc == 0x30'")
	flag.IntVar(&ticks, "ticks", 1000000, "Stop after this many ticks; 0 is unlimited")
	flag.BoolVar(&strict, "strict", false, "Stop on the first exception")
	flag.BoolVar(&trace, "trace", false, "Print every instruction as it executes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&wavfile, "wav", "", "Record P3.7 to this WAV file")
	flag.StringVar(&binfile, "bin", "", "Record P5 every tick to this file")
	flag.StringVar(&dumpfile, "dump", "", "Write external data memory to this Intel HEX file on exit")
	flag.BoolVar(&lcd, "lcd", false, "Attach a 2x16 character display (P4.0-2 control, P5 data out, P1 data in)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(hexfile) == 0 {
		log.Fatalf("%v: -hex is required", os.Args[0])
	}

	var cond *monitor.Condition
	if len(until) != 0 {
		var err error
		cond, err = monitor.Compile(until)
		if err != nil {
			log.Fatal(err)
		}
	}

	emu, err := emulator.NewEmulator(emulator.Config{
		CodeSize:    codeSize,
		ExtDataSize: xdataSize,
		UpperData:   upper,
		ClockHz:     clockHz,
		Strict:      strict,
		Verbose:     verbose,
	})
	if err != nil {
		log.Fatal(err)
	}

	err = emu.LoadHex(hexfile)
	if err != nil {
		log.Fatalf("%v (status %d)", err, loader.Status(err))
	}

	if len(rawfile) != 0 {
		err = emu.LoadRaw(rawfile)
		if err != nil {
			log.Fatalf("%v (status %d)", err, loader.Status(err))
		}
	}

	emu.Attach(peripheral.NewPins())
	emu.Attach(&peripheral.ShiftRegisters{})

	hz := clockHz
	if hz == 0 {
		hz = emulator.CLOCK_HZ_DEFAULT
	}

	var display *peripheral.CharDisplay
	if lcd {
		display, err = peripheral.NewCharDisplay(hz)
		if err != nil {
			log.Fatalf("-lcd: %v", err)
		}
		emu.Attach(display)
	}

	if len(wavfile) != 0 {
		ouf, err := os.Create(wavfile)
		if err != nil {
			log.Fatalf("%v: %v", wavfile, err)
		}
		as, err := peripheral.NewAudioSampler(ouf, hz)
		if err != nil {
			log.Fatalf("%v: %v", wavfile, err)
		}
		emu.Attach(as)
	}

	if len(binfile) != 0 {
		ouf, err := os.Create(binfile)
		if err != nil {
			log.Fatalf("%v: %v", binfile, err)
		}
		emu.Attach(peripheral.NewPortRecorder(ouf))
	}

	emu.Reset(false)

	var total int
	if trace {
		total, err = runTrace(emu, cond, ticks)
	} else {
		total, err = emu.Run(cond, ticks)
	}

	if cerr := emu.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}

	if len(dumpfile) != 0 {
		derr := dump(dumpfile, emu.Cpu.ExtData)
		if derr != nil {
			err = errors.Join(err, derr)
		}
	}

	fmt.Printf("ticks: %d, instructions: %d, exceptions: %d\n", total, emu.Cpu.Instructions, emu.ExceptionCount())
	fmt.Print(emu.Cpu.String())

	if display != nil {
		for _, line := range display.Lines() {
			fmt.Printf("[%v]\n", line)
		}
	}

	for _, ex := range emu.Exceptions() {
		log.Print(ex)
	}
	if more := emu.ExceptionCount() - len(emu.Exceptions()); more > 0 {
		log.Printf("... and %d more exceptions", more)
	}

	if err != nil {
		var er *emulator.ErrRuntime
		if errors.As(err, &er) {
			text, _ := emu.Cpu.Decode(er.PC)
			log.Printf("stopped at: %v", text)
		}
		log.Fatal(err)
	}
}

// runTrace runs like Emulator.Run, printing each instruction as it
// executes. Trace output is not paced.
func runTrace(emu *emulator.Emulator, cond *monitor.Condition, limit int) (ticks int, err error) {
	for limit == 0 || ticks < limit {
		pc := emu.Cpu.PC

		var ticked bool
		ticked, err = emu.Tick()
		ticks++

		if ticked {
			text, _ := emu.Cpu.Decode(pc)
			fmt.Printf("%04X: %v\n", pc&0xffff, text)
		}

		if err != nil {
			return
		}

		if cond != nil {
			var done bool
			done, err = cond.Eval(emu.Cpu)
			if err != nil || done {
				return
			}
		}
	}

	return
}

func dump(path string, data []byte) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer ouf.Close()

	err = loader.EncodeHex(ouf, data, 0)
	if err != nil {
		return
	}

	err = ouf.Close()
	return
}
