// Package cpu implements the processor core of an 8051-family
// microcontroller, stepped one tick (twelve oscillator cycles) at a time.
//
// The core owns the memory model (code, external data, lower and upper
// internal RAM, and the SFR bank), the tick scheduler, the two-level
// interrupt controller and the timer 0/1 peripheral. Instruction semantics
// and disassembly are supplied by an InstructionSet, installed at Reset.
//
// A Cpu is not safe for concurrent use. Hooks are called synchronously
// from within Tick and must not call Tick themselves.
package cpu
