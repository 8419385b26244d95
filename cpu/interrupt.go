package cpu

import (
	"log"
)

// Source is an interrupt source, in tie-break scan order.
type Source int

//go:generate go tool stringer -linecomment -type=Source
const (
	SOURCE_EXT0   = Source(0) // ext0
	SOURCE_TIMER0 = Source(1) // timer0
	SOURCE_EXT1   = Source(2) // ext1
	SOURCE_TIMER1 = Source(3) // timer1
	SOURCE_SERIAL = Source(4) // serial
	SOURCE_TIMER2 = Source(5) // timer2
)

// interruptSource describes where a source's request, enable and priority
// bits live, and where it vectors to.
type interruptSource struct {
	vector   int
	request  int  // SFR holding the request flags.
	flags    byte // Request flags; any set bit requests service.
	enable   byte // IEN0 enable bit.
	priority byte // IP1 priority bit.
}

var interruptSources = [...]interruptSource{
	SOURCE_EXT0:   {0x03, REG_TCON, TCON_IE0, IEN0_EX0, IP1_IE0},
	SOURCE_TIMER0: {0x0b, REG_TCON, TCON_TF0, IEN0_ET0, IP1_TF0},
	SOURCE_EXT1:   {0x13, REG_TCON, TCON_IE1, IEN0_EX1, IP1_IE1},
	SOURCE_TIMER1: {0x1b, REG_TCON, TCON_TF1, IEN0_ET1, IP1_TF1},
	SOURCE_SERIAL: {0x23, REG_SCON, SCON_RI | SCON_TI, IEN0_ES, IP1_RI_TI},
	// TODO: confirm the timer 2 vector against an 8052 data sheet; 0x2B is unverified.
	SOURCE_TIMER2: {0x2b, REG_IRCON, IRCON_TF2 | IRCON_EXF2, IEN0_ET2, IP1_TF2_EXF2},
}

// Vector returns the code address of the source's service routine.
func (src Source) Vector() int {
	return interruptSources[src].vector
}

// requested returns true if the source is both requesting and enabled.
func (cpu *Cpu) requested(src Source) bool {
	is := &interruptSources[src]
	return cpu.SFR[REG_IEN0]&is.enable != 0 && cpu.SFR[is.request]&is.flags != 0
}

// Pending returns the sources that are requesting service and enabled,
// in scan order. Returns nil while interrupts are globally disabled.
func (cpu *Cpu) Pending() (srcs []Source) {
	if cpu.SFR[REG_IEN0]&IEN0_EA == 0 {
		return
	}

	for src := range Source(len(interruptSources)) {
		if cpu.requested(src) {
			srcs = append(srcs, src)
		}
	}

	return
}

// resolve picks the source to vector to. The first requesting source is
// the low priority candidate; every requesting source with its priority
// bit set replaces it, so the last high priority source in scan order wins.
func (cpu *Cpu) resolve() (src Source, high bool, ok bool) {
	for _, candidate := range cpu.Pending() {
		if !ok {
			src = candidate
			ok = true
		}
		if cpu.SFR[REG_IP1]&interruptSources[candidate].priority != 0 {
			src = candidate
			high = true
		}
	}

	return
}

// handleInterrupts vectors to a service routine if one is due.
func (cpu *Cpu) handleInterrupts() {
	// A high priority routine can't be interrupted.
	if cpu.InterruptActive > INTERRUPT_LOW {
		return
	}

	src, high, ok := cpu.resolve()
	if !ok {
		return
	}

	// A low priority routine can only be interrupted by a high one.
	if cpu.InterruptActive == INTERRUPT_LOW && !high {
		return
	}

	cpu.vector(src, high)
}

// vector performs the hardware LCALL into a service routine.
func (cpu *Cpu) vector(src Source, high bool) {
	if cpu.Verbose {
		log.Printf("cpu: %04X: interrupt %v (high %v)", cpu.PC&0xffff, src, high)
	}

	cpu.Push(byte(cpu.PC))
	cpu.Push(byte(cpu.PC >> 8))
	cpu.PC = src.Vector()

	// Two ticks, as no instruction was in flight to absorb the LCALL.
	cpu.TickDelay = 2

	switch src {
	case SOURCE_TIMER0:
		cpu.SFR[REG_TCON] &^= TCON_TF0
	case SOURCE_TIMER1:
		cpu.SFR[REG_TCON] &^= TCON_TF1
	}

	level := 0
	if high {
		cpu.InterruptActive |= INTERRUPT_HIGH
		level = 1
	} else {
		cpu.InterruptActive = INTERRUPT_LOW
	}

	cpu.Snapshot[level] = Snapshot{
		Acc: cpu.SFR[REG_ACC],
		Psw: cpu.SFR[REG_PSW],
		Sp:  cpu.SFR[REG_SP],
	}
}

// ReturnFromInterrupt closes the innermost active service routine,
// reporting any ACC, SP or PSW difference from the state captured when it
// was vectored. PSW.P, PSW.F0 and PSW.F1 are not compared. The caller pops
// the return address afterwards.
func (cpu *Cpu) ReturnFromInterrupt() {
	if cpu.InterruptActive == 0 {
		return
	}

	level := 0
	if cpu.InterruptActive&INTERRUPT_HIGH != 0 {
		level = 1
	}

	snap := &cpu.Snapshot[level]
	const checked = PSW_OV | PSW_RS0 | PSW_RS1 | PSW_AC | PSW_CY

	if snap.Acc != cpu.SFR[REG_ACC] {
		cpu.Report(EXCEPTION_IRET_ACC_MISMATCH)
	}
	if snap.Sp != cpu.SFR[REG_SP] {
		cpu.Report(EXCEPTION_IRET_SP_MISMATCH)
	}
	if snap.Psw&checked != cpu.SFR[REG_PSW]&checked {
		cpu.Report(EXCEPTION_IRET_PSW_MISMATCH)
	}

	if level == 1 {
		cpu.InterruptActive &^= INTERRUPT_HIGH
	} else {
		cpu.InterruptActive = 0
	}
}
