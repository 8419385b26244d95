package cpu

// Timer modes, from the two TMOD mode bits of a timer.
const (
	TIMER_MODE_13BIT  = 0 // 13-bit counter: TL low 5 bits, then TH.
	TIMER_MODE_16BIT  = 1 // 16-bit counter.
	TIMER_MODE_RELOAD = 2 // 8-bit TL, reloaded from TH on overflow.
	TIMER_MODE_SPLIT  = 3 // Timer 0: TL0 and TH0 as two 8-bit counters. Timer 1: stopped.
)

// timerIncrement returns how far a timer advances this tick.
// Counter mode (C/T set) and gating by the INTx pin (GATE set) are not
// modelled, and never advance the timer.
func (cpu *Cpu) timerIncrement(gate, run, ct byte) int {
	tmod := cpu.SFR[REG_TMOD]
	if tmod&gate != 0 || cpu.SFR[REG_TCON]&run == 0 {
		return 0
	}

	if tmod&ct != 0 {
		return 0
	}

	return 1
}

// inc8 increments an 8-bit timer register, and reports its overflow.
func (cpu *Cpu) inc8(reg int) (overflow bool) {
	cpu.SFR[reg]++
	return cpu.SFR[reg] == 0
}

// count advances a timer register pair in mode 0, 1 or 2, and reports its
// overflow.
func (cpu *Cpu) count(mode byte, tl, th int) (overflow bool) {
	switch mode {
	case TIMER_MODE_13BIT:
		low := cpu.SFR[tl]&0x1f + 1
		cpu.SFR[tl] = (cpu.SFR[tl] &^ 0x1f) | (low & 0x1f)
		if low > 0x1f {
			overflow = cpu.inc8(th)
		}
	case TIMER_MODE_16BIT:
		if cpu.inc8(tl) {
			overflow = cpu.inc8(th)
		}
	case TIMER_MODE_RELOAD:
		if cpu.inc8(tl) {
			cpu.SFR[tl] = cpu.SFR[th]
			overflow = true
		}
	}

	return
}

// timerTick advances timers 0 and 1 by one tick.
func (cpu *Cpu) timerTick() {
	tmod := cpu.SFR[REG_TMOD]
	mode0 := tmod & (TMOD_M0_0 | TMOD_M1_0)
	mode1 := (tmod & (TMOD_M0_1 | TMOD_M1_1)) >> 4

	run0 := cpu.timerIncrement(TMOD_GATE_0, TCON_TR0, TMOD_CT_0) != 0
	run1 := cpu.timerIncrement(TMOD_GATE_1, TCON_TR1, TMOD_CT_1) != 0

	// In split mode, TF1 belongs to TH0.
	split := mode0 == TIMER_MODE_SPLIT

	if split {
		if run0 && cpu.inc8(REG_TL0) {
			cpu.SFR[REG_TCON] |= TCON_TF0
		}
		if run1 && cpu.inc8(REG_TH0) {
			cpu.SFR[REG_TCON] |= TCON_TF1
		}
	} else if run0 {
		if cpu.count(mode0, REG_TL0, REG_TH0) {
			cpu.SFR[REG_TCON] |= TCON_TF0
		}
	}

	if run1 && mode1 != TIMER_MODE_SPLIT {
		if cpu.count(mode1, REG_TL1, REG_TH1) && !split {
			cpu.SFR[REG_TCON] |= TCON_TF1
		}
	}
}
