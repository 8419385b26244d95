package cpu

// Special function register addresses, as offsets into the SFR bank.
// The map follows the SAB 80C515/80C535.
const (
	REG_P0    = 0x80 - 0x80 // Port 0
	REG_SP    = 0x81 - 0x80 // Stack Pointer
	REG_DPL   = 0x82 - 0x80 // Data Pointer, Low Byte
	REG_DPH   = 0x83 - 0x80 // Data Pointer, High Byte
	REG_PCON  = 0x87 - 0x80 // Power Control Register
	REG_TCON  = 0x88 - 0x80 // Timer Control Register
	REG_TMOD  = 0x89 - 0x80 // Timer Mode Register
	REG_TL0   = 0x8A - 0x80 // Timer 0, Low Byte
	REG_TL1   = 0x8B - 0x80 // Timer 1, Low Byte
	REG_TH0   = 0x8C - 0x80 // Timer 0, High Byte
	REG_TH1   = 0x8D - 0x80 // Timer 1, High Byte
	REG_P1    = 0x90 - 0x80 // Port 1
	REG_SCON  = 0x98 - 0x80 // Serial Channel Control
	REG_SBUF  = 0x99 - 0x80 // Serial Channel Buffer
	REG_P2    = 0xA0 - 0x80 // Port 2
	REG_IEN0  = 0xA8 - 0x80 // Interrupt Enable 0
	REG_IP0   = 0xA9 - 0x80 // Interrupt Priority 0
	REG_P3    = 0xB0 - 0x80 // Port 3
	REG_IEN1  = 0xB8 - 0x80 // Interrupt Enable 1
	REG_IP1   = 0xB9 - 0x80 // Interrupt Priority 1
	REG_IRCON = 0xC0 - 0x80 // Interrupt Request Control
	REG_CCEN  = 0xC1 - 0x80 // Compare/Capture Enable
	REG_CCL1  = 0xC2 - 0x80 // Compare/Capture 1, Low Byte
	REG_CCH1  = 0xC3 - 0x80 // Compare/Capture 1, High Byte
	REG_CCL2  = 0xC4 - 0x80 // Compare/Capture 2, Low Byte
	REG_CCH2  = 0xC5 - 0x80 // Compare/Capture 2, High Byte
	REG_CCL3  = 0xC6 - 0x80 // Compare/Capture 3, Low Byte
	REG_CCH3  = 0xC7 - 0x80 // Compare/Capture 3, High Byte
	REG_T2CON = 0xC8 - 0x80 // Timer 2 Control
	REG_CRCL  = 0xCA - 0x80 // Compare/Reload/Capture, Low Byte
	REG_CRCH  = 0xCB - 0x80 // Compare/Reload/Capture, High Byte
	REG_TL2   = 0xCC - 0x80 // Timer 2, Low Byte
	REG_TH2   = 0xCD - 0x80 // Timer 2, High Byte
	REG_PSW   = 0xD0 - 0x80 // Program Status Word
	REG_ADCON = 0xD8 - 0x80 // A/D Converter Control
	REG_ADDAT = 0xD9 - 0x80 // A/D Converter Data
	REG_DAPR  = 0xDA - 0x80 // D/A Converter Program
	REG_P6    = 0xDB - 0x80 // Port 6, Analog/Digital Input
	REG_ACC   = 0xE0 - 0x80 // Accumulator
	REG_P4    = 0xE8 - 0x80 // Port 4
	REG_B     = 0xF0 - 0x80 // B Register
	REG_P5    = 0xF8 - 0x80 // Port 5
)

// PSW bits.
const (
	PSW_P   = 0x01 // Parity
	PSW_F1  = 0x02 // User flag 1
	PSW_OV  = 0x04 // Overflow
	PSW_RS0 = 0x08 // Register bank select 0
	PSW_RS1 = 0x10 // Register bank select 1
	PSW_F0  = 0x20 // User flag 0
	PSW_AC  = 0x40 // Auxiliary carry
	PSW_CY  = 0x80 // Carry
)

// IEN0 bits.
const (
	IEN0_EX0 = 0x01
	IEN0_ET0 = 0x02
	IEN0_EX1 = 0x04
	IEN0_ET1 = 0x08
	IEN0_ES  = 0x10
	IEN0_ET2 = 0x20
	IEN0_WDT = 0x40
	IEN0_EA  = 0x80
)

// IP1 bits; a set bit selects high priority for the source.
const (
	IP1_IE0      = 0x01
	IP1_TF0      = 0x02
	IP1_IE1      = 0x04
	IP1_TF1      = 0x08
	IP1_RI_TI    = 0x10
	IP1_TF2_EXF2 = 0x20
)

// TCON bits.
const (
	TCON_IT0 = 0x01
	TCON_IE0 = 0x02
	TCON_IT1 = 0x04
	TCON_IE1 = 0x08
	TCON_TR0 = 0x10
	TCON_TF0 = 0x20
	TCON_TR1 = 0x40
	TCON_TF1 = 0x80
)

// TMOD bits.
const (
	TMOD_M0_0   = 0x01
	TMOD_M1_0   = 0x02
	TMOD_CT_0   = 0x04
	TMOD_GATE_0 = 0x08
	TMOD_M0_1   = 0x10
	TMOD_M1_1   = 0x20
	TMOD_CT_1   = 0x40
	TMOD_GATE_1 = 0x80
)

// SCON bits.
const (
	SCON_RI = 0x01
	SCON_TI = 0x02
)

// IRCON bits.
const (
	IRCON_IADC = 0x01
	IRCON_IEX2 = 0x02
	IRCON_IEX3 = 0x04
	IRCON_IEX4 = 0x08
	IRCON_IEX5 = 0x10
	IRCON_IEX6 = 0x20
	IRCON_TF2  = 0x40
	IRCON_EXF2 = 0x80
)

// sfrNames names the registers of the SFR bank, for dumps and the monitor.
var sfrNames = map[int]string{
	REG_P0:    "p0",
	REG_SP:    "sp",
	REG_DPL:   "dpl",
	REG_DPH:   "dph",
	REG_PCON:  "pcon",
	REG_TCON:  "tcon",
	REG_TMOD:  "tmod",
	REG_TL0:   "tl0",
	REG_TL1:   "tl1",
	REG_TH0:   "th0",
	REG_TH1:   "th1",
	REG_P1:    "p1",
	REG_SCON:  "scon",
	REG_SBUF:  "sbuf",
	REG_P2:    "p2",
	REG_IEN0:  "ien0",
	REG_IP0:   "ip0",
	REG_P3:    "p3",
	REG_IEN1:  "ien1",
	REG_IP1:   "ip1",
	REG_IRCON: "ircon",
	REG_CCEN:  "ccen",
	REG_CCL1:  "ccl1",
	REG_CCH1:  "cch1",
	REG_CCL2:  "ccl2",
	REG_CCH2:  "cch2",
	REG_CCL3:  "ccl3",
	REG_CCH3:  "cch3",
	REG_T2CON: "t2con",
	REG_CRCL:  "crcl",
	REG_CRCH:  "crch",
	REG_TL2:   "tl2",
	REG_TH2:   "th2",
	REG_PSW:   "psw",
	REG_ADCON: "adcon",
	REG_ADDAT: "addat",
	REG_DAPR:  "dapr",
	REG_P6:    "p6",
	REG_ACC:   "acc",
	REG_P4:    "p4",
	REG_B:     "b",
	REG_P5:    "p5",
}

// SfrName returns the register name of an SFR address (0x80-0xFF), or
// the empty string if the address is unassigned.
func SfrName(addr int) string {
	return sfrNames[addr-0x80]
}
