package isa

import (
	"strings"

	"github.com/ezrec/emu8051/cpu"
	"github.com/ezrec/emu8051/translate"
)

func hex8(value byte) string {
	return translate.Hex(int(value), 2) + "h"
}

func hex16(value int) string {
	return translate.Hex(value&0xffff, 4) + "h"
}

func direct(value byte) string {
	if value >= 0x80 {
		if name := cpu.SfrName(int(value)); name != "" {
			return name
		}
	}
	return hex8(value)
}

func bitName(value byte) string {
	bit := int(value)
	if bit < 0x80 {
		return hex8(byte(0x20+bit>>3)) + "." + string(rune('0'+bit&7))
	}
	return direct(byte(bit&0xf8)) + "." + string(rune('0'+bit&7))
}

// decoder renders an instruction from a format. Each verb consumes the
// next instruction byte:
//
//	%i immediate
//	%d direct address
//	%b bit address
//	%r relative jump target
//	%a 16-bit address (two bytes)
//
// %n and %@ name Rn and @Ri from the opcode, and %D names the direct
// address one byte past the next, without consuming it.
func decoder(length int, format string) cpu.Decoder {
	return func(mcu *cpu.Cpu, pos int) (text string, n int) {
		opcode := mcu.ReadCode(pos)
		at := pos + 1

		var sb strings.Builder
		for i := 0; i < len(format); i++ {
			c := format[i]
			if c != '%' || i+1 == len(format) {
				sb.WriteByte(c)
				continue
			}
			i++
			switch format[i] {
			case 'i':
				sb.WriteString(hex8(mcu.ReadCode(at)))
				at++
			case 'd':
				sb.WriteString(direct(mcu.ReadCode(at)))
				at++
			case 'D':
				sb.WriteString(direct(mcu.ReadCode(at + 1)))
			case 'b':
				sb.WriteString(bitName(mcu.ReadCode(at)))
				at++
			case 'r':
				sb.WriteString(hex16(pos + length + int(int8(mcu.ReadCode(at)))))
				at++
			case 'a':
				sb.WriteString(hex16(int(mcu.ReadCode(at))<<8 | int(mcu.ReadCode(at+1))))
				at += 2
			case 'n':
				sb.WriteString("r" + string(rune('0'+opcode&7)))
			case '@':
				sb.WriteString("@r" + string(rune('0'+opcode&1)))
			default:
				sb.WriteByte('%')
				sb.WriteByte(format[i])
			}
		}

		text = sb.String()
		n = length
		return
	}
}
