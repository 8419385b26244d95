package cpu

import (
	"errors"

	"github.com/ezrec/emu8051/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrCodeSize    = errors.New(f("code memory size must be a power of two from 1KiB to 64KiB"))
	ErrExtDataSize = errors.New(f("external data size must be a power of two up to 64KiB"))
)

// Exception is a categorical code passed to the exception hook when the
// core, or an instruction, detects an anomalous situation. Exceptions are
// advisory; execution continues.
type Exception int

//go:generate go tool stringer -linecomment -type=Exception
const (
	EXCEPTION_STACK             = Exception(0) // stack
	EXCEPTION_ACC_TO_A          = Exception(1) // acc-to-a
	EXCEPTION_IRET_PSW_MISMATCH = Exception(2) // iret-psw-mismatch
	EXCEPTION_IRET_SP_MISMATCH  = Exception(3) // iret-sp-mismatch
	EXCEPTION_IRET_ACC_MISMATCH = Exception(4) // iret-acc-mismatch
	EXCEPTION_ILLEGAL_OPCODE    = Exception(5) // illegal-opcode
)

func (ex Exception) Error() string {
	return f("exception %v", ex.String())
}

func (ex Exception) Is(err error) (ok bool) {
	other, ok := err.(Exception)
	return ok && other == ex
}
