package emulator

import (
	"github.com/ezrec/emu8051/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime exception.
type ErrRuntime struct {
	PC  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %v %v", translate.Hex(err.PC, 4), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
