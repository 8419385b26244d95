package peripheral

import (
	"errors"

	"github.com/ezrec/emu8051/translate"
)

var f = translate.From

var (
	// Device errors
	ErrPort  = errors.New(f("no such port"))
	ErrClock = errors.New(f("clock frequency must be positive"))
)
