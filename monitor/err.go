package monitor

import (
	"errors"

	"github.com/ezrec/emu8051/translate"
)

var f = translate.From

var (
	// Condition errors
	ErrEmpty    = errors.New(f("empty expression"))
	ErrNoResult = errors.New(f("expression has no result"))
)

// ErrCondition indicates the expression an error occurred in.
type ErrCondition struct {
	Expr string
	Err  error
}

func (err *ErrCondition) Error() string {
	return f("condition '%v' %v", err.Expr, err.Err)
}

func (err *ErrCondition) Unwrap() error {
	return err.Err
}
