package loader

import (
	"errors"

	"github.com/ezrec/emu8051/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrOpen       = errors.New(f("unable to open"))
	ErrFormat     = errors.New(f("unsupported file format"))
	ErrRecordType = errors.New(f("unsupported record type"))
	ErrChecksum   = errors.New(f("checksum failure"))
	ErrTruncated  = errors.New(f("missing end of file record"))
)

// ErrFile indicates the file an error occurred in.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}

// Status codes returned by Status.
const (
	STATUS_OK          = 0
	STATUS_OPEN        = -1
	STATUS_FORMAT      = -2
	STATUS_RECORD_TYPE = -3
	STATUS_CHECKSUM    = -4
	STATUS_TRUNCATED   = -5
	STATUS_OTHER       = -6
)

// Status maps a loader error to its numeric status code.
func Status(err error) int {
	switch {
	case err == nil:
		return STATUS_OK
	case errors.Is(err, ErrOpen):
		return STATUS_OPEN
	case errors.Is(err, ErrFormat):
		return STATUS_FORMAT
	case errors.Is(err, ErrRecordType):
		return STATUS_RECORD_TYPE
	case errors.Is(err, ErrChecksum):
		return STATUS_CHECKSUM
	case errors.Is(err, ErrTruncated):
		return STATUS_TRUNCATED
	}

	return STATUS_OTHER
}
