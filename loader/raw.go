package loader

import (
	"errors"
	"io"
)

// LoadRaw fills ext from a raw binary stream. A stream shorter than ext
// leaves the remainder untouched.
func LoadRaw(r io.Reader, ext []byte) (err error) {
	_, err = io.ReadFull(r, ext)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}

	return
}

// LoadRawFile fills ext from a raw binary file.
func LoadRawFile(path string, ext []byte) (err error) {
	inf, err := open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = LoadRaw(inf, ext)
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
	}

	return
}
