// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package loader

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// Record types.
const (
	RECORD_DATA = 0x00
	RECORD_EOF  = 0x01
)

// RECORD_SIZE is the data length of the records written by EncodeHex.
const RECORD_SIZE = 16

// Verbose enables logging of every record loaded.
var Verbose bool

type hexReader struct {
	*bufio.Reader
	sum byte
}

// next reads two hex digits, and adds the value to the running checksum.
func (hr *hexReader) next() (value byte, err error) {
	var digits [2]byte
	_, err = io.ReadFull(hr.Reader, digits[:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrTruncated
		return
	}
	if err != nil {
		return
	}

	var out [1]byte
	_, err = hex.Decode(out[:], digits[:])
	if err != nil {
		err = ErrFormat
		return
	}

	value = out[0]
	hr.sum += value
	return
}

// skip advances past the next ':', returning false at the end of the stream.
func (hr *hexReader) skip() (found bool, err error) {
	for {
		var c byte
		c, err = hr.ReadByte()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
		if c == ':' {
			found = true
			return
		}
	}
}

// LoadHex loads an Intel HEX record stream into code memory. The length
// of code must be a power of two; addresses wrap on it.
// A stream that ends without an end of file record returns ErrTruncated.
func LoadHex(r io.Reader, code []byte) (err error) {
	hr := &hexReader{Reader: bufio.NewReader(r)}

	c, err := hr.ReadByte()
	if err == io.EOF || (err == nil && c != ':') {
		err = ErrFormat
		return
	}
	if err != nil {
		return
	}

	mask := len(code) - 1

	for {
		hr.sum = 0

		var length, hi, lo, kind byte
		for _, field := range []*byte{&length, &hi, &lo, &kind} {
			*field, err = hr.next()
			if err != nil {
				return
			}
		}

		address := int(hi)<<8 | int(lo)

		switch kind {
		case RECORD_EOF:
			return
		case RECORD_DATA:
		default:
			err = ErrRecordType
			return
		}

		for n := range int(length) {
			var data byte
			data, err = hr.next()
			if err != nil {
				return
			}
			if len(code) > 0 {
				code[(address+n)&mask] = data
			}
		}

		expected := -hr.sum
		var checksum byte
		checksum, err = hr.next()
		if err != nil {
			return
		}
		if checksum != expected {
			if Verbose {
				log.Printf("loader: %04X: checksum %02X, expected %02X", address, checksum, expected)
			}
			err = ErrChecksum
			return
		}

		if Verbose {
			log.Printf("loader: %04X: %d bytes", address, length)
		}

		var found bool
		found, err = hr.skip()
		if err != nil {
			return
		}
		if !found {
			err = ErrTruncated
			return
		}
	}
}

// LoadHexFile loads an Intel HEX file into code memory.
func LoadHexFile(path string, code []byte) (err error) {
	inf, err := open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = LoadHex(inf, code)
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
	}

	return
}

// EncodeHex writes data as Intel HEX data records starting at address base,
// followed by the end of file record.
func EncodeHex(w io.Writer, data []byte, base int) (err error) {
	bw := bufio.NewWriter(w)

	for offset := 0; offset < len(data); offset += RECORD_SIZE {
		chunk := data[offset:min(offset+RECORD_SIZE, len(data))]
		address := (base + offset) & 0xffff

		sum := byte(len(chunk)) + byte(address>>8) + byte(address) + RECORD_DATA
		for _, b := range chunk {
			sum += b
		}

		fmt.Fprintf(bw, ":%02X%04X%02X%X%02X\n", len(chunk), address, RECORD_DATA, chunk, -sum)
	}

	fmt.Fprintf(bw, ":00000001FF\n")

	err = bw.Flush()
	return
}

func open(path string) (inf *os.File, err error) {
	if len(path) == 0 {
		err = &ErrFile{Path: path, Err: ErrOpen}
		return
	}

	inf, err = os.Open(path)
	if err != nil {
		err = &ErrFile{Path: path, Err: errors.Join(ErrOpen, err)}
		return
	}

	return
}
