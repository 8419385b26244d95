package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("checksum mismatch", From("checksum mismatch"))
	assert.Contains(From("record at line %d", 7), "7")
}

func TestHex(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("00", Hex(0, 2))
	assert.Equal("0B", Hex(0x0b, 2))
	assert.Equal("1234", Hex(0x1234, 4))
	assert.Equal("34", Hex(0x1234, 2))
	assert.Equal("FFFF", Hex(-1, 4))
	assert.Equal("0000ABCD", Hex(0xabcd, 8))
}
