// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package peripheral

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/ezrec/emu8051/cpu"
)

// Audio output format.
const (
	SAMPLE_RATE     = 44100 // Samples per second.
	WAV_HEADER_SIZE = 44    // RIFF, fmt and data chunk headers.
	CYCLES_PER_TICK = 12    // Oscillator cycles per tick.
)

type wavHeader struct {
	Riff          [4]byte
	RiffSize      uint32
	Wave          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

func newWavHeader(samples int) *wavHeader {
	return &wavHeader{
		Riff:          [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      uint32(WAV_HEADER_SIZE - 8 + samples),
		Wave:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        1, // PCM
		Channels:      1,
		SampleRate:    SAMPLE_RATE,
		ByteRate:      SAMPLE_RATE,
		BlockAlign:    1,
		BitsPerSample: 8,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(samples),
	}
}

// AudioSampler records P3.7 as 8-bit mono PCM WAV audio at 44.1kHz.
// Each sample is 0x80 when the pin is high, and 0 when low.
type AudioSampler struct {
	ClockHz int // Oscillator frequency.

	output  io.WriteSeeker
	buffer  *bufio.Writer
	phase   int
	samples int
	err     error
}

var _ Device = (*AudioSampler)(nil)

// NewAudioSampler writes a WAV header to output, to be completed by Close.
func NewAudioSampler(output io.WriteSeeker, clockHz int) (as *AudioSampler, err error) {
	if clockHz <= 0 {
		err = ErrClock
		return
	}

	as = &AudioSampler{
		ClockHz: clockHz,
		output:  output,
		buffer:  bufio.NewWriter(output),
	}

	err = binary.Write(as.buffer, binary.LittleEndian, newWavHeader(0))
	if err != nil {
		as = nil
		return
	}

	return
}

// Samples returns the number of samples recorded.
func (as *AudioSampler) Samples() int {
	return as.samples
}

// Reset restarts the sample clock. Recorded samples are kept.
func (as *AudioSampler) Reset() {
	as.phase = 0
}

// Tick samples P3.7 whenever a sample period has elapsed.
func (as *AudioSampler) Tick(mcu *cpu.Cpu) {
	if as.err != nil {
		return
	}

	as.phase += SAMPLE_RATE * CYCLES_PER_TICK
	if as.phase < as.ClockHz {
		return
	}
	as.phase -= as.ClockHz

	as.err = as.buffer.WriteByte(mcu.SFR[cpu.REG_P3] & 0x80)
	if as.err == nil {
		as.samples++
	}
}

// Close completes the WAV header, and closes the output if it is an
// io.Closer. The output is closed even if the header cannot be completed.
func (as *AudioSampler) Close() (err error) {
	err = as.finish()

	if closer, ok := as.output.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}

	return
}

func (as *AudioSampler) finish() (err error) {
	err = as.err
	if err != nil {
		return
	}

	err = as.buffer.Flush()
	if err != nil {
		return
	}

	_, err = as.output.Seek(0, io.SeekStart)
	if err != nil {
		return
	}

	err = binary.Write(as.output, binary.LittleEndian, newWavHeader(as.samples))
	if err != nil {
		return
	}

	_, err = as.output.Seek(0, io.SeekEnd)
	return
}
