package peripheral

import (
	"bufio"
	"io"

	"github.com/ezrec/emu8051/cpu"
)

// RECORDER_MAGIC starts every port recording.
const RECORDER_MAGIC = "BIN"

// PortRecorder writes the P5 latch to a byte stream every tick, after a
// three byte magic.
type PortRecorder struct {
	output io.Writer
	buffer *bufio.Writer
	err    error
}

var _ Device = (*PortRecorder)(nil)

// NewPortRecorder starts a recording on output.
func NewPortRecorder(output io.Writer) (pr *PortRecorder) {
	pr = &PortRecorder{
		output: output,
		buffer: bufio.NewWriter(output),
	}

	_, pr.err = pr.buffer.WriteString(RECORDER_MAGIC)

	return
}

// Reset does nothing; a recording spans resets.
func (pr *PortRecorder) Reset() {
}

// Tick records P5.
func (pr *PortRecorder) Tick(mcu *cpu.Cpu) {
	if pr.err != nil {
		return
	}

	pr.err = pr.buffer.WriteByte(mcu.SFR[cpu.REG_P5])
}

// Close flushes the recording, and closes the output if it is an io.Closer.
func (pr *PortRecorder) Close() (err error) {
	err = pr.err
	if err == nil {
		err = pr.buffer.Flush()
	}

	if closer, ok := pr.output.(io.Closer); ok {
		cerr := closer.Close()
		if err == nil {
			err = cerr
		}
	}

	return
}
