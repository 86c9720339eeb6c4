package wire

import (
	"encoding/binary"
	"io"
)

// runMarker follows an octet numeral when the octet repeats; the total
// repeat count comes after it.
const runMarker = " X "

// octetSize is the width of one payload group in bytes.
const octetSize = 8

// RunEncoder writes file payloads as run-length-compressed octet lines.
//
// Every octet numeral is preceded by the newline that closes the previous
// line, so the first line of a payload closes its size header and the
// payload's own closing newline flushes the final run.
type RunEncoder struct {
	w   io.Writer
	buf []byte

	last    uint64
	run     uint64
	started bool
}

// NewRunEncoder returns an encoder writing to w.
func NewRunEncoder(w io.Writer) *RunEncoder {
	return &RunEncoder{w: w}
}

// EncodePayload writes the encoding of p, including the payload's closing
// newline. The final partial group, if any, is zero padded; the declared
// payload length is what lets the decoder discard the padding.
func (e *RunEncoder) EncodePayload(p []byte) error {
	e.last, e.run, e.started = 0, 0, false
	for off := 0; off < len(p); off += octetSize {
		var group [octetSize]byte
		copy(group[:], p[off:])
		v := binary.BigEndian.Uint64(group[:])
		if e.started && v == e.last {
			e.run++
			continue
		}
		if err := e.emit(v); err != nil {
			return err
		}
	}
	return e.close()
}

// emit flushes the pending run suffix, then starts the line for v.
func (e *RunEncoder) emit(v uint64) error {
	e.buf = e.appendRunSuffix(e.buf[:0])
	e.buf = append(e.buf, '\n')
	e.buf = AppendUint64(e.buf, v)
	e.last, e.run, e.started = v, 1, true
	_, err := e.w.Write(e.buf)
	return err
}

// close flushes the final run suffix and the payload's closing newline.
func (e *RunEncoder) close() error {
	e.buf = e.appendRunSuffix(e.buf[:0])
	e.buf = append(e.buf, '\n')
	_, err := e.w.Write(e.buf)
	return err
}

func (e *RunEncoder) appendRunSuffix(dst []byte) []byte {
	if e.run > 1 {
		dst = append(dst, runMarker...)
		dst = AppendUint64(dst, e.run)
	}
	return dst
}

// DecodePayload reads octet lines from s until size bytes (rounded up to
// whole groups) have been produced, then truncates to size. Each line is
// an octet numeral, an optional run suffix, and a newline.
//
// A run that overruns the declared size is a framing error, as is a line
// that cannot be closed.
func DecodePayload(s *Scanner, size uint64) ([]byte, error) {
	groups := (size + octetSize - 1) / octetSize
	out := make([]byte, 0, groups*octetSize)
	for remaining := groups; remaining > 0; {
		lineOff := s.Offset()
		v := s.Uint64()
		run := uint64(1)
		if s.lit(runMarker) {
			run = s.Uint64()
		}
		if err := s.ExpectNewline(); err != nil {
			return nil, err
		}
		if run == 0 || run > remaining {
			return nil, errorf(lineOff, "octet run of %d overruns remaining %d groups", run, remaining)
		}
		for range run {
			out = binary.BigEndian.AppendUint64(out, v)
		}
		remaining -= run
	}
	return out[:size], nil
}
