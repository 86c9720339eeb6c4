// Package wire implements the textual layer of the CAF format: a byte
// cursor with cheap rollback, the Polish cardinal-numeral codec, and the
// run-length octet codec for file payloads.
//
// The numeral grammar needs arbitrary lookahead (many words share
// prefixes, and a consumed space may turn out to belong to the caller),
// so everything operates on a fully buffered input.
package wire

import (
	"bytes"
	"fmt"
)

// SyntaxError reports a framing failure at a byte offset in the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("caf: offset %d: %s", e.Offset, e.Msg)
}

func errorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Scanner is a cursor over a buffered archive. Rollback is a plain offset
// assignment; nothing is consumed destructively.
type Scanner struct {
	data []byte
	off  int
}

// NewScanner returns a scanner positioned at the start of data.
// The scanner aliases data and never modifies it.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Offset returns the current byte offset.
func (s *Scanner) Offset() int { return s.off }

// EOF reports whether the cursor has reached the end of the input.
func (s *Scanner) EOF() bool { return s.off >= len(s.data) }

// lit consumes the literal w if it is next, reporting whether it did.
func (s *Scanner) lit(w string) bool {
	end := s.off + len(w)
	if end > len(s.data) || string(s.data[s.off:end]) != w {
		return false
	}
	s.off = end
	return true
}

// Try consumes the literal w if it is next, reporting whether it did.
func (s *Scanner) Try(w string) bool { return s.lit(w) }

// Expect consumes the literal w or fails with the offending context.
func (s *Scanner) Expect(w string) error {
	if s.lit(w) {
		return nil
	}
	return errorf(s.off, "expected %q, found %q", w, s.Context())
}

// ExpectNewline consumes a single line feed.
func (s *Scanner) ExpectNewline() error {
	if s.lit("\n") {
		return nil
	}
	return errorf(s.off, "expected newline, found %q", s.Context())
}

// Line consumes and returns the bytes up to the next line feed. The line
// feed is consumed but not included.
func (s *Scanner) Line() ([]byte, error) {
	i := bytes.IndexByte(s.data[s.off:], '\n')
	if i < 0 {
		return nil, errorf(s.off, "unterminated line")
	}
	line := s.data[s.off : s.off+i]
	s.off += i + 1
	return line, nil
}

// Context returns a short slice of upcoming input for diagnostics.
func (s *Scanner) Context() string {
	const window = 16
	rest := s.data[s.off:]
	if len(rest) > window {
		rest = rest[:window]
	}
	return string(rest)
}
