package wire

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendByte(t *testing.T) {
	tests := []struct {
		n    byte
		want string
	}{
		{0, "zero"},
		{1, "jeden"},
		{2, "dwa"},
		{7, "siedem"},
		{9, "dziewięć"},
		{10, "dziesięć"},
		{11, "jedenaście"},
		{15, "piętnaście"},
		{19, "dziewiętnaście"},
		{20, "dwadzieścia"},
		{21, "dwadzieścia jeden"},
		{30, "trzydzieści"},
		{40, "czterdzieści"},
		{42, "czterdzieści dwa"},
		{50, "pięćdziesiąt"},
		{55, "pięćdziesiąt pięć"},
		{60, "sześćdziesiąt"},
		{70, "siedemdziesiąt"},
		{80, "osiemdziesiąt"},
		{90, "dziewięćdziesiąt"},
		{99, "dziewięćdziesiąt dziewięć"},
		{100, "sto"},
		{101, "sto jeden"},
		{110, "sto dziesięć"},
		{111, "sto jedenaście"},
		{119, "sto dziewiętnaście"},
		{120, "sto dwadzieścia"},
		{142, "sto czterdzieści dwa"},
		{150, "sto pięćdziesiąt"},
		{200, "dwieście"},
		{213, "dwieście trzynaście"},
		{240, "dwieście czterdzieści"},
		{255, "dwieście pięćdziesiąt pięć"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendByte(nil, tt.n)))
		})
	}
}

func TestByteRoundTrip(t *testing.T) {
	for n := 0; n <= 255; n++ {
		word := AppendByte(nil, byte(n))
		s := NewScanner(word)
		got := s.Byte()
		require.Equal(t, byte(n), got, "word %q", word)
		require.True(t, s.EOF(), "word %q left %d bytes unconsumed", word, len(word)-s.Offset())
	}
}

func TestByteParseWithTrailingInput(t *testing.T) {
	// The byte parser must stop exactly at the word boundary so the
	// framing grammar sees the following delimiter.
	tests := []struct {
		input string
		want  byte
		rest  string
	}{
		{"zero\n", 0, "\n"},
		{"jeden<<dwa", 1, "<<dwa"},
		{"trzynaście\n", 13, "\n"},
		{"czterdzieści\n", 40, "\n"},
		{"czterdzieści<<zero", 40, "<<zero"},
		{"dwieście pięćdziesiąt pięć\n", 255, "\n"},
		// A bare hundreds word gives its probed space back.
		{"sto\n", 100, "\n"},
		{"sto X dwa", 100, " X dwa"},
		{"dwieście<<jeden", 200, "<<jeden"},
		{"sto KATALOG", 100, " KATALOG"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewScanner([]byte(tt.input))
			assert.Equal(t, tt.want, s.Byte())
			assert.Equal(t, tt.rest, tt.input[s.Offset():])
		})
	}
}

func TestByteParseUnrecognized(t *testing.T) {
	s := NewScanner([]byte("KATALOG foo\n"))
	assert.Equal(t, byte(0), s.Byte())
	assert.Equal(t, 0, s.Offset())
}

func TestAppendUint64(t *testing.T) {
	tests := []struct {
		v    uint64
		want string
	}{
		{0, "zero"},
		{5, "pięć"},
		{255, "dwieście pięćdziesiąt pięć"},
		{256, "jeden<<zero"},
		{258, "jeden<<dwa"},
		{0x0102, "jeden<<dwa"},
		{0xFF00, "dwieście pięćdziesiąt pięć<<zero"},
		{0x010000, "jeden<<zero<<zero"},
		{0x4100000000000000, "sześćdziesiąt pięć<<zero<<zero<<zero<<zero<<zero<<zero<<zero"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendUint64(nil, tt.v)))
		})
	}
}

func TestUint64RoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 9, 10, 19, 20, 99, 100, 199, 200, 255,
		256, 258, 1000, 65535, 65536,
		0xDEADBEEF, 0x0102030405060708,
		1<<32 - 1, 1 << 32, 1 << 56, 1<<63 - 1, 1 << 63, ^uint64(0),
	}
	// Every single-limb pattern in every limb position.
	for limb := range 8 {
		for _, b := range []uint64{1, 0x42, 0xFF} {
			values = append(values, b<<(8*limb))
		}
	}
	for _, v := range values {
		t.Run(fmt.Sprintf("%#x", v), func(t *testing.T) {
			text := AppendUint64(nil, v)
			s := NewScanner(text)
			require.Equal(t, v, s.Uint64(), "text %q", text)
			require.True(t, s.EOF())
		})
	}
}

func TestUint64StopsAtNonSeparator(t *testing.T) {
	s := NewScanner([]byte("jeden<<dwa X trzy\n"))
	assert.Equal(t, uint64(258), s.Uint64())
	assert.Equal(t, " X trzy\n", string([]byte("jeden<<dwa X trzy\n")[s.Offset():]))
}
