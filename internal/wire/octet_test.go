package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePayload(t *testing.T, p []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRunEncoder(&buf).EncodePayload(p))
	return buf.Bytes()
}

func TestEncodePayloadEmpty(t *testing.T) {
	assert.Equal(t, "\n", string(encodePayload(t, nil)))
}

func TestEncodePayloadSingleByte(t *testing.T) {
	// One byte pads to a full group; the padding shows up as zero limbs.
	got := encodePayload(t, []byte{0x41})
	assert.Equal(t, "\nsześćdziesiąt pięć<<zero<<zero<<zero<<zero<<zero<<zero<<zero\n", string(got))
}

func TestEncodePayloadRunCollapse(t *testing.T) {
	// 64 zero bytes are 8 identical groups: one line with a run suffix.
	got := encodePayload(t, make([]byte, 64))
	assert.Equal(t, "\nzero X osiem\n", string(got))
}

func TestEncodePayloadFirstOctetHasNoRunSuffix(t *testing.T) {
	// A single group never gets a suffix, even though its run is 1.
	got := encodePayload(t, make([]byte, 8))
	assert.Equal(t, "\nzero\n", string(got))
}

func TestEncodePayloadMixedRuns(t *testing.T) {
	p := make([]byte, 0, 32)
	p = append(p, bytes.Repeat([]byte{0}, 16)...) // two zero groups
	p = append(p, 0, 0, 0, 0, 0, 0, 0, 1)         // one group of value 1
	p = append(p, 0, 0, 0, 0, 0, 0, 0, 1)         // repeated
	got := string(encodePayload(t, p))
	assert.Equal(t, "\nzero X dwa\njeden X dwa\n", got)
}

func TestPayloadRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":          {},
		"one byte":       {0xFF},
		"seven bytes":    []byte("abcdefg"),
		"exactly eight":  []byte("Hello, w"),
		"thirteen":       []byte("Hello, world!"),
		"all zeros":      make([]byte, 64),
		"sixty-three":    bytes.Repeat([]byte{0xAB}, 63),
		"sixty-five":     bytes.Repeat([]byte{0xCD}, 65),
		"trailing zeros": append(bytes.Repeat([]byte{7}, 24), 0, 0, 0),
	}
	var counting []byte
	for i := range 300 {
		counting = append(counting, byte(i))
	}
	payloads["counting"] = counting

	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			enc := encodePayload(t, p)
			s := NewScanner(enc[1:]) // drop the line-opening newline the size header owns
			got, err := DecodePayload(s, uint64(len(p)))
			require.NoError(t, err)
			assert.Equal(t, p, got)
			// The last line's newline closes the payload; nothing remains.
			assert.True(t, s.EOF())
		})
	}
}

func TestDecodePayloadTruncatesPadding(t *testing.T) {
	s := NewScanner([]byte("sześćdziesiąt pięć<<zero<<zero<<zero<<zero<<zero<<zero<<zero\n"))
	got, err := DecodePayload(s, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, got)
}

func TestDecodePayloadRunOverrun(t *testing.T) {
	// Declared size covers one group, the run claims two.
	s := NewScanner([]byte("zero X dwa\n"))
	_, err := DecodePayload(s, 8)
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, syntaxErr.Msg, "overruns")
}

func TestDecodePayloadZeroRun(t *testing.T) {
	s := NewScanner([]byte("zero X zero\n"))
	_, err := DecodePayload(s, 8)
	require.Error(t, err)
}

func TestDecodePayloadHundredsBeforeRunMarker(t *testing.T) {
	// A bare hundreds numeral gives back the space it probed, so the run
	// marker after it still frames.
	s := NewScanner([]byte("sto X dwa\n"))
	got, err := DecodePayload(s, 16)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0, 0, 0, 0, 0, 0, 0, 100}, 2), got)
}

func TestDecodePayloadBareTensBeforeRunMarker(t *testing.T) {
	// Only the hundreds probe is reclaimed. A bare tens numeral eats the
	// run marker's leading space, so such a stream cannot be framed and
	// is rejected rather than misread.
	s := NewScanner([]byte("dziewięćdziesiąt X dwa\n"))
	_, err := DecodePayload(s, 16)
	require.Error(t, err)
}

func TestDecodePayloadMissingNewline(t *testing.T) {
	s := NewScanner([]byte("zero"))
	_, err := DecodePayload(s, 8)
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, len("zero"), syntaxErr.Offset)
}

func TestDecodePayloadUnderrun(t *testing.T) {
	// Stream ends before the declared size is reached.
	s := NewScanner([]byte("zero\n"))
	_, err := DecodePayload(s, 16)
	require.Error(t, err)
}

func TestEncodePayloadResetBetweenCalls(t *testing.T) {
	// Run state must not leak from one payload into the next: the same
	// octet value opening the next payload is a fresh line, not a run.
	var buf bytes.Buffer
	enc := NewRunEncoder(&buf)
	require.NoError(t, enc.EncodePayload(make([]byte, 8)))
	require.NoError(t, enc.EncodePayload(make([]byte, 8)))
	assert.Equal(t, "\nzero\n\nzero\n", buf.String())
}

func TestEncodedFormShape(t *testing.T) {
	// Alternating group values never collapse: one line per group, and no
	// run suffix anywhere.
	p := []byte(strings.Repeat("0123456789abcdef", 4))
	enc := string(encodePayload(t, p))
	lines := strings.Split(strings.Trim(enc, "\n"), "\n")
	assert.Len(t, lines, 8)
	assert.NotContains(t, enc, " X ")
}
