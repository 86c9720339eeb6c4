package caf

import (
	"bufio"
	"io"

	"github.com/comes-group/caf/internal/wire"
)

// Wire literals. Every keyword carries its trailing space.
const (
	magic        = "CAF "
	keywordIndex = "INDEKS "
	keywordDir   = "KATALOG "
	keywordFile  = "PLIK "
	keywordSize  = "ROZMIAR "
)

// countingWriter tracks bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo encodes the archive to w and returns the number of bytes
// written. The archive is validated first; nothing is written for an
// archive that violates the index invariants.
//
// WriteTo implements io.WriterTo.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	if err := a.validate(); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	scratch := make([]byte, 0, 64)

	scratch = append(scratch, magic...)
	scratch = wire.AppendByte(scratch, a.Version)
	scratch = append(scratch, '\n')
	scratch = append(scratch, keywordIndex...)
	scratch = wire.AppendUint64(scratch, uint64(len(a.Index)))
	scratch = append(scratch, '\n')
	if _, err := bw.Write(scratch); err != nil {
		return cw.n, err
	}

	for _, e := range a.Index {
		kw := keywordDir
		if e.Kind == EntryFile {
			kw = keywordFile
		}
		scratch = append(scratch[:0], kw...)
		scratch = append(scratch, e.Name...)
		scratch = append(scratch, '\n')
		if _, err := bw.Write(scratch); err != nil {
			return cw.n, err
		}
	}

	enc := wire.NewRunEncoder(bw)
	for _, payload := range a.Files {
		scratch = append(scratch[:0], keywordSize...)
		scratch = wire.AppendUint64(scratch, uint64(len(payload)))
		if _, err := bw.Write(scratch); err != nil {
			return cw.n, err
		}
		// The payload encoding opens with the newline that closes the
		// size line and ends with its own closing newline.
		if err := enc.EncodePayload(payload); err != nil {
			return cw.n, err
		}
	}

	if err := bw.WriteByte('\n'); err != nil {
		return cw.n, err
	}
	err := bw.Flush()
	return cw.n, err
}
