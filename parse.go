package caf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/comes-group/caf/internal/wire"
)

// DefaultMaxEntries bounds the index entry count a parse will allocate
// for when no ParseWithMaxEntries option is set.
const DefaultMaxEntries = 1_000_000

// ParseOption configures Parse and ParseReader.
type ParseOption func(*parseConfig)

type parseConfig struct {
	maxEntries      int
	maxPayloadBytes uint64
}

// ParseWithMaxEntries caps the declared index entry count. Values <= 0
// remove the cap. The default is DefaultMaxEntries.
func ParseWithMaxEntries(n int) ParseOption {
	return func(c *parseConfig) {
		c.maxEntries = n
	}
}

// ParseWithMaxPayloadBytes caps the declared size of any single payload.
// Zero, the default, means no cap.
func ParseWithMaxPayloadBytes(n uint64) ParseOption {
	return func(c *parseConfig) {
		c.maxPayloadBytes = n
	}
}

// IsArchive reports whether data begins with the archive magic "CAF ".
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, []byte(magic))
}

// Parse decodes a complete archive from data.
//
// The whole input must be in memory: numeral recognition needs unbounded
// lookahead, so there is no incremental variant. Input without the "CAF "
// magic is reported as ErrBadMagic; framing failures are reported as
// *SyntaxError with the byte offset; names violating the index invariants
// are reported as *NameError.
func Parse(data []byte, opts ...ParseOption) (*Archive, error) {
	cfg := parseConfig{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := wire.NewScanner(data)
	if !s.Try(magic) {
		return nil, ErrBadMagic
	}
	version := s.Byte()
	if err := s.ExpectNewline(); err != nil {
		return nil, err
	}
	if version > FormatVersion {
		return nil, fmt.Errorf("caf: archive version %d: %w", version, ErrUnsupportedVersion)
	}

	if err := s.Expect(keywordIndex); err != nil {
		return nil, err
	}
	countOff := s.Offset()
	count := s.Uint64()
	if err := s.ExpectNewline(); err != nil {
		return nil, err
	}
	if cfg.maxEntries > 0 && count > uint64(cfg.maxEntries) {
		return nil, fmt.Errorf("caf: offset %d: index declares %d entries: %w", countOff, count, ErrTooManyEntries)
	}

	index := make([]IndexEntry, 0, min(count, 1024))
	fileCount := 0
	for range count {
		entryOff := s.Offset()
		var kind EntryKind
		switch {
		case s.Try(keywordDir):
			kind = EntryDirectory
		case s.Try(keywordFile):
			kind = EntryFile
			fileCount++
		default:
			return nil, &SyntaxError{
				Offset: entryOff,
				Msg:    fmt.Sprintf("expected %q or %q, found %q", keywordDir, keywordFile, s.Context()),
			}
		}
		name, err := s.Line()
		if err != nil {
			return nil, err
		}
		entry := IndexEntry{Kind: kind, Name: string(name)}
		if kind == EntryDirectory {
			err = validateDirPath(entry.Name)
		} else {
			err = validateFileName(entry.Name)
		}
		if err != nil {
			return nil, err
		}
		index = append(index, entry)
	}

	files := make([][]byte, 0, fileCount)
	for i := range fileCount {
		if err := s.Expect(keywordSize); err != nil {
			return nil, err
		}
		sizeOff := s.Offset()
		size := s.Uint64()
		if err := s.ExpectNewline(); err != nil {
			return nil, err
		}
		if cfg.maxPayloadBytes > 0 && size > cfg.maxPayloadBytes {
			return nil, fmt.Errorf("caf: offset %d: payload %d declares %d bytes: %w", sizeOff, i, size, ErrPayloadTooLarge)
		}
		payload, err := wire.DecodePayload(s, size)
		if err != nil {
			return nil, err
		}
		files = append(files, payload)
	}

	// The closing newline of the archive is expected but tolerated when
	// absent.
	s.Try("\n")

	return &Archive{Version: version, Index: index, Files: files}, nil
}

// ParseReader buffers r fully and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("caf: reading archive: %w", err)
	}
	return Parse(data, opts...)
}
