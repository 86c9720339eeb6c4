package caf

import (
	"errors"
	"iter"
)

// FormatVersion is the archive version this package emits and the highest
// version it will parse.
const FormatVersion = 1

// EntryKind distinguishes the two index entry variants.
type EntryKind uint8

const (
	// EntryDirectory sets the current directory used while unpacking.
	// Its name may contain "/" and is resolved from the unpack root,
	// not from the previously seen directory.
	EntryDirectory EntryKind = iota

	// EntryFile assigns the next unconsumed payload to a file with this
	// base name under the current directory. Its name must not contain "/".
	EntryFile
)

func (k EntryKind) String() string {
	switch k {
	case EntryDirectory:
		return "directory"
	case EntryFile:
		return "file"
	default:
		return "unknown"
	}
}

// IndexEntry is one member of the archive index.
type IndexEntry struct {
	Kind EntryKind
	Name string
}

// Archive is the in-memory representation of one archive: a version byte,
// an ordered index, and the file payloads in index order.
//
// The k-th payload in Files belongs to the k-th EntryFile encountered in a
// left-to-right walk of Index.
type Archive struct {
	Version byte
	Index   []IndexEntry
	Files   [][]byte
}

// Entries returns an iterator over the index in order.
func (a *Archive) Entries() iter.Seq[IndexEntry] {
	return func(yield func(IndexEntry) bool) {
		for _, e := range a.Index {
			if !yield(e) {
				return
			}
		}
	}
}

// FileCount returns the number of file entries in the index.
func (a *Archive) FileCount() int {
	n := 0
	for _, e := range a.Index {
		if e.Kind == EntryFile {
			n++
		}
	}
	return n
}

// validate checks the archive invariants: every name is well formed for
// its kind and the payload count matches the file entry count.
func (a *Archive) validate() error {
	fileCount := 0
	for _, e := range a.Index {
		switch e.Kind {
		case EntryDirectory:
			if err := validateDirPath(e.Name); err != nil {
				return err
			}
		case EntryFile:
			fileCount++
			if err := validateFileName(e.Name); err != nil {
				return err
			}
		default:
			return errors.New("caf: index entry with unknown kind")
		}
	}
	if fileCount != len(a.Files) {
		return errors.New("caf: index file entries do not match payload count")
	}
	return nil
}
