package caf

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/comes-group/caf/internal/pathutil"
)

// Builder accumulates index entries and payloads in order and produces a
// well-formed Archive. The zero value is ready to use.
//
// A Builder is the only mutable phase of an archive's life; Finish hands
// the accumulated state to the returned Archive and leaves the Builder
// empty and reusable.
type Builder struct {
	index []IndexEntry
	files [][]byte
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ChangeDirectory appends a directory marker. Every "/"-separated
// component of p must be a well-formed name. A failed validation leaves
// the builder unchanged and usable.
func (b *Builder) ChangeDirectory(p string) error {
	if err := validateDirPath(p); err != nil {
		return err
	}
	b.index = append(b.index, IndexEntry{Kind: EntryDirectory, Name: p})
	return nil
}

// Add appends a file marker and its payload. The name must be a single
// well-formed component; data may be empty and is retained, not copied.
// A failed validation leaves the builder unchanged and usable.
func (b *Builder) Add(name string, data []byte) error {
	if err := validateFileName(name); err != nil {
		return err
	}
	b.index = append(b.index, IndexEntry{Kind: EntryFile, Name: name})
	b.files = append(b.files, data)
	return nil
}

// Finish transfers the accumulated index and payloads into a completed
// archive with the current format version.
func (b *Builder) Finish() *Archive {
	a := &Archive{
		Version: FormatVersion,
		Index:   b.index,
		Files:   b.files,
	}
	b.index = nil
	b.files = nil
	return a
}

// AddFS ingests a directory tree. If prefix is non-empty it is recorded as
// a directory marker first and all ingested paths land beneath it;
// otherwise the tree's root files land at the unpack root.
//
// Within each directory all regular files are added before any
// subdirectory is descended into, and the traversal is depth first.
// Entries that are neither regular files nor directories are ignored.
// Child order within each group is whatever fsys yields.
func (b *Builder) AddFS(fsys fs.FS, prefix string) error {
	if prefix != "" {
		if err := b.ChangeDirectory(prefix); err != nil {
			return err
		}
	}
	return b.addDir(fsys, ".", prefix)
}

func (b *Builder) addDir(fsys fs.FS, dir, prefix string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("caf: reading directory %q: %w", dir, err)
	}

	var subdirs []string
	for _, e := range entries {
		switch {
		case e.Type().IsRegular():
			data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
			if err != nil {
				return fmt.Errorf("caf: reading file %q: %w", path.Join(dir, e.Name()), err)
			}
			if err := b.Add(e.Name(), data); err != nil {
				return err
			}
		case e.IsDir():
			subdirs = append(subdirs, e.Name())
		}
	}

	for _, name := range subdirs {
		sub := pathutil.Join(prefix, name)
		if err := b.ChangeDirectory(sub); err != nil {
			return err
		}
		if err := b.addDir(fsys, path.Join(dir, name), sub); err != nil {
			return err
		}
	}
	return nil
}
