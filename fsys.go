package caf

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/comes-group/caf/internal/pathutil"
)

// Interface compliance.
var (
	_ fs.FS         = (*archiveFS)(nil)
	_ fs.StatFS     = (*archiveFS)(nil)
	_ fs.ReadFileFS = (*archiveFS)(nil)
	_ fs.ReadDirFS  = (*archiveFS)(nil)
)

// FS returns a read-only filesystem over the archive contents, resolved
// the same way UnpackTo resolves them: directory entries are rooted at
// the top, and of duplicate file paths the first wins.
//
// The returned filesystem implements fs.StatFS, fs.ReadFileFS, and
// fs.ReadDirFS. File data aliases the archive payloads except where the
// fs contract requires a copy.
func (a *Archive) FS() (fs.FS, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	fsys := &archiveFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{".": true},
	}
	current := "."
	next := 0
	for _, e := range a.Index {
		switch e.Kind {
		case EntryDirectory:
			fsys.addDir(e.Name)
			current = e.Name
		case EntryFile:
			payload := a.Files[next]
			next++
			target := pathutil.Join(current, e.Name)
			if _, taken := fsys.files[target]; taken || fsys.dirs[target] {
				continue
			}
			fsys.files[target] = payload
		}
	}
	return fsys, nil
}

// archiveFS is the snapshot behind Archive.FS.
type archiveFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func (f *archiveFS) addDir(p string) {
	for parent := range pathutil.Parents(p) {
		f.dirs[parent] = true
	}
	f.dirs[p] = true
}

func (f *archiveFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if data, ok := f.files[name]; ok {
		return &archiveFile{info: fileInfo(name, data), r: bytes.NewReader(data)}, nil
	}
	if f.dirs[name] {
		return &archiveDir{info: dirInfo(name), entries: f.childEntries(name)}, nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func (f *archiveFS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	if data, ok := f.files[name]; ok {
		return fileInfo(name, data), nil
	}
	if f.dirs[name] {
		return dirInfo(name), nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (f *archiveFS) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	if data, ok := f.files[name]; ok {
		// Callers own the result and may modify it.
		return bytes.Clone(data), nil
	}
	if f.dirs[name] {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

func (f *archiveFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	if _, ok := f.files[name]; ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}
	if !f.dirs[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return f.childEntries(name), nil
}

// childEntries lists the immediate children of dir, sorted by name.
func (f *archiveFS) childEntries(dir string) []fs.DirEntry {
	prefix := pathutil.DirPrefix(dir)
	seen := make(map[string]bool)
	var out []fs.DirEntry

	for p := range f.dirs {
		if p == "." || !strings.HasPrefix(p, prefix) {
			continue
		}
		child, _ := pathutil.Child(p, prefix)
		if !seen[child] {
			seen[child] = true
			out = append(out, fs.FileInfoToDirEntry(dirInfo(child)))
		}
	}
	for p, data := range f.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		child, isSubDir := pathutil.Child(p, prefix)
		if isSubDir || seen[child] {
			continue
		}
		seen[child] = true
		out = append(out, fs.FileInfoToDirEntry(fileInfo(p, data)))
	}

	slices.SortFunc(out, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// entryInfo implements fs.FileInfo for archive files and directories.
type entryInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func fileInfo(p string, data []byte) entryInfo {
	return entryInfo{name: path.Base(p), size: int64(len(data)), mode: 0o444}
}

func dirInfo(p string) entryInfo {
	return entryInfo{name: path.Base(p), mode: fs.ModeDir | 0o555}
}

func (i entryInfo) Name() string       { return i.name }
func (i entryInfo) Size() int64        { return i.size }
func (i entryInfo) Mode() fs.FileMode  { return i.mode }
func (i entryInfo) ModTime() time.Time { return time.Time{} }
func (i entryInfo) IsDir() bool        { return i.mode.IsDir() }
func (i entryInfo) Sys() any           { return nil }

// archiveFile serves one payload.
type archiveFile struct {
	info entryInfo
	r    *bytes.Reader
}

func (f *archiveFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *archiveFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *archiveFile) Close() error               { return nil }

func (f *archiveFile) ReadAt(p []byte, off int64) (int, error) { return f.r.ReadAt(p, off) }

func (f *archiveFile) Seek(offset int64, whence int) (int64, error) {
	return f.r.Seek(offset, whence)
}

// archiveDir serves a directory listing.
type archiveDir struct {
	info    entryInfo
	entries []fs.DirEntry
	pos     int
}

func (d *archiveDir) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *archiveDir) Close() error               { return nil }

func (d *archiveDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: errors.New("is a directory")}
}

func (d *archiveDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := d.entries[d.pos:]
	if n <= 0 {
		d.pos = len(d.entries)
		return remaining, nil
	}
	if len(remaining) == 0 {
		return nil, io.EOF
	}
	if n > len(remaining) {
		n = len(remaining)
	}
	d.pos += n
	return remaining[:n], nil
}
