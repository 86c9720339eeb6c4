package caf

import "strings"

// validateComponent checks a single path component. Names are written to
// the wire verbatim and terminated by a newline, so newlines (and NULs,
// which the filesystems below would reject anyway) are forbidden here
// rather than trusted to never occur.
func validateComponent(name string) *NameError {
	switch {
	case name == "":
		return &NameError{Name: name, Reason: "empty"}
	case name == "." || name == "..":
		return &NameError{Name: name, Reason: "path component is " + name}
	case strings.ContainsRune(name, 0):
		return &NameError{Name: name, Reason: "contains NUL"}
	case strings.ContainsRune(name, '\n'):
		return &NameError{Name: name, Reason: "contains newline"}
	}
	return nil
}

// validateFileName checks a file entry name: one component, no separators.
func validateFileName(name string) error {
	if strings.ContainsRune(name, '/') {
		return &NameError{Name: name, Reason: "file name contains '/'"}
	}
	if err := validateComponent(name); err != nil {
		return err
	}
	return nil
}

// validateDirPath checks a directory entry path: non-empty, with every
// "/"-separated component well formed.
func validateDirPath(path string) error {
	if path == "" {
		return &NameError{Name: path, Reason: "empty"}
	}
	for _, part := range strings.Split(path, "/") {
		if err := validateComponent(part); err != nil {
			return &NameError{Name: path, Reason: err.Reason}
		}
	}
	return nil
}
