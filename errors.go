package caf

import (
	"errors"
	"fmt"

	"github.com/comes-group/caf/internal/wire"
)

// SyntaxError reports a framing failure: an expected keyword or newline
// was not found at the given byte offset.
type SyntaxError = wire.SyntaxError

// Sentinel errors.
var (
	// ErrBadMagic is returned when the input does not start with the
	// archive magic "CAF ".
	ErrBadMagic = errors.New("caf: not a CAF archive")

	// ErrUnsupportedVersion is returned when an archive declares a version
	// newer than FormatVersion.
	ErrUnsupportedVersion = errors.New("caf: unsupported archive version")

	// ErrTooManyEntries is returned when the declared index entry count
	// exceeds the configured limit.
	ErrTooManyEntries = errors.New("caf: too many index entries")

	// ErrPayloadTooLarge is returned when a declared payload size exceeds
	// the configured limit.
	ErrPayloadTooLarge = errors.New("caf: payload too large")
)

// NameError describes why an entry name failed validation.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("caf: invalid name %q: %s", e.Name, e.Reason)
}
