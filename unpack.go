package caf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/comes-group/caf/internal/pathutil"
)

// UnpackOption configures UnpackTo.
type UnpackOption func(*unpackConfig)

type unpackConfig struct {
	overwrite bool
	logger    *slog.Logger
}

// UnpackWithOverwrite allows replacing existing files at target paths.
// By default an existing file is left untouched and its payload is
// consumed and discarded.
func UnpackWithOverwrite(overwrite bool) UnpackOption {
	return func(c *unpackConfig) {
		c.overwrite = overwrite
	}
}

// UnpackWithLogger sets a logger for per-entry progress and skips.
func UnpackWithLogger(logger *slog.Logger) UnpackOption {
	return func(c *unpackConfig) {
		c.logger = logger
	}
}

func (c *unpackConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// UnpackTo materializes the archive beneath destDir, creating it if
// absent. The index is walked left to right: a directory entry becomes
// the current directory (created along with missing parents, and always
// resolved from destDir, never from the previous directory), and a file
// entry writes the next payload under the current directory.
//
// All writes are confined to destDir via os.Root, so no entry can escape
// it. Duplicate directory entries are harmless re-creations; a duplicate
// file lands first-writer-wins under the default skip-on-exists rule.
func (a *Archive) UnpackTo(destDir string, opts ...UnpackOption) error {
	cfg := unpackConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := a.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("caf: creating destination: %w", err)
	}
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return fmt.Errorf("caf: opening destination: %w", err)
	}
	defer root.Close()

	current := "."
	next := 0
	for _, e := range a.Index {
		switch e.Kind {
		case EntryDirectory:
			if err := root.MkdirAll(filepath.FromSlash(e.Name), 0o755); err != nil {
				return fmt.Errorf("caf: creating directory %q: %w", e.Name, err)
			}
			current = e.Name
			cfg.log().Debug("entered directory", "path", e.Name)

		case EntryFile:
			payload := a.Files[next]
			next++
			target := pathutil.Join(current, e.Name)
			if err := writeFile(root, target, payload, &cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeFile creates target and writes payload. Without overwrite, an
// existing file is the one condition that is skipped rather than failed;
// the payload has already been consumed by the caller's walk either way.
func writeFile(root *os.Root, target string, payload []byte, cfg *unpackConfig) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if cfg.overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := root.OpenFile(filepath.FromSlash(target), flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) && !cfg.overwrite {
			cfg.log().Info("skipping existing file", "path", target)
			return nil
		}
		return fmt.Errorf("caf: creating file %q: %w", target, err)
	}
	_, err = f.Write(payload)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("caf: writing file %q: %w", target, err)
	}
	cfg.log().Debug("wrote file", "path", target, "bytes", len(payload))
	return nil
}
