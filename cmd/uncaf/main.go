// Uncaf unpacks a COMES archive into a directory tree, or lists its
// index without extracting.
//
// Usage:
//
//	uncaf <input-file.caf> <output-directory>
//	uncaf --list <input-file.caf>
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/comes-group/caf"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var list, overwrite, verbose bool

	flagSet := pflag.NewFlagSet("uncaf", pflag.ContinueOnError)
	flagSet.BoolVarP(&list, "list", "l", false, "print the index and exit without extracting")
	flagSet.BoolVar(&overwrite, "overwrite", false, "replace existing files instead of skipping them")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	args := flagSet.Args()
	if list && len(args) == 1 {
		args = append(args, "")
	}
	if len(args) != 2 {
		printUsage(flagSet)
		return errors.New("expected <input-file.caf> and <output-directory>")
	}
	inputPath, destDir := args[0], args[1]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	if !caf.IsArchive(data) {
		return fmt.Errorf("%s: not a COMES archive", inputPath)
	}
	archive, err := caf.Parse(data)
	if err != nil {
		return err
	}

	if list {
		printIndex(archive)
		return nil
	}

	opts := []caf.UnpackOption{caf.UnpackWithOverwrite(overwrite)}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, caf.UnpackWithLogger(logger))
	}
	return archive.UnpackTo(destDir, opts...)
}

// printIndex writes one line per entry, with payload sizes for files.
func printIndex(a *caf.Archive) {
	next := 0
	for entry := range a.Entries() {
		switch entry.Kind {
		case caf.EntryDirectory:
			fmt.Printf("%s/\n", entry.Name)
		case caf.EntryFile:
			fmt.Printf("%s (%s)\n", entry.Name, humanize.IBytes(uint64(len(a.Files[next]))))
			next++
		}
	}
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: uncaf [flags] <input-file.caf> <output-directory>

Unpacks a COMES archive into a directory tree. With --list, prints the
archive index instead of extracting.

Flags:
%s`, flagSet.FlagUsages())
}
