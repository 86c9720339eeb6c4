// Caf packs a directory tree into a COMES archive. The tree is walked
// depth first with files before subdirectories, matching the order the
// index declares them in.
//
// Usage:
//
//	caf <input-directory> <output-file.caf>
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
	var verbose, quiet bool

	flagSet := pflag.NewFlagSet("caf", pflag.ContinueOnError)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	flagSet.BoolVarP(&quiet, "quiet", "q", false, "suppress the summary line")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	args := flagSet.Args()
	if len(args) != 2 {
		printUsage(flagSet)
		return errors.New("expected <input-directory> and <output-file.caf>")
	}
	inputDir, outputPath := args[0], args[1]

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", inputDir)
	}

	builder := caf.NewBuilder()
	if err := builder.AddFS(os.DirFS(inputDir), ""); err != nil {
		return err
	}
	archive := builder.Finish()
	logger.Info("archive assembled", "entries", len(archive.Index), "files", len(archive.Files))

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	written, err := archive.WriteTo(out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if !quiet {
		var payloadBytes uint64
		for _, p := range archive.Files {
			payloadBytes += uint64(len(p))
		}
		fmt.Printf("%s: %d entries, %s of file data, %s written\n",
			outputPath, len(archive.Index),
			humanize.IBytes(payloadBytes), humanize.IBytes(uint64(written)))
	}
	return nil
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: caf [flags] <input-directory> <output-file.caf>

Packs a directory tree into a COMES archive.

Flags:
%s`, flagSet.FlagUsages())
}
