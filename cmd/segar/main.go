// segar packs files into a length-prefixed container split across
// capped-size segment files, and unpacks them again.
//
//	segar encode <max size> <output> <input>...
//	segar decode <output>
//	segar list <output>
//
// The max size is a decimal number with a K, M or G suffix (powers of 1024),
// or 0 for a single unlimited segment.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/segar"
	"github.com/arloliu/segar/archive"
	"github.com/arloliu/segar/format"
	"github.com/arloliu/segar/record"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errUsage marks errors that should be followed by the help text.
var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stderr)
		return 1
	}

	var err error
	switch args[0] {
	case "encode":
		err = runEncode(args[1:], stdout, stderr)
	case "decode":
		err = runDecode(args[1:], stdout, stderr)
	case "list":
		err = runList(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printHelp(stdout)
		return 0
	default:
		err = fmt.Errorf("%w: unknown mode %q", errUsage, args[0])
	}

	if err == nil {
		return 0
	}
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	if errors.Is(err, errUsage) {
		printHelp(stderr)
	}

	return 1
}

type commonFlags struct {
	verbose bool
}

func newFlagSet(name string, stderr io.Writer, common *commonFlags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVarP(&common.verbose, "verbose", "v", false, "log every segment and record")

	return flagSet
}

func (c commonFlags) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var strictNames bool

	flagSet := newFlagSet("encode", stderr, &common)
	flagSet.BoolVar(&strictNames, "strict-names", false, "fail when two inputs share a basename")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) < 3 {
		return fmt.Errorf("%w: encode expects at least 3 arguments, got %d", errUsage, len(rest))
	}

	maxSize, err := format.ParseSize(rest[0])
	if err != nil {
		return fmt.Errorf("parsing the max. output size: %w", err)
	}

	m, err := segar.Encode(rest[1], rest[2:],
		archive.WithMaxSegmentSize(maxSize),
		archive.WithStrictNames(strictNames),
		archive.WithWriterLogger(common.logger(stderr)),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Successfully wrote %d bytes (%s) to %d files.\n",
		m.TotalBytes, humanize.IBytes(m.TotalBytes), m.SegmentCount)

	return nil
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var outDir, logPath string

	flagSet := newFlagSet("decode", stderr, &common)
	flagSet.StringVarP(&outDir, "out-dir", "o", ".", "directory to extract files into")
	flagSet.StringVar(&logPath, "log-file", "", "run log listing extracted names (default: <out-dir>/"+format.LogFileName+")")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("%w: decode expects 1 argument, got %d", errUsage, len(rest))
	}

	logger := common.logger(stderr)
	decoderOpts := []record.DecoderOption{
		record.WithOutputDir(outDir),
		record.WithDecoderLogger(logger),
	}
	if logPath != "" {
		decoderOpts = append(decoderOpts, record.WithLogPath(logPath))
	}

	entries, err := segar.Decode(rest[0], []archive.ReaderOption{archive.WithReaderLogger(logger)}, decoderOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Successfully extracted all %d files.\n", len(entries))

	return nil
}

type listing struct {
	Manifest archive.Manifest `yaml:"manifest"`
	Entries  []record.Entry   `yaml:"entries"`
}

func runList(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var asYAML bool

	flagSet := newFlagSet("list", stderr, &common)
	flagSet.BoolVar(&asYAML, "yaml", false, "print the manifest and entries as YAML")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("%w: list expects 1 argument, got %d", errUsage, len(rest))
	}

	m, entries, err := segar.List(rest[0], archive.WithReaderLogger(common.logger(stderr)))
	if err != nil {
		return err
	}

	if asYAML {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(listing{Manifest: m, Entries: entries}); err != nil {
			return err
		}

		return enc.Close()
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tSIZE\tBYTES\n")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Name, humanize.IBytes(e.Size), e.Size)
	}
	fmt.Fprintf(tw, "\n%d files in %d segments, %d bytes\n", len(entries), m.SegmentCount, m.TotalBytes)

	return tw.Flush()
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `segar packs files into one or more segment files and unpacks them again.

Usage:
  segar encode [flags] <max output size> <output> <input>...
  segar decode [flags] <output>
  segar list [flags] <output>

<max output size>: 5K -> 5 KiB, 7M -> 7 MiB, 13G -> 13 GiB, 0 -> unlimited.
The output is split into <output>_data0, <output>_data1, ... whenever the
packed data exceeds the max output size. <output> itself holds the segment
count and the total size.

Encode flags:
  --strict-names   fail when two inputs share a basename

Decode flags:
  -o, --out-dir    directory to extract files into (default ".")
  --log-file       run log listing extracted names (default <out-dir>/parser.log)

List flags:
  --yaml           print the manifest and entries as YAML

Common flags:
  -v, --verbose    log every segment and record

Examples:
  segar encode 32M out dir/file0 dir/file1
  segar encode 10K out file
  segar decode out
`)
}
