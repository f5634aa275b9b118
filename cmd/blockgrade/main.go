// Command blockgrade grades a block model compression submission. The item
// under test runs in its own process with the reference model on stdin; its
// output is then checked for exact block-for-block equivalence against the
// reference, one parent-depth chunk at a time, and the achieved compression
// (and optionally relative speed) is printed on stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/boyleerock/blockgrade/internal/db"
	"github.com/boyleerock/blockgrade/internal/runner"
	"github.com/boyleerock/blockgrade/internal/validate"
)

const usageText = `usage: blockgrade [flags] <my_algorithm.py or my_algorithm.exe> <input_block_model.csv>

Tests a Python script or executable against a block model csv file. The
item under test is run in its own process with the input csv provided on
standard input. Its standard output is checked for correctness and block
model equivalence to the input. On success the exit status is zero and the
compression achieved appears on standard output as a floating point number
between 0 and 1 (0.25 means 25% compression; higher is better).

With -s the speed of the item under test is also measured, relative to a
separate process doing a straight copy of standard input to standard
output, and appears as a second floating point number (1.0 means as fast
as the direct copy; higher is better).

As soon as any error is encountered the exit status is non-zero and only
the first problem found is reported, on standard error.

flags:
`

type options struct {
	speed     bool
	verbose   bool
	dbPath    string
	stats     bool
	stdioCopy bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("blockgrade", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.BoolVar(&opts.speed, "s", false, "output speed in addition to compression")
	fs.BoolVar(&opts.speed, "speed", false, "output speed in addition to compression")
	fs.BoolVar(&opts.verbose, "v", false, "print additional output to see details and progress")
	fs.BoolVar(&opts.verbose, "verbose", false, "print additional output to see details and progress")
	fs.StringVar(&opts.dbPath, "db", "", "record the run in a history database at this path")
	fs.BoolVar(&opts.stats, "stats", false, "print aggregate statistics from the -db history and exit")
	fs.BoolVar(&opts.stdioCopy, "stdio-copy", false, "copy stdin to stdout and exit (baseline mode)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Baseline mode: this binary re-executed as the straight-copy process
	// the speed measurement compares against.
	if opts.stdioCopy {
		if _, err := io.Copy(stdout, stdin); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if opts.stats {
		if opts.dbPath == "" {
			fmt.Fprintln(stderr, "-stats requires -db")
			return 2
		}
		return printStats(opts.dbPath, stdout, stderr)
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	item, input := fs.Arg(0), fs.Arg(1)

	verbose := io.Writer(io.Discard)
	if opts.verbose {
		verbose = stderr
	}

	r := runner.New()
	r.Verbose = verbose
	if opts.speed {
		self, err := os.Executable()
		if err != nil {
			fmt.Fprintf(stderr, "Error: cannot locate own executable for baseline run: %v\n", err)
			return runner.CodeBaselineFail
		}
		r.Baseline = []string{self, "-stdio-copy"}
	}

	if err := r.CheckSetup(item, input); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return validate.ExitCode(err)
	}

	tmpDir, err := os.MkdirTemp("", "blockgrade")
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create temporary directory: %v\n", err)
		return 1
	}
	defer os.RemoveAll(tmpDir)
	fmt.Fprintf(verbose, "Using temporary directory '%s'\n", tmpDir)

	runRes, err := r.Run(tmpDir, item, input, opts.speed)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var perr *runner.ProcessError
		if errors.As(err, &perr) && perr.Stderr != "" {
			fmt.Fprint(stderr, perr.Stderr)
		}
		return validate.ExitCode(err)
	}

	fmt.Fprintf(verbose, "Analysing the output of the item under test...\n")
	reference, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 200
	}
	defer reference.Close()
	candidate, err := os.Open(runRes.OutputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 200
	}
	defer candidate.Close()

	valRes, err := validate.Run(reference, candidate, validate.Options{
		ReferenceName: input,
		CandidateName: runRes.OutputPath,
		Verbose:       verbose,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return validate.ExitCode(err)
	}

	compression := valRes.Compression()
	fmt.Fprintf(verbose, "-----------\n")
	fmt.Fprintf(verbose, "Compression = %6.2f%%  (%d blocks down from %d blocks)\n",
		compression*100, valRes.CandidateBlocks, valRes.ReferenceBlocks)
	speed := 0.0
	if opts.speed {
		speed = runRes.Speed()
		fmt.Fprintf(verbose, "      Speed = %6.2f%%  (%.0f blocks per second, raw io is %.0f)\n",
			speed*100,
			float64(valRes.ReferenceBlocks)/runRes.ItemSeconds,
			float64(valRes.ReferenceBlocks)/runRes.BaselineSeconds)
	}
	fmt.Fprintf(verbose, "-----------\n")

	if opts.dbPath != "" {
		if err := recordRun(opts.dbPath, item, input, valRes, runRes, opts.speed); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}

	fmt.Fprintln(stdout, compression)
	if opts.speed {
		fmt.Fprintln(stdout, speed)
	}
	return 0
}

func recordRun(path, item, input string, valRes validate.Result, runRes runner.Result, speed bool) error {
	hdb, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer hdb.Close()
	rec := db.Run{
		Item:            item,
		Input:           input,
		ReferenceBlocks: valRes.ReferenceBlocks,
		CandidateBlocks: valRes.CandidateBlocks,
		Compression:     valRes.Compression(),
		ItemSeconds:     runRes.ItemSeconds,
		BaselineSeconds: runRes.BaselineSeconds,
	}
	if speed {
		rec.Speed = runRes.Speed()
		rec.HasSpeed = true
	}
	return hdb.RecordRun(rec)
}

func printStats(path string, stdout, stderr io.Writer) int {
	hdb, err := db.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open history database: %v\n", err)
		return 1
	}
	defer hdb.Close()
	stats, err := hdb.Stats()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "runs: %d\n", stats.Runs)
	if stats.Runs > 0 {
		fmt.Fprintf(stdout, "compression: mean %.4f, stddev %.4f, min %.4f, max %.4f\n",
			stats.MeanCompression, stats.StdCompression, stats.MinCompression, stats.MaxCompression)
	}
	if stats.SpeedRuns > 0 {
		fmt.Fprintf(stdout, "speed: mean %.4f over %d runs\n", stats.MeanSpeed, stats.SpeedRuns)
	}
	return 0
}
