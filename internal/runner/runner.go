// Package runner orchestrates the subprocess runs of a grading session:
// the optional baseline copy process and the item under test, each executed
// strictly in sequence with stdio redirected to files and wall-clock timing
// around the run.
package runner

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/boyleerock/blockgrade/internal/fsutil"
	"github.com/boyleerock/blockgrade/internal/timeutil"
)

// Runner executes the item under test and, when speed measurement is
// requested, a baseline copy process. The zero value is not usable; call
// New.
type Runner struct {
	FS      fsutil.FileSystem
	Clock   timeutil.Clock
	Builder Builder

	// Python is the interpreter used for .py items.
	Python string

	// Baseline is the argv of the baseline copy process. It must copy its
	// standard input to its standard output and exit zero.
	Baseline []string

	// Verbose receives progress narration. Defaults to discard.
	Verbose io.Writer
}

// New returns a Runner wired to the real filesystem, clock and process
// executor.
func New() *Runner {
	return &Runner{
		FS:      fsutil.OSFileSystem{},
		Clock:   timeutil.RealClock{},
		Builder: ExecBuilder{},
		Python:  "python3",
		Verbose: io.Discard,
	}
}

// Result carries the artefacts of the subprocess runs: where the item's
// output landed and how long each timed run took.
type Result struct {
	OutputPath      string
	ItemSeconds     float64
	BaselineSeconds float64
}

// Speed returns the relative speed score, baseline time over item time.
func (r Result) Speed() float64 {
	return r.BaselineSeconds / r.ItemSeconds
}

// CheckSetup validates the grader's two input paths. Each fault class has
// its own exit status.
func (r *Runner) CheckSetup(item, input string) error {
	if !r.FS.IsFile(item) {
		return &SetupError{
			Code: CodeItemNotFound,
			Msg:  fmt.Sprintf("script or executable not found at '%s'", item),
		}
	}
	if !strings.HasSuffix(item, ".py") && !strings.HasSuffix(item, ".exe") {
		return &SetupError{
			Code: CodeBadExtension,
			Msg:  fmt.Sprintf("'%s' must be a Python (.py) or executable (.exe) file", item),
		}
	}
	if !r.FS.IsFile(input) {
		return &SetupError{
			Code: CodeInputNotFound,
			Msg:  fmt.Sprintf("input block model file not found at '%s'", input),
		}
	}
	return nil
}

// Run executes the grading subprocesses using dir for redirected output.
// When speed is true the baseline runs first: once to warm the page cache,
// once timed. The item under test then runs timed with the input model on
// its stdin. The runs never overlap, keeping the two timings comparable.
func (r *Runner) Run(dir, item, input string, speed bool) (Result, error) {
	var res Result
	if speed {
		fmt.Fprintf(r.Verbose, "Measuring straight stdin to stdout speed...\n")
		fmt.Fprintf(r.Verbose, "...doing warm up run\n")
		if _, err := r.timedRun(r.Baseline, input,
			filepath.Join(dir, "out0.csv"), filepath.Join(dir, "err0.txt")); err != nil {
			return res, &ProcessError{Code: CodeBaselineFail, Msg: "baseline speed measurement process failed"}
		}
		fmt.Fprintf(r.Verbose, "...done\n")
		fmt.Fprintf(r.Verbose, "...doing timed run\n")
		secs, err := r.timedRun(r.Baseline, input,
			filepath.Join(dir, "out0.csv"), filepath.Join(dir, "err0.txt"))
		if err != nil {
			return res, &ProcessError{Code: CodeBaselineFail, Msg: "baseline speed measurement process failed"}
		}
		res.BaselineSeconds = secs
		fmt.Fprintf(r.Verbose, "...done in %.3fs\n", secs)
	}

	fmt.Fprintf(r.Verbose, "Running the item under test...\n")
	argv := r.itemArgv(item)
	fmt.Fprintf(r.Verbose, "...\"%s\"\n", strings.Join(argv, " "))
	outPath := filepath.Join(dir, "out.csv")
	errPath := filepath.Join(dir, "err.txt")
	secs, err := r.timedRun(argv, input, outPath, errPath)
	if err != nil {
		captured, _ := r.FS.ReadFile(errPath)
		return res, &ProcessError{
			Code:   CodeItemFail,
			Msg:    fmt.Sprintf("%s exited with exit status %d", item, exitStatus(err)),
			Stderr: string(captured),
		}
	}
	res.ItemSeconds = secs
	res.OutputPath = outPath
	fmt.Fprintf(r.Verbose, "...done in %.3fs\n", secs)
	return res, nil
}

// itemArgv builds the child argv: Python scripts run under the configured
// interpreter, executables run directly.
func (r *Runner) itemArgv(item string) []string {
	if strings.HasSuffix(item, ".py") {
		return []string{r.Python, item}
	}
	return []string{item}
}

// timedRun executes argv with stdin from inputPath and stdout/stderr
// redirected to outPath and errPath, returning the wall-clock seconds the
// child ran for.
func (r *Runner) timedRun(argv []string, inputPath, outPath, errPath string) (float64, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command")
	}
	in, err := r.FS.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()
	out, err := r.FS.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()
	errf, err := r.FS.Create(errPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create error file: %w", err)
	}
	defer errf.Close()

	cmd := r.Builder.Command(argv[0], argv[1:]...)
	cmd.SetStdin(in)
	cmd.SetStdout(out)
	cmd.SetStderr(errf)

	tic := r.Clock.Now()
	runErr := cmd.Run()
	secs := r.Clock.Since(tic).Seconds()
	return secs, runErr
}
