package runner

import (
	"io"
	"os/exec"
)

// Command abstracts a runnable child process with redirected stdio.
// This abstraction enables unit testing without real subprocesses.
type Command interface {
	// SetStdin sets the reader the process reads standard input from.
	SetStdin(r io.Reader)

	// SetStdout sets the writer standard output is redirected to.
	SetStdout(w io.Writer)

	// SetStderr sets the writer standard error is redirected to.
	SetStderr(w io.Writer)

	// Run starts the process and blocks until it exits. A non-zero exit
	// status is returned as an error carrying the status.
	Run() error
}

// Builder creates Commands. The grader builds one Command per subprocess
// run; tests substitute a MockBuilder.
type Builder interface {
	Command(name string, args ...string) Command
}

// ExecBuilder implements Builder using os/exec.
type ExecBuilder struct{}

// Command creates a Command for the given argv.
func (ExecBuilder) Command(name string, args ...string) Command {
	return &execCommand{cmd: exec.Command(name, args...)}
}

type execCommand struct {
	cmd *exec.Cmd
}

func (c *execCommand) SetStdin(r io.Reader)  { c.cmd.Stdin = r }
func (c *execCommand) SetStdout(w io.Writer) { c.cmd.Stdout = w }
func (c *execCommand) SetStderr(w io.Writer) { c.cmd.Stderr = w }
func (c *execCommand) Run() error            { return c.cmd.Run() }

// exitStatus extracts the child's exit status from a Run error. Both
// *exec.ExitError and mock errors expose it through the ExitCode method;
// anything else (a spawn failure, say) reports -1.
func exitStatus(err error) int {
	if coded, ok := err.(interface{ ExitCode() int }); ok {
		return coded.ExitCode()
	}
	return -1
}

// MockCommand implements Command for testing. Stdout and Stderr are written
// to the configured writers when Run is called; Err is returned as the run
// result.
type MockCommand struct {
	Stdout string
	Stderr string
	Err    error

	// RunFunc, if set, replaces the default Run behaviour.
	RunFunc func(stdin io.Reader, stdout, stderr io.Writer) error

	// Ran indicates whether Run was called.
	Ran bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// SetStdin records the stdin reader.
func (m *MockCommand) SetStdin(r io.Reader) { m.stdin = r }

// SetStdout records the stdout writer.
func (m *MockCommand) SetStdout(w io.Writer) { m.stdout = w }

// SetStderr records the stderr writer.
func (m *MockCommand) SetStderr(w io.Writer) { m.stderr = w }

// Run writes the configured output and returns the configured error.
func (m *MockCommand) Run() error {
	m.Ran = true
	if m.RunFunc != nil {
		return m.RunFunc(m.stdin, m.stdout, m.stderr)
	}
	if m.stdout != nil && m.Stdout != "" {
		io.WriteString(m.stdout, m.Stdout)
	}
	if m.stderr != nil && m.Stderr != "" {
		io.WriteString(m.stderr, m.Stderr)
	}
	return m.Err
}

// MockExitError is the error a MockCommand returns for a non-zero exit.
type MockExitError struct {
	Code int
}

func (e *MockExitError) Error() string { return "exit status error" }

// ExitCode returns the mocked exit status.
func (e *MockExitError) ExitCode() int { return e.Code }

// MockBuilder implements Builder, handing out queued MockCommands in order
// and recording every argv it was asked to build.
type MockBuilder struct {
	Commands []*MockCommand
	Calls    [][]string
	next     int
}

// Command returns the next queued MockCommand. Running off the end of the
// queue returns an inert command so tests fail on assertions, not panics.
func (b *MockBuilder) Command(name string, args ...string) Command {
	b.Calls = append(b.Calls, append([]string{name}, args...))
	if b.next >= len(b.Commands) {
		return &MockCommand{}
	}
	cmd := b.Commands[b.next]
	b.next++
	return cmd
}
