package runner

// Exit statuses for setup and process faults. Stream-level statuses live
// with the validate package.
const (
	CodeItemNotFound  = 10
	CodeBadExtension  = 11
	CodeInputNotFound = 12
	CodeBaselineFail  = 13
	CodeItemFail      = 14
)

// SetupError reports a problem with the grader's inputs found before any
// subprocess is started.
type SetupError struct {
	Code int
	Msg  string
}

func (e *SetupError) Error() string { return e.Msg }

// ExitCode returns the process exit status for the setup fault.
func (e *SetupError) ExitCode() int { return e.Code }

// ProcessError reports a subprocess (item under test or baseline) that
// failed. Stderr carries the captured error output of the child, surfaced
// verbatim to the user.
type ProcessError struct {
	Code   int
	Msg    string
	Stderr string
}

func (e *ProcessError) Error() string { return e.Msg }

// ExitCode returns the process exit status for the subprocess fault.
func (e *ProcessError) ExitCode() int { return e.Code }
