package workspace

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// Sentinel errors returned by sessions and the manager.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many open sessions")
	ErrUnknownField    = errors.New("unknown field")
	ErrBusy            = errors.New("a request is already in progress for this session")
	ErrNothingToAudit  = errors.New("no ATS parse to audit")
)

// User-facing failure messages.
const (
	blockedMessage = "The analysis was blocked due to safety concerns. Please ensure your resume does not contain sensitive personal information or inappropriate content."
	genericMessage = "Could not get a valid analysis from the AI. The model may be overloaded or the input is invalid. Please try again later."
)

// InputError reports that a mode's required fields are blank.
type InputError struct {
	Mode    types.Mode
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// RunError wraps a failed generation. Its message is what the user sees;
// the underlying cause is available through Unwrap.
type RunError struct {
	Mode   types.Mode
	Prefix string
	Err    error
}

func (e *RunError) Error() string {
	msg := genericMessage
	if errors.Is(e.Err, llm.ErrBlocked) {
		msg = blockedMessage
	}
	return fmt.Sprintf("%s: %s", e.Prefix, msg)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(mode types.Mode, err error) *RunError {
	return &RunError{Mode: mode, Prefix: mode.FailurePrefix(), Err: err}
}
