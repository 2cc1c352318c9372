package lingua

import (
	"errors"
	"fmt"
	"strings"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Crawl error codes. Each maps to the phase of a run in which it occurs.
const (
	ENAVIGATION = "navigation" // no content region appeared in time
	EEXTRACT    = "extract"    // region missing or unparseable in markup
	ESTORE      = "store"      // word store rejected a write
	ECHECKPOINT = "checkpoint" // durable checkpoint read or write failed
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lingua error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Phase identifies the step of a pagination run in which a failure occurred.
type Phase string

// Run phases used in failure reports.
const (
	PhaseNavigate   Phase = "NAVIGATE"
	PhaseExtract    Phase = "EXTRACT"
	PhaseStore      Phase = "STORE"
	PhaseCheckpoint Phase = "CHECKPOINT"
)

// RunError reports a failure of one grouping key's run.
type RunError struct {
	Key   string
	Phase Phase
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: %s: %v", e.Key, strings.ToLower(string(e.Phase)), e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ErrorPhase returns the phase of a RunError anywhere in the chain,
// or an empty Phase if err is not a run failure.
func ErrorPhase(err error) Phase {
	var e *RunError
	if errors.As(err, &e) {
		return e.Phase
	}
	return ""
}
