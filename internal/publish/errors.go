package publish

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a publishing failure.
type ErrorKind string

const (
	// Pre-run failures: raised before any step executes.
	KindFolderSetup ErrorKind = "folder_setup"
	KindNoSteps     ErrorKind = "no_steps"

	// File I/O failures raised by context accessors.
	KindNotFound        ErrorKind = "not_found"
	KindCreationFailed  ErrorKind = "creation_failed"
	KindCopyingFailed   ErrorKind = "copying_failed"
	KindDeploymentSetup ErrorKind = "deployment_setup_failed"
	KindFolderCreation  ErrorKind = "folder_creation_failed"

	// Content-model failures raised by context accessors.
	KindPageNotFound    ErrorKind = "page_not_found"
	KindSectionNotFound ErrorKind = "section_not_found"
	KindPageMutation    ErrorKind = "page_mutation_failed"

	// Step failures: a callback returned an error the context did not
	// already classify, or the run was canceled between steps.
	KindStepFailed ErrorKind = "step_failed"
	KindCanceled   ErrorKind = "canceled"
)

// Error is the structured error type for the publishing pipeline. Every
// fatal condition in a run surfaces as one of these; the executor only adds
// the step name when a context accessor raised it without one.
type Error struct {
	Kind    ErrorKind
	Step    string // name of the step that was running, when known
	Path    string // associated filesystem path, when relevant
	Message string
	Err     error // underlying cause, when any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Step != "" {
		fmt.Fprintf(&b, " in step %q", e.Step)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an Error with a kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewPathError constructs an Error carrying an associated path.
func NewPathError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	ok := errors.As(err, &pe)
	return pe, ok
}

// IsKind reports whether err's chain contains a publishing Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	pe, ok := AsError(err)
	return ok && pe.Kind == kind
}
