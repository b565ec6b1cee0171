package errs

import (
	"errors"
	"fmt"
)

// Workflow sentinels. Every WorkflowError unwraps to exactly one of them.
var (
	ErrInvalidStage           = errors.New("invalid stage")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrConfirmationRequired   = errors.New("confirmation required")
	ErrInspectionsIncomplete  = errors.New("inspections incomplete")
	ErrReferenceLocked        = errors.New("reference locked")
	ErrAlreadyBooked          = errors.New("already booked")
	ErrManifestDependency     = errors.New("manifest dependency")
	ErrStorageUnavailable     = errors.New("storage unavailable")
)

// WorkflowError is a rejected workflow transition. Kind is one of the
// workflow sentinels, Reason is the operator-facing explanation.
type WorkflowError struct {
	Kind   error
	Reason string
	Cause  error
}

func NewWorkflowError(kind error, reason string) *WorkflowError {
	return &WorkflowError{Kind: kind, Reason: reason}
}

func NewWorkflowErrorWithCause(kind error, reason string, cause error) *WorkflowError {
	return &WorkflowError{Kind: kind, Reason: reason, Cause: cause}
}

func (e *WorkflowError) Error() string {
	msg := e.Kind.Error()
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, sanitize(e.Reason))
	}
	return withCause(msg, e.Cause)
}

func (e *WorkflowError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// IsTransient reports whether err is worth retrying unchanged.
func IsTransient(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// NewStorageUnavailableError wraps a driver failure that left the operation
// without an authoritative answer.
func NewStorageUnavailableError(cause error) *WorkflowError {
	return NewWorkflowErrorWithCause(ErrStorageUnavailable, "storage is unavailable, retry later", cause)
}
