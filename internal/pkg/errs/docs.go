// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError, VersionIsInvalidError) raised while constructing or
//     loading domain objects
//   - WorkflowError, which carries one of the workflow sentinels (ErrInvalidStage,
//     ErrConcurrentModification, ErrConfirmationRequired, ErrInspectionsIncomplete,
//     ErrReferenceLocked, ErrAlreadyBooked, ErrManifestDependency,
//     ErrStorageUnavailable) together with a reason string meant for the operator
//
// Each value error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels; the transport
// layer maps them to response codes.
package errs
