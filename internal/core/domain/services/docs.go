// Package services provides the pure domain services of the dispatch
// workflow. They hold no state and perform no I/O: callers load the facts
// inside their transaction and ask the services for a decision.
//
// The package includes:
//   - ReferenceResolver: derives the status of a file reference
//     (available, planning, confirmed, locked, duplicate, error)
//   - BookingGate: guards that decide whether a booking, a transport request
//     or a file name edit may proceed, with an operator-facing reason
package services
