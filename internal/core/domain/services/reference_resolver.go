package services

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ReferenceStatus is the derived state of a file reference.
type ReferenceStatus string

const (
	ReferenceAvailable ReferenceStatus = "available"
	ReferencePlanning  ReferenceStatus = "planning"
	ReferenceConfirmed ReferenceStatus = "confirmed"
	ReferenceLocked    ReferenceStatus = "locked"
	ReferenceDuplicate ReferenceStatus = "duplicate"
	ReferenceError     ReferenceStatus = "error"
)

// ReferenceFacts is what storage knows about one file reference.
type ReferenceFacts struct {
	// HolderIDs are the packing units currently carrying the reference.
	HolderIDs []kernel.UUID
	// LoadConfirmationBooked is set while an active load confirmation uses the reference.
	LoadConfirmationBooked bool
	// ManifestFiled is set once a manifest references the load confirmation.
	ManifestFiled bool
	// LookupErr is the storage failure that prevented collecting the facts.
	LookupErr error
}

// Resolution is the outcome of resolving a reference. Detail is meant for operators.
type Resolution struct {
	Reference kernel.FileReference
	Status    ReferenceStatus
	Detail    string
	Cause     error
}

// Err converts a blocking resolution into its workflow error. Available and
// planning resolutions return nil.
func (r Resolution) Err() error {
	switch r.Status {
	case ReferenceAvailable, ReferencePlanning:
		return nil
	case ReferenceConfirmed, ReferenceDuplicate:
		return errs.NewWorkflowError(errs.ErrAlreadyBooked, r.Detail)
	case ReferenceLocked:
		return errs.NewWorkflowError(errs.ErrReferenceLocked, r.Detail)
	case ReferenceError:
		return errs.NewWorkflowErrorWithCause(errs.ErrStorageUnavailable, r.Detail, r.Cause)
	default:
		return errs.NewValueIsInvalidErrorWithCause("reference status", fmt.Errorf("%q is not a reference status", r.Status))
	}
}

// IsAuthoritative is false for error resolutions, which must never be cached.
func (r Resolution) IsAuthoritative() bool {
	return r.Status != ReferenceError
}

// ReferenceResolver derives reference statuses with a fixed precedence:
// empty, lookup failure, locked, duplicate, confirmed, planning.
// Locked wins over every other match because it is terminal.
type ReferenceResolver struct{}

func NewReferenceResolver() ReferenceResolver {
	return ReferenceResolver{}
}

// Resolve classifies ref. Holders listed in exclude (the packing units being
// edited or booked) do not count as duplicates.
func (ReferenceResolver) Resolve(ref kernel.FileReference, facts ReferenceFacts, exclude ...kernel.UUID) Resolution {
	res := Resolution{Reference: ref}

	switch {
	case ref.IsEmpty():
		res.Status = ReferenceAvailable
		res.Detail = "no file reference assigned"
	case facts.LookupErr != nil:
		res.Status = ReferenceError
		res.Detail = fmt.Sprintf("file reference %q could not be resolved, retry later", ref)
		res.Cause = facts.LookupErr
	case facts.ManifestFiled:
		res.Status = ReferenceLocked
		res.Detail = fmt.Sprintf("file reference %q is on a filed manifest and can no longer change", ref)
	case hasForeignHolder(facts.HolderIDs, exclude):
		res.Status = ReferenceDuplicate
		res.Detail = fmt.Sprintf("file reference %q is already used by another packing unit", ref)
	case facts.LoadConfirmationBooked:
		res.Status = ReferenceConfirmed
		res.Detail = fmt.Sprintf("file reference %q is booked on a load confirmation", ref)
	default:
		res.Status = ReferencePlanning
		res.Detail = fmt.Sprintf("file reference %q is free, no load confirmation yet", ref)
	}

	return res
}

func hasForeignHolder(holders, exclude []kernel.UUID) bool {
	for _, h := range holders {
		if !kernel.ContainsUUID(exclude, h) {
			return true
		}
	}
	return false
}
