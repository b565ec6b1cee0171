package services

import (
	"fmt"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/pkg/errs"
)

// GuardResult is the outcome of a gate. Kind is the workflow sentinel used
// when the action is refused.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

// Err returns nil for allowed results.
func (r GuardResult) Err() error {
	if r.Allowed {
		return nil
	}
	return errs.NewWorkflowError(r.Kind, r.Reason)
}

// BookingGate decides whether transport paperwork may be created or a file
// name may be edited, given freshly resolved references.
type BookingGate struct{}

func NewBookingGate() BookingGate {
	return BookingGate{}
}

// CanBook allows a booking only on available or planning references.
func (BookingGate) CanBook(res Resolution) GuardResult {
	if res.Reference.IsEmpty() {
		return GuardResult{Kind: errs.ErrValueIsRequired, Reason: "a load confirmation needs a file reference"}
	}
	return fromResolution(res)
}

// CanRequestTransport checks the invoice's transport flag and every
// reference carried by its packing units.
func (BookingGate) CanRequestTransport(inv *invoice.Invoice, refs []Resolution) GuardResult {
	if inv.TransportStatus() != invoice.TransportNone {
		return GuardResult{
			Kind:   errs.ErrAlreadyBooked,
			Reason: fmt.Sprintf("invoice %s already has transport %s", inv.Number(), inv.TransportStatus()),
		}
	}
	for _, res := range refs {
		if result := fromResolution(res); !result.Allowed {
			return result
		}
	}
	return allow()
}

// CanChangeFileName refuses edits away from or onto a locked reference, onto
// a reference held elsewhere, and any edit whose resolution is not authoritative.
func (BookingGate) CanChangeFileName(current, target Resolution) GuardResult {
	if current.Status == ReferenceLocked {
		return GuardResult{Kind: errs.ErrReferenceLocked, Reason: current.Detail}
	}
	if !current.IsAuthoritative() {
		return GuardResult{Kind: errs.ErrStorageUnavailable, Reason: current.Detail}
	}
	switch target.Status {
	case ReferenceLocked:
		return GuardResult{Kind: errs.ErrReferenceLocked, Reason: target.Detail}
	case ReferenceDuplicate:
		return GuardResult{Kind: errs.ErrAlreadyBooked, Reason: target.Detail}
	case ReferenceError:
		return GuardResult{Kind: errs.ErrStorageUnavailable, Reason: target.Detail}
	default:
		return allow()
	}
}

func fromResolution(res Resolution) GuardResult {
	switch res.Status {
	case ReferenceAvailable, ReferencePlanning:
		return allow()
	case ReferenceConfirmed, ReferenceDuplicate:
		return GuardResult{Kind: errs.ErrAlreadyBooked, Reason: res.Detail}
	case ReferenceLocked:
		return GuardResult{Kind: errs.ErrReferenceLocked, Reason: res.Detail}
	default:
		return GuardResult{Kind: errs.ErrStorageUnavailable, Reason: res.Detail}
	}
}
