package transport

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status of a transport request.
//
//	Pending ──┬──> Assigned ──> Completed
//	          └──> Rejected
//
// Assigned and Rejected are mutually exclusive outcomes; each request gets one.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Assigned
	Rejected
	Completed
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Assigned:  "assigned",
	Rejected:  "rejected",
	Completed: "completed",
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a transport request status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a transport request status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to assign", s))
	}
	return Assigned, nil
}

func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to reject", s))
	}
	return Rejected, nil
}

func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Completed, nil
}
