package booking

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status of a load confirmation.
//
//	Draft ──> Pending ──> Confirmed ──> InTransit ──> Delivered
//	  └─────────┴────────────┴─────────────┴──> Cancelled
type Status int

const (
	UnknownStatus Status = iota
	Draft
	Pending
	Confirmed
	InTransit
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Draft:     "draft",
	Pending:   "pending",
	Confirmed: "confirmed",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a load confirmation status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a load confirmation status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsActive reports whether the confirmation still holds its file reference.
func (s Status) IsActive() bool {
	return s != Cancelled && s != UnknownStatus
}

// Action is an operator request to move a load confirmation forward.
type Action int

const (
	UnknownAction Action = iota
	Submit
	Confirm
	Dispatch
	Deliver
	Cancel
)

var actionNames = map[Action]string{
	Submit:   "submit",
	Confirm:  "confirm",
	Dispatch: "dispatch",
	Deliver:  "deliver",
	Cancel:   "cancel",
}

// forward maps each action (except Cancel) to its required source status and target.
var forward = map[Action]struct{ from, to Status }{
	Submit:   {Draft, Pending},
	Confirm:  {Pending, Confirmed},
	Dispatch: {Confirmed, InTransit},
	Deliver:  {InTransit, Delivered},
}

func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause(
		"action",
		fmt.Errorf("%q is not one of submit, confirm, dispatch, deliver, cancel", name),
	)
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Apply returns the status reached by performing a from s.
func (s Status) Apply(a Action) (Status, error) {
	if a == Cancel {
		if s == Delivered || s == Cancelled {
			return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s load confirmation cannot be cancelled", s))
		}
		return Cancelled, nil
	}

	step, ok := forward[a]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", int(a)))
	}
	if s != step.from {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to %s, expected %s", s, a, step.from),
		)
	}
	return step.to, nil
}
