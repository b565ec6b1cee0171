package chain

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

type Status int

const (
	UnknownStatus Status = iota
	Confirmed
	Locked
)

var statusNames = map[Status]string{
	Confirmed: "confirmed",
	Locked:    "locked",
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("chain status", fmt.Errorf("%q is not a chain status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("chain status", fmt.Errorf("%d is not a chain status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
