package invoice

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// TransportStatus tracks whether a vehicle has been asked for or booked.
//
//	None ──> Requested ──> Booked
//	 │  <──── reject ──┘      │
//	 └────────────────────────┘ (direct booking)
//
// Releasing a booking goes back to the state it was booked from.
type TransportStatus int

const (
	UnknownTransportStatus TransportStatus = iota
	TransportNone
	TransportRequested
	TransportBooked
)

var transportStatusNames = map[TransportStatus]string{
	TransportNone:      "none",
	TransportRequested: "requested",
	TransportBooked:    "booked",
}

func ParseTransportStatus(name string) (TransportStatus, error) {
	for s, n := range transportStatusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownTransportStatus, errs.NewValueIsInvalidErrorWithCause(
		"transport status",
		fmt.Errorf("%q is not a valid transport status", name),
	)
}

func (s TransportStatus) Validate() error {
	if _, ok := transportStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"transport status",
			fmt.Errorf("%d is not a valid transport status", int(s)),
		)
	}
	return nil
}

func (s TransportStatus) String() string {
	if name, ok := transportStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Request moves None to Requested.
func (s TransportStatus) Request() (TransportStatus, error) {
	switch s {
	case TransportNone:
		return TransportRequested, nil
	case TransportRequested:
		return 0, errs.NewWorkflowError(errs.ErrAlreadyBooked, "transport has already been requested")
	default:
		return 0, errs.NewWorkflowError(errs.ErrAlreadyBooked, "transport is already booked")
	}
}

// Book moves None or Requested to Booked.
func (s TransportStatus) Book() (TransportStatus, error) {
	if s != TransportNone && s != TransportRequested {
		return 0, errs.NewWorkflowError(errs.ErrAlreadyBooked, "transport is already booked")
	}
	return TransportBooked, nil
}

// Release undoes a booking. viaRequest selects the pre-booking state.
func (s TransportStatus) Release(viaRequest bool) (TransportStatus, error) {
	if s != TransportBooked {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"transport status",
			fmt.Errorf("%s is not a booked transport", s),
		)
	}
	if viaRequest {
		return TransportRequested, nil
	}
	return TransportNone, nil
}

// Withdraw drops an open request after rejection.
func (s TransportStatus) Withdraw() (TransportStatus, error) {
	if s != TransportRequested {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"transport status",
			fmt.Errorf("%s has no open transport request", s),
		)
	}
	return TransportNone, nil
}
