package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkReadyForTransportCommandIsNotConstructed = errors.New(
	"MarkReadyForTransportCommand must be created via NewMarkReadyForTransportCommand constructor",
)

// MarkReadyForTransportCommand releases an invoice for dispatch. Confirmed
// must be true; the handler refuses unconfirmed requests with
// errs.ErrConfirmationRequired.
type MarkReadyForTransportCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	confirmed bool
	notes     string

	guard guard.ConstructorGuard
}

func NewMarkReadyForTransportCommand(
	invoiceID kernel.UUID,
	confirmed bool,
	notes string,
) (MarkReadyForTransportCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return MarkReadyForTransportCommand{}, err
	}

	return MarkReadyForTransportCommand{
		invoiceID: invoiceID,
		confirmed: confirmed,
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkReadyForTransportCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyForTransportCommandIsNotConstructed)
}

func (c MarkReadyForTransportCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

func (c MarkReadyForTransportCommand) Confirmed() bool {
	return c.confirmed
}

func (c MarkReadyForTransportCommand) Notes() string {
	return c.notes
}
