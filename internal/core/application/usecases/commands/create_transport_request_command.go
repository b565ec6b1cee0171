package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateTransportRequestCommandIsNotConstructed = errors.New(
	"CreateTransportRequestCommand must be created via NewCreateTransportRequestCommand constructor",
)

// CreateTransportRequestCommand asks the transport desk for a vehicle for
// one or more invoices.
type CreateTransportRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	invoiceIDs []kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

func NewCreateTransportRequestCommand(
	requestID kernel.UUID,
	invoiceIDs []kernel.UUID,
	notes string,
) (CreateTransportRequestCommand, error) {
	var invoicesErr error
	if len(invoiceIDs) == 0 {
		invoicesErr = errs.NewValueIsRequiredError("invoiceIds")
	}
	for _, id := range invoiceIDs {
		if err := id.Validate(); err != nil {
			invoicesErr = errors.Join(invoicesErr, err)
		}
	}

	if err := errors.Join(requestID.Validate(), invoicesErr); err != nil {
		return CreateTransportRequestCommand{}, err
	}

	return CreateTransportRequestCommand{
		requestID:  requestID,
		invoiceIDs: append([]kernel.UUID(nil), invoiceIDs...),
		notes:      strings.TrimSpace(notes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTransportRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransportRequestCommandIsNotConstructed)
}

func (c CreateTransportRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c CreateTransportRequestCommand) InvoiceIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.invoiceIDs...)
}

func (c CreateTransportRequestCommand) Notes() string {
	return c.notes
}
