package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateInvoiceCommandIsNotConstructed = errors.New(
	"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
)

// CreateInvoiceCommand registers a new shipment record in the receiving stage.
//
// Example:
//
//	invoiceID := kernel.NewUUID()
//	cmd, err := NewCreateInvoiceCommand(invoiceID, "INV-2024-0117", invoice.Requirements{QC: true})
//	if err != nil {
//	    return fmt.Errorf("invalid invoice data: %w", err)
//	}
//
//	handler := NewCreateInvoiceCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create invoice: %w", err)
//	}
type CreateInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID    kernel.UUID
	number       string
	requirements invoice.Requirements

	guard guard.ConstructorGuard
}

// NewCreateInvoiceCommand validates the invoice id and number. The
// requirements decide which inspection stages the invoice walks through.
func NewCreateInvoiceCommand(
	invoiceID kernel.UUID,
	number string,
	requirements invoice.Requirements,
) (CreateInvoiceCommand, error) {
	cmd := CreateInvoiceCommand{
		requirements: requirements,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInvoiceID(invoiceID),
		cmd.setNumber(number),
	); err != nil {
		return CreateInvoiceCommand{}, err
	}

	return cmd, nil
}

func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}

func (c CreateInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

func (c CreateInvoiceCommand) Number() string {
	return c.number
}

func (c CreateInvoiceCommand) Requirements() invoice.Requirements {
	return c.requirements
}

func (c *CreateInvoiceCommand) setInvoiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.invoiceID = id
	return nil
}

func (c *CreateInvoiceCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}

	c.number = number
	return nil
}
