package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCheckDocumentCompletenessCommandIsNotConstructed = errors.New(
	"CheckDocumentCompletenessCommand must be created via NewCheckDocumentCompletenessCommand constructor",
)

// CheckDocumentCompletenessCommand re-evaluates whether an invoice still waits
// for paperwork.
type CheckDocumentCompletenessCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCheckDocumentCompletenessCommand(invoiceID kernel.UUID) (CheckDocumentCompletenessCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return CheckDocumentCompletenessCommand{}, err
	}

	return CheckDocumentCompletenessCommand{
		invoiceID: invoiceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CheckDocumentCompletenessCommand) Validate() error {
	return c.guard.Validate(ErrCheckDocumentCompletenessCommandIsNotConstructed)
}

func (c CheckDocumentCompletenessCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}
