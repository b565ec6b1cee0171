package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand moves an invoice to its next applicable stage.
// ExpectedVersion is optional; when present the advance fails with
// ErrConcurrentModification if the invoice changed since the caller read it.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	invoiceID       kernel.UUID
	notes           string
	expectedVersion *int

	guard guard.ConstructorGuard
}

func NewAdvanceStageCommand(invoiceID kernel.UUID, notes string, expectedVersion *int) (AdvanceStageCommand, error) {
	cmd := AdvanceStageCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInvoiceID(invoiceID),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

func (c AdvanceStageCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

func (c AdvanceStageCommand) Notes() string {
	return c.notes
}

// ExpectedVersion returns the version the caller last saw, if any.
func (c AdvanceStageCommand) ExpectedVersion() (int, bool) {
	if c.expectedVersion == nil {
		return 0, false
	}
	return *c.expectedVersion, true
}

func (c *AdvanceStageCommand) setInvoiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.invoiceID = id
	return nil
}

func (c *AdvanceStageCommand) setExpectedVersion(v *int) error {
	if v == nil {
		return nil
	}
	if *v < 1 {
		return errs.NewValueIsOutOfRangeError("expectedVersion", *v, 1, "unbounded")
	}

	version := *v
	c.expectedVersion = &version
	return nil
}
