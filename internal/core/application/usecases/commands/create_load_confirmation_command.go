package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateLoadConfirmationCommandIsNotConstructed = errors.New(
	"CreateLoadConfirmationCommand must be created via NewCreateLoadConfirmationCommand constructor",
)

// CreateLoadConfirmationCommand books a vehicle directly, without a
// transport request.
//
// Example:
//
//	cmd, err := NewCreateLoadConfirmationCommand(
//	    kernel.NewUUID(),
//	    "FR-2024-0042",
//	    []kernel.UUID{invoiceID},
//	    booking.Vehicle{Transporter: "Nordfrakt", VehicleNumber: "AB 123 CD"},
//	)
type CreateLoadConfirmationCommand struct { //nolint:recvcheck //using for validation
	loadConfirmationID kernel.UUID
	fileReference      kernel.FileReference
	invoiceIDs         []kernel.UUID
	vehicle            booking.Vehicle

	guard guard.ConstructorGuard
}

func NewCreateLoadConfirmationCommand(
	loadConfirmationID kernel.UUID,
	fileReference string,
	invoiceIDs []kernel.UUID,
	vehicle booking.Vehicle,
) (CreateLoadConfirmationCommand, error) {
	ref, refErr := kernel.NewFileReference(fileReference)
	if refErr == nil && ref.IsEmpty() {
		refErr = errs.NewValueIsRequiredError("fileReference")
	}

	var invoicesErr error
	if len(invoiceIDs) == 0 {
		invoicesErr = errs.NewValueIsRequiredError("invoiceIds")
	}

	var transporterErr error
	vehicle.Transporter = strings.TrimSpace(vehicle.Transporter)
	vehicle.VehicleNumber = strings.TrimSpace(vehicle.VehicleNumber)
	if vehicle.Transporter == "" {
		transporterErr = errs.NewValueIsRequiredError("transporter")
	}

	if err := errors.Join(loadConfirmationID.Validate(), refErr, invoicesErr, transporterErr); err != nil {
		return CreateLoadConfirmationCommand{}, err
	}

	return CreateLoadConfirmationCommand{
		loadConfirmationID: loadConfirmationID,
		fileReference:      ref,
		invoiceIDs:         append([]kernel.UUID(nil), invoiceIDs...),
		vehicle:            vehicle,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateLoadConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrCreateLoadConfirmationCommandIsNotConstructed)
}

func (c CreateLoadConfirmationCommand) LoadConfirmationID() kernel.UUID     { return c.loadConfirmationID }
func (c CreateLoadConfirmationCommand) FileReference() kernel.FileReference { return c.fileReference }
func (c CreateLoadConfirmationCommand) Vehicle() booking.Vehicle            { return c.vehicle }

func (c CreateLoadConfirmationCommand) InvoiceIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.invoiceIDs...)
}
