package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignTransportRequestCommandIsNotConstructed = errors.New(
	"AssignTransportRequestCommand must be created via NewAssignTransportRequestCommand constructor",
)

// AssignTransportRequestCommand fulfils a pending request with a vehicle. The
// file reference may be left empty when the request's packing units carry
// exactly one reference.
type AssignTransportRequestCommand struct { //nolint:recvcheck //using for validation
	requestID          kernel.UUID
	loadConfirmationID kernel.UUID
	fileReference      kernel.FileReference
	vehicle            booking.Vehicle

	guard guard.ConstructorGuard
}

func NewAssignTransportRequestCommand(
	requestID kernel.UUID,
	loadConfirmationID kernel.UUID,
	fileReference string,
	vehicle booking.Vehicle,
) (AssignTransportRequestCommand, error) {
	ref, refErr := kernel.NewFileReference(fileReference)

	var transporterErr error
	vehicle.Transporter = strings.TrimSpace(vehicle.Transporter)
	vehicle.VehicleNumber = strings.TrimSpace(vehicle.VehicleNumber)
	if vehicle.Transporter == "" {
		transporterErr = errs.NewValueIsRequiredError("transporter")
	}

	if err := errors.Join(requestID.Validate(), loadConfirmationID.Validate(), refErr, transporterErr); err != nil {
		return AssignTransportRequestCommand{}, err
	}

	return AssignTransportRequestCommand{
		requestID:          requestID,
		loadConfirmationID: loadConfirmationID,
		fileReference:      ref,
		vehicle:            vehicle,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c AssignTransportRequestCommand) Validate() error {
	return c.guard.Validate(ErrAssignTransportRequestCommandIsNotConstructed)
}

func (c AssignTransportRequestCommand) RequestID() kernel.UUID              { return c.requestID }
func (c AssignTransportRequestCommand) LoadConfirmationID() kernel.UUID     { return c.loadConfirmationID }
func (c AssignTransportRequestCommand) FileReference() kernel.FileReference { return c.fileReference }
func (c AssignTransportRequestCommand) Vehicle() booking.Vehicle            { return c.vehicle }
