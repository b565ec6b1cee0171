package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"
	"dispatch/internal/pkg/errs"
)

// AssignTransportRequestCommandHandler books a load confirmation for a
// pending transport request and marks the request assigned, in one
// transaction.
type AssignTransportRequestCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignTransportRequestCommandHandler(uowFactory UoWFactory) AssignTransportRequestCommandHandler {
	return AssignTransportRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AssignTransportRequestCommandHandler) Handle(ctx context.Context, cmd AssignTransportRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.TransportRequestRepository()
	request, err := requestRepo.GetForUpdate(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	from := request.Status()

	ref := cmd.FileReference()
	if ref.IsEmpty() {
		units, listErr := uow.PackingUnitRepository().ListByInvoices(ctx, request.InvoiceIDs())
		if listErr != nil {
			return listErr
		}
		if ref, err = singleReference(units); err != nil {
			return err
		}
	}

	now := time.Now()
	requestID := request.ID()
	lc, err := bookLoadConfirmation(ctx, uow, bookingInput{
		loadConfirmationID: cmd.LoadConfirmationID(),
		fileReference:      ref,
		invoiceIDs:         request.InvoiceIDs(),
		vehicle:            cmd.Vehicle(),
		transportRequestID: &requestID,
	}, now)
	if err != nil {
		return err
	}

	if err = request.Assign(lc.ID()); err != nil {
		return err
	}
	if err = requestRepo.Update(ctx, request); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerTransportRequest,
		ownerID:     request.ID(),
		typ:         activity.TransportRequestAssigned,
		description: fmt.Sprintf("transport request assigned to %s %s", lc.Transporter(), lc.VehicleNumber()),
		change:      activity.Change{From: from.String(), To: request.Status().String()},
		metadata: map[string]any{
			"loadConfirmationId": lc.ID().String(),
			"fileReference":      lc.FileReference().String(),
		},
	}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// singleReference returns the one distinct file reference carried by units.
func singleReference(units []*packing.PackingUnit) (kernel.FileReference, error) {
	var found kernel.FileReference
	for _, u := range units {
		if u.FileName().IsEmpty() || u.FileName().IsEqual(found) {
			continue
		}
		if !found.IsEmpty() {
			return kernel.FileReference{}, errs.NewValueIsRequiredErrorWithCause(
				"fileReference",
				fmt.Errorf("packing units carry both %q and %q", found.String(), u.FileName().String()),
			)
		}
		found = u.FileName()
	}

	if found.IsEmpty() {
		return kernel.FileReference{}, errs.NewValueIsRequiredError("fileReference")
	}
	return found, nil
}
