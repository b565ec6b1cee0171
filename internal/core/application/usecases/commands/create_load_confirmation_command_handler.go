package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
)

// CreateLoadConfirmationCommandHandler books a file reference for a set of
// invoices. The reference is re-resolved under lock; a reference already
// booked, held by a foreign packing unit or filed on a manifest is refused.
type CreateLoadConfirmationCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateLoadConfirmationCommandHandler(uowFactory UoWFactory) CreateLoadConfirmationCommandHandler {
	return CreateLoadConfirmationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateLoadConfirmationCommandHandler) Handle(ctx context.Context, cmd CreateLoadConfirmationCommand) error {
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

	now := time.Now()
	lc, err := bookLoadConfirmation(ctx, uow, bookingInput{
		loadConfirmationID: cmd.LoadConfirmationID(),
		fileReference:      cmd.FileReference(),
		invoiceIDs:         cmd.InvoiceIDs(),
		vehicle:            cmd.Vehicle(),
	}, now)
	if err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerLoadConfirmation,
		ownerID:     lc.ID(),
		typ:         activity.LoadConfirmationCreated,
		description: fmt.Sprintf("load confirmation for %s booked with %s", lc.FileReference().String(), lc.Transporter()),
		change:      activity.Change{To: lc.Status().String()},
		metadata: map[string]any{
			"fileReference": lc.FileReference().String(),
			"invoiceIds":    uuidStrings(lc.InvoiceIDs()),
			"vehicleNumber": lc.VehicleNumber(),
		},
	}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
