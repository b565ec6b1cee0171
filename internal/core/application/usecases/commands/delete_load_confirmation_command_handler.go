package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
)

// DeleteLoadConfirmationCommandHandler removes a load confirmation. An
// active booking is released first. Any status fails with
// errs.ErrManifestDependency once a manifest references the invoices.
type DeleteLoadConfirmationCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteLoadConfirmationCommandHandler(uowFactory UoWFactory) DeleteLoadConfirmationCommandHandler {
	return DeleteLoadConfirmationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DeleteLoadConfirmationCommandHandler) Handle(ctx context.Context, cmd DeleteLoadConfirmationCommand) error {
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

	lcRepo := uow.LoadConfirmationRepository()
	lc, err := lcRepo.GetForUpdate(ctx, cmd.LoadConfirmationID())
	if err != nil {
		return err
	}

	// A cancelled confirmation has already released its booking, but its
	// invoices may since have been filed through another confirmation.
	if lc.Status().IsActive() {
		err = releaseBooking(ctx, uow, lc)
	} else {
		err = checkNotManifested(ctx, uow.ManifestRepository(), lc.InvoiceIDs())
	}
	if err != nil {
		return err
	}

	if err = lcRepo.Delete(ctx, lc.ID()); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerLoadConfirmation,
		ownerID:     lc.ID(),
		typ:         activity.LoadConfirmationDeleted,
		description: fmt.Sprintf("load confirmation for %s deleted", lc.FileReference().String()),
		change:      activity.Change{From: lc.Status().String()},
		metadata: map[string]any{
			"fileReference": lc.FileReference().String(),
			"invoiceIds":    uuidStrings(lc.InvoiceIDs()),
		},
	}, time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
