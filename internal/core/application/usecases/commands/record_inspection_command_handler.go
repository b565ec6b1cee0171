package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
)

// RecordInspectionCommandHandler updates inspection status and certificate
// flags. The stage is left untouched; certificates only matter when the
// invoice is marked ready for transport.
type RecordInspectionCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

func NewRecordInspectionCommandHandler(uowFactory InvoiceUoWFactory) RecordInspectionCommandHandler {
	return RecordInspectionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RecordInspectionCommandHandler) Handle(ctx context.Context, cmd RecordInspectionCommand) error {
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

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.GetForUpdate(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	before := inv.Inspection(cmd.Kind())
	if err = inv.RecordInspection(cmd.Kind(), cmd.Status(), cmd.HasCertificate()); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerInvoice,
		ownerID:     inv.ID(),
		typ:         activity.InspectionRecorded,
		description: fmt.Sprintf("%s inspection of invoice %s recorded as %s", cmd.Kind(), inv.Number(), cmd.Status()),
		change:      activity.Change{From: before.Status.String(), To: cmd.Status().String()},
		metadata: map[string]any{
			"kind":           cmd.Kind().String(),
			"hasCertificate": cmd.HasCertificate(),
		},
	}, time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
