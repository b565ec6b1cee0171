package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/invoice"
)

// CreateInvoiceCommandHandler persists new invoices together with their
// creation entry in the activity log.
type CreateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

func NewCreateInvoiceCommandHandler(uowFactory InvoiceUoWFactory) CreateInvoiceCommandHandler {
	return CreateInvoiceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateInvoiceCommandHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	inv, err := invoice.NewInvoice(cmd.InvoiceID(), cmd.Number(), cmd.Requirements(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerInvoice,
		ownerID:     inv.ID(),
		typ:         activity.InvoiceCreated,
		description: fmt.Sprintf("invoice %s created", inv.Number()),
		change:      activity.Change{To: inv.Stage().String()},
		metadata: map[string]any{
			"qcRequired": inv.Requirements().QC,
			"bvRequired": inv.Requirements().BV,
		},
	}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
