package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/invoice"
)

// AdvanceStageResult is the invoice state after a successful advance.
type AdvanceStageResult struct {
	Stage           invoice.Stage
	ProgressPercent int
	Version         int
}

// AdvanceStageCommandHandler walks an invoice forward through its stages.
//
// The invoice row is locked for the duration of the transaction, so two
// concurrent advances serialize; the optional expected version lets a client
// detect that someone else advanced first.
type AdvanceStageCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

func NewAdvanceStageCommandHandler(uowFactory InvoiceUoWFactory) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) (AdvanceStageResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceStageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceStageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.GetForUpdate(ctx, cmd.InvoiceID())
	if err != nil {
		return AdvanceStageResult{}, err
	}

	if expected, ok := cmd.ExpectedVersion(); ok {
		if err = inv.CheckVersion(expected); err != nil {
			return AdvanceStageResult{}, err
		}
	}

	now := time.Now()
	from := inv.Stage()
	if err = inv.Advance(now, cmd.Notes()); err != nil {
		return AdvanceStageResult{}, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return AdvanceStageResult{}, err
	}

	progress := inv.Progress()
	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerInvoice,
		ownerID:     inv.ID(),
		typ:         activity.StageAdvanced,
		description: fmt.Sprintf("invoice %s advanced from %s to %s", inv.Number(), from, inv.Stage()),
		change:      activity.Change{From: from.String(), To: inv.Stage().String()},
		metadata: map[string]any{
			"notes":           cmd.Notes(),
			"progressPercent": progress,
		},
	}, now); err != nil {
		return AdvanceStageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceStageResult{}, err
	}

	// The repository bumps the stored version on a successful update.
	return AdvanceStageResult{
		Stage:           inv.Stage(),
		ProgressPercent: progress,
		Version:         inv.Version() + 1,
	}, nil
}
