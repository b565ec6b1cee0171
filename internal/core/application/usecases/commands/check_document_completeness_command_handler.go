package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/ports"
)

// DocumentCompleteness reports the evaluated paperwork state of an invoice.
type DocumentCompleteness struct {
	Complete bool
	Blocked  bool
	Changed  bool
}

// CheckDocumentCompletenessCommandHandler flips the "blocked waiting for
// documents" flag. Paperwork is complete when an invoice document is stored
// and every required inspection has a certificate. An activity entry is
// written only when the flag changes.
type CheckDocumentCompletenessCommandHandler struct {
	uowFactory InvoiceUoWFactory
	documents  ports.DocumentStore
}

func NewCheckDocumentCompletenessCommandHandler(
	uowFactory InvoiceUoWFactory,
	documents ports.DocumentStore,
) CheckDocumentCompletenessCommandHandler {
	return CheckDocumentCompletenessCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

func (h CheckDocumentCompletenessCommandHandler) Handle(
	ctx context.Context,
	cmd CheckDocumentCompletenessCommand,
) (DocumentCompleteness, error) {
	if err := cmd.Validate(); err != nil {
		return DocumentCompleteness{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DocumentCompleteness{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.GetForUpdate(ctx, cmd.InvoiceID())
	if err != nil {
		return DocumentCompleteness{}, err
	}

	docs, err := h.documents.DocumentsOfType(ctx, inv.ID(), ports.InvoiceDocumentType)
	if err != nil {
		return DocumentCompleteness{}, err
	}

	wasBlocked := inv.BlockedWaitingForDocuments()
	complete, changed := inv.EvaluateDocumentCompleteness(len(docs) > 0)
	result := DocumentCompleteness{
		Complete: complete,
		Blocked:  inv.BlockedWaitingForDocuments(),
		Changed:  changed,
	}
	if !changed {
		return result, uow.Commit(ctx)
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return DocumentCompleteness{}, err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerInvoice,
		ownerID:     inv.ID(),
		typ:         activity.DocumentsChecked,
		description: fmt.Sprintf("invoice %s paperwork complete: %t", inv.Number(), complete),
		change:      activity.Change{From: blockedLabel(wasBlocked), To: blockedLabel(result.Blocked)},
		metadata:    map[string]any{"invoiceDocuments": len(docs)},
	}, time.Now()); err != nil {
		return DocumentCompleteness{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DocumentCompleteness{}, err
	}

	return result, nil
}

func blockedLabel(blocked bool) string {
	if blocked {
		return "blocked"
	}
	return "clear"
}
