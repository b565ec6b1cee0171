package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/ports"
)

// ReadyForTransportResult is returned once an invoice is released.
type ReadyForTransportResult struct {
	Stage           invoice.Stage
	ReadyDispatchAt time.Time
}

// MarkReadyForTransportCommandHandler releases invoices for dispatch and
// notifies the transport desk after the transaction commits. A failed
// notification is logged and does not undo the release.
type MarkReadyForTransportCommandHandler struct {
	uowFactory InvoiceUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewMarkReadyForTransportCommandHandler(
	uowFactory InvoiceUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) MarkReadyForTransportCommandHandler {
	return MarkReadyForTransportCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "mark_ready_for_transport_command"),
	}
}

func (h MarkReadyForTransportCommandHandler) Handle(
	ctx context.Context,
	cmd MarkReadyForTransportCommand,
) (ReadyForTransportResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReadyForTransportResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReadyForTransportResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.GetForUpdate(ctx, cmd.InvoiceID())
	if err != nil {
		return ReadyForTransportResult{}, err
	}

	now := time.Now()
	from := inv.Stage()
	if err = inv.MarkReadyForTransport(cmd.Confirmed(), cmd.Notes(), now); err != nil {
		return ReadyForTransportResult{}, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return ReadyForTransportResult{}, err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerInvoice,
		ownerID:     inv.ID(),
		typ:         activity.ReadyForTransport,
		description: fmt.Sprintf("invoice %s marked ready for transport", inv.Number()),
		change:      activity.Change{From: from.String(), To: inv.Stage().String()},
		metadata:    map[string]any{"notes": cmd.Notes()},
	}, now); err != nil {
		return ReadyForTransportResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReadyForTransportResult{}, err
	}

	readyAt := *inv.ReadyDispatchAt()
	notice := ports.ReadyForTransportNotice{
		InvoiceID:       inv.ID(),
		InvoiceNumber:   inv.Number(),
		ReadyDispatchAt: readyAt,
		Notes:           cmd.Notes(),
	}
	if err = h.notifier.NotifyReadyForTransport(context.WithoutCancel(ctx), notice); err != nil {
		h.logger.ErrorContext(ctx, "failed to send ready for transport notice",
			"invoiceId", inv.ID().String(), "error", err)
	}

	return ReadyForTransportResult{Stage: inv.Stage(), ReadyDispatchAt: readyAt}, nil
}
