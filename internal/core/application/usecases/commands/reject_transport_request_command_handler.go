package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/invoice"
)

// RejectTransportRequestCommandHandler closes a pending request without a
// vehicle. Invoices still waiting on the request go back to having no
// transport; invoices booked directly in the meantime are left alone.
type RejectTransportRequestCommandHandler struct {
	uowFactory UoWFactory
}

func NewRejectTransportRequestCommandHandler(uowFactory UoWFactory) RejectTransportRequestCommandHandler {
	return RejectTransportRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RejectTransportRequestCommandHandler) Handle(ctx context.Context, cmd RejectTransportRequestCommand) error {
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
	invoiceRepo := uow.InvoiceRepository()

	request, err := requestRepo.GetForUpdate(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	from := request.Status()
	if err = request.Reject(cmd.Reason()); err != nil {
		return err
	}

	invoices, err := invoiceRepo.GetManyForUpdate(ctx, request.InvoiceIDs())
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if inv.TransportStatus() != invoice.TransportRequested {
			continue
		}
		if err = inv.WithdrawTransportRequest(); err != nil {
			return err
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerTransportRequest,
		ownerID:     request.ID(),
		typ:         activity.TransportRequestRejected,
		description: "transport request rejected: " + request.RejectionReason(),
		change:      activity.Change{From: from.String(), To: request.Status().String()},
		metadata:    map[string]any{"invoiceIds": uuidStrings(request.InvoiceIDs())},
	}, time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
