package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transport"
	"dispatch/internal/core/domain/services"
)

// CreateTransportRequestCommandHandler opens a transport request. Every
// invoice must have no transport yet and none of its packing unit references
// may already be booked or filed.
type CreateTransportRequestCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateTransportRequestCommandHandler(uowFactory UoWFactory) CreateTransportRequestCommandHandler {
	return CreateTransportRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateTransportRequestCommandHandler) Handle(ctx context.Context, cmd CreateTransportRequestCommand) error {
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
	unitRepo := uow.PackingUnitRepository()
	chainRepo := uow.ShipmentChainRepository()

	invoices, err := invoiceRepo.GetManyForUpdate(ctx, cmd.InvoiceIDs())
	if err != nil {
		return err
	}

	units, err := unitRepo.ListByInvoices(ctx, cmd.InvoiceIDs())
	if err != nil {
		return err
	}
	exclude := make([]kernel.UUID, 0, len(units))
	for _, u := range units {
		exclude = append(exclude, u.ID())
	}

	gate := services.NewBookingGate()
	for _, inv := range invoices {
		var refs []services.Resolution
		for _, u := range units {
			if !u.InvoiceID().IsEqual(inv.ID()) || u.FileName().IsEmpty() {
				continue
			}
			res, _, resolveErr := resolveForWrite(ctx, unitRepo, chainRepo, u.FileName(), exclude...)
			if resolveErr != nil {
				return resolveErr
			}
			refs = append(refs, res)
		}

		if err = gate.CanRequestTransport(inv, refs).Err(); err != nil {
			return err
		}
		if err = inv.RequestTransport(); err != nil {
			return err
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
	}

	now := time.Now()
	request, err := transport.NewRequest(cmd.RequestID(), cmd.InvoiceIDs(), cmd.Notes(), now)
	if err != nil {
		return err
	}

	if err = uow.TransportRequestRepository().Add(ctx, request); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerTransportRequest,
		ownerID:     request.ID(),
		typ:         activity.TransportRequested,
		description: fmt.Sprintf("transport requested for %d invoice(s)", len(request.InvoiceIDs())),
		change:      activity.Change{To: request.Status().String()},
		metadata: map[string]any{
			"invoiceIds": uuidStrings(request.InvoiceIDs()),
			"notes":      request.Notes(),
		},
	}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
