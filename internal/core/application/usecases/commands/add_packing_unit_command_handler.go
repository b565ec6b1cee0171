package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"
	"dispatch/internal/core/domain/services"
)

// AddPackingUnitCommandHandler creates packing units. A non-empty file name
// is resolved under lock first: names already carried by another unit, booked
// by a load confirmation or filed on a manifest are refused.
type AddPackingUnitCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewAddPackingUnitCommandHandler(uowFactory ReferenceUoWFactory) AddPackingUnitCommandHandler {
	return AddPackingUnitCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddPackingUnitCommandHandler) Handle(ctx context.Context, cmd AddPackingUnitCommand) error {
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

	inv, err := uow.InvoiceRepository().Get(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	unitRepo := uow.PackingUnitRepository()
	target, _, err := resolveForWrite(ctx, unitRepo, uow.ShipmentChainRepository(), cmd.FileName(), cmd.PackingUnitID())
	if err != nil {
		return err
	}

	// A new unit carries no reference yet.
	current := services.NewReferenceResolver().Resolve(kernel.FileReference{}, services.ReferenceFacts{})
	if err = services.NewBookingGate().CanChangeFileName(current, target).Err(); err != nil {
		return err
	}

	unit, err := packing.NewPackingUnit(cmd.PackingUnitID(), inv.ID(), cmd.FileName())
	if err != nil {
		return err
	}

	if err = unitRepo.Add(ctx, unit); err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerPackingUnit,
		ownerID:     unit.ID(),
		typ:         activity.PackingUnitAdded,
		description: fmt.Sprintf("packing unit added to invoice %s", inv.Number()),
		change:      activity.Change{To: string(target.Status)},
		metadata: map[string]any{
			"invoiceId": inv.ID().String(),
			"fileName":  unit.FileName().String(),
		},
	}, time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
