package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// ChangeFileNameResult is the resolution of the unit's reference after the edit.
type ChangeFileNameResult struct {
	FileName kernel.FileReference
	Status   services.ReferenceStatus
	Changed  bool
}

// ChangeFileNameCommandHandler edits packing unit file names. Both the
// current and the requested reference are re-resolved inside the transaction;
// a reference filed on a manifest can never be changed or taken over.
type ChangeFileNameCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewChangeFileNameCommandHandler(uowFactory ReferenceUoWFactory) ChangeFileNameCommandHandler {
	return ChangeFileNameCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ChangeFileNameCommandHandler) Handle(ctx context.Context, cmd ChangeFileNameCommand) (ChangeFileNameResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeFileNameResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeFileNameResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unitRepo := uow.PackingUnitRepository()
	chainRepo := uow.ShipmentChainRepository()

	unit, err := unitRepo.GetForUpdate(ctx, cmd.PackingUnitID())
	if err != nil {
		return ChangeFileNameResult{}, err
	}

	from := unit.FileName()
	to := cmd.FileName()

	// Chain rows are always locked in reference order.
	first, second := from, to
	if second.String() < first.String() {
		first, second = second, first
	}
	resolved := make(map[string]services.Resolution, 2)
	for _, ref := range []kernel.FileReference{first, second} {
		if _, ok := resolved[ref.String()]; ok {
			continue
		}
		res, _, resolveErr := resolveForWrite(ctx, unitRepo, chainRepo, ref, unit.ID())
		if resolveErr != nil {
			return ChangeFileNameResult{}, resolveErr
		}
		resolved[ref.String()] = res
	}
	current, target := resolved[from.String()], resolved[to.String()]

	if from.IsEqual(to) {
		if err = uow.Commit(ctx); err != nil {
			return ChangeFileNameResult{}, err
		}
		return ChangeFileNameResult{FileName: to, Status: target.Status}, nil
	}

	if err = services.NewBookingGate().CanChangeFileName(current, target).Err(); err != nil {
		return ChangeFileNameResult{}, err
	}

	unit.ChangeFileName(to)
	if err = unitRepo.Update(ctx, unit); err != nil {
		return ChangeFileNameResult{}, err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerPackingUnit,
		ownerID:     unit.ID(),
		typ:         activity.FileNameChanged,
		description: fmt.Sprintf("file name changed from %q to %q", from.String(), to.String()),
		change:      activity.Change{From: from.String(), To: to.String()},
		metadata: map[string]any{
			"invoiceId":  unit.InvoiceID().String(),
			"fromStatus": string(current.Status),
			"toStatus":   string(target.Status),
		},
	}, time.Now()); err != nil {
		return ChangeFileNameResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeFileNameResult{}, err
	}

	return ChangeFileNameResult{FileName: to, Status: target.Status, Changed: true}, nil
}
