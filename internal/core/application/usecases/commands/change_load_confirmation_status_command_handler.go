package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/booking"
)

// ChangeLoadConfirmationStatusCommandHandler moves a load confirmation
// through its lifecycle. Cancelling releases the booking the same way a
// delete does; delivering completes the originating transport request.
type ChangeLoadConfirmationStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewChangeLoadConfirmationStatusCommandHandler(uowFactory UoWFactory) ChangeLoadConfirmationStatusCommandHandler {
	return ChangeLoadConfirmationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ChangeLoadConfirmationStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeLoadConfirmationStatusCommand,
) (booking.Status, error) {
	if err := cmd.Validate(); err != nil {
		return booking.UnknownStatus, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return booking.UnknownStatus, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lcRepo := uow.LoadConfirmationRepository()
	lc, err := lcRepo.GetForUpdate(ctx, cmd.LoadConfirmationID())
	if err != nil {
		return booking.UnknownStatus, err
	}

	if _, err = lc.Status().Apply(cmd.Action()); err != nil {
		return booking.UnknownStatus, err
	}

	if cmd.Action() == booking.Cancel {
		if err = releaseBooking(ctx, uow, lc); err != nil {
			return booking.UnknownStatus, err
		}
	}

	from, err := lc.Apply(cmd.Action())
	if err != nil {
		return booking.UnknownStatus, err
	}

	if err = lcRepo.Update(ctx, lc); err != nil {
		return booking.UnknownStatus, err
	}

	if lc.Status() == booking.Delivered && lc.FromTransportRequest() {
		requestRepo := uow.TransportRequestRepository()
		request, getErr := requestRepo.GetForUpdate(ctx, *lc.TransportRequestID())
		if getErr != nil {
			return booking.UnknownStatus, getErr
		}
		if err = request.Complete(); err != nil {
			return booking.UnknownStatus, err
		}
		if err = requestRepo.Update(ctx, request); err != nil {
			return booking.UnknownStatus, err
		}
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerLoadConfirmation,
		ownerID:     lc.ID(),
		typ:         activity.LoadConfirmationStatus,
		description: fmt.Sprintf("load confirmation for %s: %s", lc.FileReference().String(), cmd.Action()),
		change:      activity.Change{From: from.String(), To: lc.Status().String()},
		metadata:    map[string]any{"action": cmd.Action().String()},
	}, time.Now()); err != nil {
		return booking.UnknownStatus, err
	}

	if err = uow.Commit(ctx); err != nil {
		return booking.UnknownStatus, err
	}

	return lc.Status(), nil
}
