package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/ports"
)

// RequestLoadConfirmationEmailCommandHandler records the email request and
// hands it to the notifier once the entry is committed. Delivery failures are
// logged only.
type RequestLoadConfirmationEmailCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewRequestLoadConfirmationEmailCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RequestLoadConfirmationEmailCommandHandler {
	return RequestLoadConfirmationEmailCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "request_load_confirmation_email_command"),
	}
}

func (h RequestLoadConfirmationEmailCommandHandler) Handle(
	ctx context.Context,
	cmd RequestLoadConfirmationEmailCommand,
) error {
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

	lc, err := uow.LoadConfirmationRepository().Get(ctx, cmd.LoadConfirmationID())
	if err != nil {
		return err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerLoadConfirmation,
		ownerID:     lc.ID(),
		typ:         activity.LoadConfirmationEmailed,
		description: fmt.Sprintf("load confirmation for %s emailed", lc.FileReference().String()),
		metadata:    map[string]any{"recipients": cmd.Recipients()},
	}, time.Now()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	email := ports.LoadConfirmationEmail{
		LoadConfirmationID: lc.ID(),
		FileReference:      lc.FileReference(),
		Transporter:        lc.Transporter(),
		VehicleNumber:      lc.VehicleNumber(),
		Recipients:         cmd.Recipients(),
	}
	if err = h.notifier.SendLoadConfirmationEmail(context.WithoutCancel(ctx), email); err != nil {
		h.logger.ErrorContext(ctx, "failed to send load confirmation email",
			"loadConfirmationId", lc.ID().String(), "error", err)
	}

	return nil
}
