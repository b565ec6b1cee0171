// Package notify delivers workflow notifications. LogNotifier writes them to
// the structured log, where the mail relay and the transport desk feed pick
// them up by their "notification" attribute.
package notify

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) NotifyReadyForTransport(ctx context.Context, notice ports.ReadyForTransportNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "invoice ready for transport",
		"notification", "ready_for_transport",
		"invoiceId", notice.InvoiceID.String(),
		"invoiceNumber", notice.InvoiceNumber,
		"readyDispatchAt", notice.ReadyDispatchAt,
		"notes", notice.Notes,
	)
	return nil
}

func (n *LogNotifier) SendLoadConfirmationEmail(ctx context.Context, email ports.LoadConfirmationEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "load confirmation email requested",
		"notification", "load_confirmation_email",
		"loadConfirmationId", email.LoadConfirmationID.String(),
		"fileReference", email.FileReference.String(),
		"transporter", email.Transporter,
		"vehicleNumber", email.VehicleNumber,
		"recipients", email.Recipients,
	)
	return nil
}
