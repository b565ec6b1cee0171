package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/manifest"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateManifestResult identifies the filed manifest.
type CreateManifestResult struct {
	ManifestID string
	Number     string
}

// CreateManifestCommandHandler files a manifest for an active load
// confirmation and locks its file reference in the chain registry.
type CreateManifestCommandHandler struct {
	uowFactory UoWFactory
	numbers    ports.ManifestNumberSource
}

func NewCreateManifestCommandHandler(uowFactory UoWFactory, numbers ports.ManifestNumberSource) CreateManifestCommandHandler {
	return CreateManifestCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

func (h CreateManifestCommandHandler) Handle(ctx context.Context, cmd CreateManifestCommand) (CreateManifestResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateManifestResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateManifestResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lc, err := uow.LoadConfirmationRepository().GetForUpdate(ctx, cmd.LoadConfirmationID())
	if err != nil {
		return CreateManifestResult{}, err
	}
	if !lc.Status().IsActive() {
		return CreateManifestResult{}, errs.NewValueIsInvalidErrorWithCause(
			"loadConfirmation",
			fmt.Errorf("load confirmation %s is %s", lc.ID().String(), lc.Status()),
		)
	}

	chainRepo := uow.ShipmentChainRepository()
	booked, err := chainRepo.GetForUpdate(ctx, lc.FileReference())
	if err != nil {
		return CreateManifestResult{}, err
	}
	if !booked.LoadConfirmationID().IsEqual(lc.ID()) {
		return CreateManifestResult{}, errs.NewWorkflowError(
			errs.ErrAlreadyBooked,
			fmt.Sprintf("%s is booked by another load confirmation", lc.FileReference().String()),
		)
	}
	from := booked.Status()

	number, err := h.numbers.NextManifestNumber(ctx)
	if err != nil {
		return CreateManifestResult{}, err
	}

	now := time.Now()
	m, err := manifest.NewManifest(cmd.ManifestID(), number, lc.ID(), lc.FileReference(), lc.InvoiceIDs(), now)
	if err != nil {
		return CreateManifestResult{}, err
	}

	if err = booked.Lock(m.ID(), now); err != nil {
		return CreateManifestResult{}, err
	}

	if err = uow.ManifestRepository().Add(ctx, m); err != nil {
		return CreateManifestResult{}, err
	}
	if err = chainRepo.Update(ctx, booked); err != nil {
		return CreateManifestResult{}, err
	}

	if err = appendActivity(ctx, uow.ActivityLogRepository(), activityRecord{
		ownerType:   activity.OwnerManifest,
		ownerID:     m.ID(),
		typ:         activity.ManifestCreated,
		description: fmt.Sprintf("manifest %s filed for %s", m.Number(), m.FileReference().String()),
		change:      activity.Change{From: from.String(), To: booked.Status().String()},
		metadata: map[string]any{
			"loadConfirmationId": lc.ID().String(),
			"invoiceIds":         uuidStrings(m.InvoiceIDs()),
		},
	}, now); err != nil {
		return CreateManifestResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateManifestResult{}, err
	}

	return CreateManifestResult{ManifestID: m.ID().String(), Number: m.Number()}, nil
}
