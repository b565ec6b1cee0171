package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type bookingInput struct {
	loadConfirmationID kernel.UUID
	fileReference      kernel.FileReference
	invoiceIDs         []kernel.UUID
	vehicle            booking.Vehicle
	transportRequestID *kernel.UUID
}

// bookLoadConfirmation is the only path that creates load confirmations.
// Lock order: invoices, chain row, packing unit holders.
func bookLoadConfirmation(ctx context.Context, uow UoW, in bookingInput, now time.Time) (*booking.LoadConfirmation, error) {
	invoiceRepo := uow.InvoiceRepository()
	unitRepo := uow.PackingUnitRepository()
	chainRepo := uow.ShipmentChainRepository()

	invoices, err := invoiceRepo.GetManyForUpdate(ctx, in.invoiceIDs)
	if err != nil {
		return nil, err
	}

	units, err := unitRepo.ListByInvoices(ctx, in.invoiceIDs)
	if err != nil {
		return nil, err
	}
	exclude := make([]kernel.UUID, 0, len(units))
	for _, u := range units {
		exclude = append(exclude, u.ID())
	}

	res, _, err := resolveForWrite(ctx, unitRepo, chainRepo, in.fileReference, exclude...)
	if err != nil {
		return nil, err
	}
	if err = services.NewBookingGate().CanBook(res).Err(); err != nil {
		return nil, err
	}

	lc, err := booking.NewLoadConfirmation(
		in.loadConfirmationID, in.fileReference, in.invoiceIDs, in.vehicle, in.transportRequestID, now)
	if err != nil {
		return nil, err
	}
	if err = uow.LoadConfirmationRepository().Add(ctx, lc); err != nil {
		return nil, err
	}

	booked, err := chain.Book(in.fileReference, lc.ID(), now)
	if err != nil {
		return nil, err
	}
	if err = chainRepo.Add(ctx, booked); err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		if err = inv.BookTransport(); err != nil {
			return nil, fmt.Errorf("invoice %s: %w", inv.Number(), err)
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return nil, err
		}
	}

	return lc, nil
}

// releaseBooking undoes the effects of bookLoadConfirmation: the chain row
// is removed and every invoice returns to its pre-booking transport status.
// It fails with ManifestDependency once any invoice is on a manifest.
func releaseBooking(ctx context.Context, uow UoW, lc *booking.LoadConfirmation) error {
	if err := checkNotManifested(ctx, uow.ManifestRepository(), lc.InvoiceIDs()); err != nil {
		return err
	}

	invoiceRepo := uow.InvoiceRepository()
	invoices, err := invoiceRepo.GetManyForUpdate(ctx, lc.InvoiceIDs())
	if err != nil {
		return err
	}

	chainRepo := uow.ShipmentChainRepository()
	booked, err := chainRepo.GetForUpdate(ctx, lc.FileReference())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return err
	case booked.LoadConfirmationID().IsEqual(lc.ID()):
		if err = booked.CheckReleasable(); err != nil {
			return err
		}
		if err = chainRepo.Delete(ctx, lc.FileReference()); err != nil {
			return err
		}
	}

	for _, inv := range invoices {
		if inv.TransportStatus() != invoice.TransportBooked {
			continue
		}
		if err = inv.ReleaseTransport(lc.FromTransportRequest()); err != nil {
			return err
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
	}

	return nil
}

// checkNotManifested fails with errs.ErrManifestDependency when any of ids is
// already filed on a manifest.
func checkNotManifested(ctx context.Context, manifests ports.ManifestRepository, ids []kernel.UUID) error {
	onManifest, err := manifests.InvoicesOnManifest(ctx, ids)
	if err != nil {
		return err
	}
	if len(onManifest) > 0 {
		return errs.NewWorkflowError(
			errs.ErrManifestDependency,
			fmt.Sprintf("invoices %s are already on a filed manifest", strings.Join(uuidStrings(onManifest), ", ")),
		)
	}
	return nil
}
