package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// resolveForWrite re-resolves ref inside the caller's transaction, locking
// the chain row and the packing units that carry the reference.
// The returned chain is nil when the reference is not booked.
func resolveForWrite(
	ctx context.Context,
	units ports.PackingUnitRepository,
	chains ports.ShipmentChainRepository,
	ref kernel.FileReference,
	exclude ...kernel.UUID,
) (services.Resolution, *chain.ShipmentChain, error) {
	resolver := services.NewReferenceResolver()
	if ref.IsEmpty() {
		return resolver.Resolve(ref, services.ReferenceFacts{}), nil, nil
	}

	booked, err := chains.GetForUpdate(ctx, ref)
	if errors.Is(err, errs.ErrObjectNotFound) {
		booked, err = nil, nil
	}
	if err != nil {
		return services.Resolution{}, nil, err
	}

	holders, err := units.FindHolders(ctx, ref)
	if err != nil {
		return services.Resolution{}, nil, err
	}

	facts := services.ReferenceFacts{
		HolderIDs:              holders,
		LoadConfirmationBooked: booked != nil,
		ManifestFiled:          booked != nil && booked.IsLocked(),
	}
	return resolver.Resolve(ref, facts, exclude...), booked, nil
}
