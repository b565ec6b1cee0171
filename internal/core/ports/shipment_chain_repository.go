package ports

import (
	"context"

	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/kernel"
)

// ShipmentChainRepository persists the file reference registry. Add fails
// with errs.ErrAlreadyBooked when the reference already has a chain.
type ShipmentChainRepository interface {
	Add(ctx context.Context, c *chain.ShipmentChain) error
	Update(ctx context.Context, c *chain.ShipmentChain) error

	// GetForUpdate locks and returns the chain of ref. It fails with
	// errs.ErrObjectNotFound when the reference is not booked.
	GetForUpdate(ctx context.Context, ref kernel.FileReference) (*chain.ShipmentChain, error)

	Delete(ctx context.Context, ref kernel.FileReference) error
}
