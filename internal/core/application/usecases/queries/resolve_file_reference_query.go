package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrResolveFileReferenceQueryIsNotConstructed = errors.New(
	"ResolveFileReferenceQuery must be created via NewResolveFileReferenceQuery constructor",
)

// ResolveFileReferenceQuery asks what a file name would mean for a packing
// unit. The unit being edited is excluded so it does not collide with itself.
//
// Example:
//
//	query, err := NewResolveFileReferenceQuery("FR-2024-0042", &packingUnitID)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, query)
type ResolveFileReferenceQuery struct {
	fileName             kernel.FileReference
	excludePackingUnitID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewResolveFileReferenceQuery(fileName string, excludePackingUnitID *kernel.UUID) (ResolveFileReferenceQuery, error) {
	ref, err := kernel.NewFileReference(fileName)
	if err != nil {
		return ResolveFileReferenceQuery{}, err
	}

	if excludePackingUnitID != nil {
		if err = excludePackingUnitID.Validate(); err != nil {
			return ResolveFileReferenceQuery{}, err
		}
		id := *excludePackingUnitID
		excludePackingUnitID = &id
	}

	return ResolveFileReferenceQuery{
		fileName:             ref,
		excludePackingUnitID: excludePackingUnitID,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (q ResolveFileReferenceQuery) Validate() error {
	return q.guard.Validate(ErrResolveFileReferenceQueryIsNotConstructed)
}

func (q ResolveFileReferenceQuery) FileName() kernel.FileReference { return q.fileName }

func (q ResolveFileReferenceQuery) ExcludePackingUnitID() *kernel.UUID { return q.excludePackingUnitID }

// ResolveFileReferenceResponse is the derived status of a file name. An
// error status is never authoritative and must not be cached by callers.
type ResolveFileReferenceResponse struct {
	FileName kernel.FileReference
	Status   services.ReferenceStatus
	Detail   string
}
