package chain

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrShipmentChainIsNotConstructed = errors.New("ShipmentChain must be created via Book or RestoreShipmentChain")

// ShipmentChain binds a file reference to its load confirmation and manifest.
type ShipmentChain struct {
	fileReference      kernel.FileReference
	status             Status
	loadConfirmationID kernel.UUID
	manifestID         *kernel.UUID
	bookedAt           time.Time
	lockedAt           *time.Time
	guard              guard.ConstructorGuard
}

// Book opens a chain for a reference that has just received a load confirmation.
func Book(ref kernel.FileReference, loadConfirmationID kernel.UUID, now time.Time) (*ShipmentChain, error) {
	if ref.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("fileReference")
	}
	if err := loadConfirmationID.Validate(); err != nil {
		return nil, err
	}
	return &ShipmentChain{
		fileReference:      ref,
		status:             Confirmed,
		loadConfirmationID: loadConfirmationID,
		bookedAt:           now.UTC(),
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func RestoreShipmentChain(
	ref kernel.FileReference,
	status Status,
	loadConfirmationID kernel.UUID,
	manifestID *kernel.UUID,
	bookedAt time.Time,
	lockedAt *time.Time,
) (*ShipmentChain, error) {
	c, err := Book(ref, loadConfirmationID, bookedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if (status == Locked) != (manifestID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"manifestID",
			fmt.Errorf("chain %s is %s but manifest presence is %t", ref, status, manifestID != nil),
		)
	}
	c.status = status
	c.manifestID = manifestID
	c.lockedAt = lockedAt
	return c, nil
}

func (c *ShipmentChain) Validate() error {
	if c == nil {
		return ErrShipmentChainIsNotConstructed
	}
	return c.guard.Validate(ErrShipmentChainIsNotConstructed)
}

func (c *ShipmentChain) FileReference() kernel.FileReference { return c.fileReference }
func (c *ShipmentChain) Status() Status                      { return c.status }
func (c *ShipmentChain) LoadConfirmationID() kernel.UUID     { return c.loadConfirmationID }
func (c *ShipmentChain) ManifestID() *kernel.UUID            { return c.manifestID }
func (c *ShipmentChain) BookedAt() time.Time                 { return c.bookedAt }
func (c *ShipmentChain) LockedAt() *time.Time                { return c.lockedAt }
func (c *ShipmentChain) IsLocked() bool                      { return c.status == Locked }

// Lock records the manifest filing. Locked is terminal.
func (c *ShipmentChain) Lock(manifestID kernel.UUID, now time.Time) error {
	if err := manifestID.Validate(); err != nil {
		return err
	}
	if c.status == Locked {
		return errs.NewWorkflowError(
			errs.ErrReferenceLocked,
			fmt.Sprintf("file reference %q is already on manifest %s", c.fileReference, c.manifestID),
		)
	}
	now = now.UTC()
	c.status = Locked
	c.manifestID = &manifestID
	c.lockedAt = &now
	return nil
}

// CheckReleasable fails once the chain is on a manifest.
func (c *ShipmentChain) CheckReleasable() error {
	if c.status == Locked {
		return errs.NewWorkflowError(
			errs.ErrManifestDependency,
			fmt.Sprintf("file reference %q is on a filed manifest", c.fileReference),
		)
	}
	return nil
}
