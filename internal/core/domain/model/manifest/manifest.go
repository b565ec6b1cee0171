// Package manifest provides the Manifest aggregate: the customs filing that
// consolidates one load confirmation and its invoices. Filing a manifest
// locks the file reference of the confirmation forever.
package manifest

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest or RestoreManifest")

type Manifest struct {
	id                 kernel.UUID
	number             string
	loadConfirmationID kernel.UUID
	fileReference      kernel.FileReference
	invoiceIDs         []kernel.UUID
	filedAt            time.Time
	guard              guard.ConstructorGuard
}

func NewManifest(
	id kernel.UUID,
	number string,
	loadConfirmationID kernel.UUID,
	fileReference kernel.FileReference,
	invoiceIDs []kernel.UUID,
	now time.Time,
) (*Manifest, error) {
	number = strings.TrimSpace(number)

	var numberErr, refErr, invoicesErr error
	if number == "" {
		numberErr = errs.NewValueIsRequiredError("number")
	}
	if fileReference.IsEmpty() {
		refErr = errs.NewValueIsRequiredError("fileReference")
	}
	if len(invoiceIDs) == 0 {
		invoicesErr = errs.NewValueIsRequiredError("invoiceIDs")
	}

	if err := errors.Join(
		id.Validate(),
		loadConfirmationID.Validate(),
		numberErr,
		refErr,
		invoicesErr,
	); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, len(invoiceIDs))
	copy(ids, invoiceIDs)

	return &Manifest{
		id:                 id,
		number:             number,
		loadConfirmationID: loadConfirmationID,
		fileReference:      fileReference,
		invoiceIDs:         ids,
		filedAt:            now.UTC(),
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// RestoreManifest rebuilds a manifest loaded from storage.
func RestoreManifest(
	id kernel.UUID,
	number string,
	loadConfirmationID kernel.UUID,
	fileReference kernel.FileReference,
	invoiceIDs []kernel.UUID,
	filedAt time.Time,
) (*Manifest, error) {
	return NewManifest(id, number, loadConfirmationID, fileReference, invoiceIDs, filedAt)
}

func (m *Manifest) Validate() error {
	if m == nil {
		return ErrManifestIsNotConstructed
	}
	return m.guard.Validate(ErrManifestIsNotConstructed)
}

func (m *Manifest) ID() kernel.UUID                     { return m.id }
func (m *Manifest) Number() string                      { return m.number }
func (m *Manifest) LoadConfirmationID() kernel.UUID     { return m.loadConfirmationID }
func (m *Manifest) FileReference() kernel.FileReference { return m.fileReference }
func (m *Manifest) FiledAt() time.Time                  { return m.filedAt }

func (m *Manifest) InvoiceIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(m.invoiceIDs))
	copy(out, m.invoiceIDs)
	return out
}
