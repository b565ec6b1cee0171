// Package activity provides the append-only audit trail. Every state-changing
// operation of the dispatch workflow writes exactly one Entry in the same
// transaction as the change itself.
package activity

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// OwnerType names the aggregate an entry is about.
type OwnerType string

const (
	OwnerInvoice          OwnerType = "invoice"
	OwnerPackingUnit      OwnerType = "packing_unit"
	OwnerTransportRequest OwnerType = "transport_request"
	OwnerLoadConfirmation OwnerType = "load_confirmation"
	OwnerManifest         OwnerType = "manifest"
)

func (o OwnerType) Validate() error {
	switch o {
	case OwnerInvoice, OwnerPackingUnit, OwnerTransportRequest, OwnerLoadConfirmation, OwnerManifest:
		return nil
	default:
		return errs.NewValueIsInvalidError("ownerType")
	}
}

// Type classifies what happened.
type Type string

const (
	InvoiceCreated           Type = "invoice_created"
	StageAdvanced            Type = "stage_advanced"
	DocumentsChecked         Type = "documents_checked"
	InspectionRecorded       Type = "inspection_recorded"
	ReadyForTransport        Type = "ready_for_transport"
	PackingUnitAdded         Type = "packing_unit_added"
	FileNameChanged          Type = "file_name_changed"
	TransportRequested       Type = "transport_requested"
	TransportRequestAssigned Type = "transport_request_assigned"
	TransportRequestRejected Type = "transport_request_rejected"
	LoadConfirmationCreated  Type = "load_confirmation_created"
	LoadConfirmationStatus   Type = "load_confirmation_status_changed"
	LoadConfirmationDeleted  Type = "load_confirmation_deleted"
	LoadConfirmationEmailed  Type = "load_confirmation_email_requested"
	ManifestCreated          Type = "manifest_created"
)

// Entry is one audit record. FromStatus and ToStatus are empty when the
// operation has no before/after status.
type Entry struct {
	id          kernel.UUID
	ownerType   OwnerType
	ownerID     kernel.UUID
	typ         Type
	description string
	fromStatus  string
	toStatus    string
	metadata    map[string]any
	occurredAt  time.Time
	guard       guard.ConstructorGuard
}

// Change carries the before/after status of a transition.
type Change struct {
	From string
	To   string
}

func NewEntry(
	ownerType OwnerType,
	ownerID kernel.UUID,
	typ Type,
	description string,
	change Change,
	metadata map[string]any,
	now time.Time,
) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), ownerType, ownerID, typ, description, change, metadata, now)
}

func RestoreEntry(
	id kernel.UUID,
	ownerType OwnerType,
	ownerID kernel.UUID,
	typ Type,
	description string,
	change Change,
	metadata map[string]any,
	occurredAt time.Time,
) (*Entry, error) {
	var typeErr error
	if strings.TrimSpace(string(typ)) == "" {
		typeErr = errs.NewValueIsRequiredError("activityType")
	}
	if err := errors.Join(id.Validate(), ownerType.Validate(), ownerID.Validate(), typeErr); err != nil {
		return nil, err
	}

	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}

	return &Entry{
		id:          id,
		ownerType:   ownerType,
		ownerID:     ownerID,
		typ:         typ,
		description: strings.TrimSpace(description),
		fromStatus:  change.From,
		toStatus:    change.To,
		metadata:    md,
		occurredAt:  occurredAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID       { return e.id }
func (e *Entry) OwnerType() OwnerType  { return e.ownerType }
func (e *Entry) OwnerID() kernel.UUID  { return e.ownerID }
func (e *Entry) Type() Type            { return e.typ }
func (e *Entry) Description() string   { return e.description }
func (e *Entry) FromStatus() string    { return e.fromStatus }
func (e *Entry) ToStatus() string      { return e.toStatus }
func (e *Entry) OccurredAt() time.Time { return e.occurredAt }

func (e *Entry) Metadata() map[string]any {
	out := make(map[string]any, len(e.metadata))
	for k, v := range e.metadata {
		out[k] = v
	}
	return out
}
