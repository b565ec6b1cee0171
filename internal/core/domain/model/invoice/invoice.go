package invoice

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const maxNumberLength = 64

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

// Invoice is the shipment record: the unit tracked from receipt through
// customs-ready dispatch. It changes only through the stage engine methods
// below and through inspection and transport updates. Invoices are never deleted.
//
// Version is the persisted version the aggregate was loaded with; the
// repository increments it on every successful update.
type Invoice struct {
	id              kernel.UUID
	number          string
	stage           Stage
	requirements    Requirements
	qc              Inspection
	bv              Inspection
	completedAt     map[Stage]time.Time
	readyDispatchAt *time.Time
	blocked         bool
	notes           string
	transport       TransportStatus
	version         int
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewInvoice registers an invoice at intake. It starts at Receiving with both
// inspections pending.
func NewInvoice(id kernel.UUID, number string, requirements Requirements, now time.Time) (*Invoice, error) {
	inv := &Invoice{
		stage:        Receiving,
		requirements: requirements,
		qc:           Inspection{Status: InspectionPending},
		bv:           Inspection{Status: InspectionPending},
		completedAt:  make(map[Stage]time.Time),
		transport:    TransportNone,
		version:      1,
		createdAt:    now.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setNumber(number),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// Snapshot is the full persisted state of an invoice.
type Snapshot struct {
	ID                         kernel.UUID
	Number                     string
	Stage                      Stage
	Requirements               Requirements
	QC                         Inspection
	BV                         Inspection
	CompletedAt                map[Stage]time.Time
	ReadyDispatchAt            *time.Time
	BlockedWaitingForDocuments bool
	WorkflowNotes              string
	TransportStatus            TransportStatus
	Version                    int
	CreatedAt                  time.Time
}

// RestoreInvoice rebuilds an invoice from storage and re-checks its invariants.
func RestoreInvoice(s Snapshot) (*Invoice, error) {
	inv := &Invoice{
		requirements:    s.Requirements,
		completedAt:     make(map[Stage]time.Time, len(s.CompletedAt)),
		readyDispatchAt: s.ReadyDispatchAt,
		blocked:         s.BlockedWaitingForDocuments,
		notes:           s.WorkflowNotes,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		guard:           guard.NewConstructorGuard(),
	}
	for stage, at := range s.CompletedAt {
		inv.completedAt[stage] = at
	}

	if err := errors.Join(
		inv.setID(s.ID),
		inv.setNumber(s.Number),
		inv.setStage(s.Stage),
		inv.setInspection(QC, s.QC),
		inv.setInspection(BV, s.BV),
		inv.setTransport(s.TransportStatus),
	); err != nil {
		return nil, err
	}

	if s.Version < 1 {
		return nil, errs.NewValueIsOutOfRangeError("version", s.Version, 1, math.MaxInt)
	}

	for _, earlier := range Stages() {
		if !inv.stage.IsAfter(earlier) {
			break
		}
		if _, ok := inv.completedAt[earlier]; !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"completedAt",
				fmt.Errorf("stage %s is behind %s but has no completion timestamp", earlier, inv.stage),
			)
		}
	}

	return inv, nil
}

// Snapshot exports the state for persistence.
func (i *Invoice) Snapshot() Snapshot {
	completed := make(map[Stage]time.Time, len(i.completedAt))
	for stage, at := range i.completedAt {
		completed[stage] = at
	}
	return Snapshot{
		ID:                         i.id,
		Number:                     i.number,
		Stage:                      i.stage,
		Requirements:               i.requirements,
		QC:                         i.qc,
		BV:                         i.bv,
		CompletedAt:                completed,
		ReadyDispatchAt:            i.readyDispatchAt,
		BlockedWaitingForDocuments: i.blocked,
		WorkflowNotes:              i.notes,
		TransportStatus:            i.transport,
		Version:                    i.version,
		CreatedAt:                  i.createdAt,
	}
}

func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

func (i *Invoice) ID() kernel.UUID                  { return i.id }
func (i *Invoice) Number() string                   { return i.number }
func (i *Invoice) Stage() Stage                     { return i.stage }
func (i *Invoice) Requirements() Requirements       { return i.requirements }
func (i *Invoice) ReadyDispatchAt() *time.Time      { return i.readyDispatchAt }
func (i *Invoice) BlockedWaitingForDocuments() bool { return i.blocked }
func (i *Invoice) WorkflowNotes() string            { return i.notes }
func (i *Invoice) TransportStatus() TransportStatus { return i.transport }
func (i *Invoice) Version() int                     { return i.version }
func (i *Invoice) CreatedAt() time.Time             { return i.createdAt }

// Inspection returns the recorded result for kind.
func (i *Invoice) Inspection(kind InspectionKind) Inspection {
	if kind == BV {
		return i.bv
	}
	return i.qc
}

// CompletedAt returns when stage was completed, if it was.
func (i *Invoice) CompletedAt(stage Stage) (time.Time, bool) {
	at, ok := i.completedAt[stage]
	return at, ok
}

// CheckVersion fails with ConcurrentModification when the caller worked from
// a different version than the one loaded.
func (i *Invoice) CheckVersion(expected int) error {
	if expected != i.version {
		return errs.NewWorkflowError(
			errs.ErrConcurrentModification,
			fmt.Sprintf("invoice %s was modified: expected version %d, found %d", i.number, expected, i.version),
		)
	}
	return nil
}

// CanAdvance is true for every stage of the workflow. Inspection stages do
// not block advancement; certificates are enforced by MarkReadyForTransport.
func (i *Invoice) CanAdvance() bool {
	return i.stage.Validate() == nil
}

// Advance completes the current stage and moves to the next applicable one,
// stamping every skipped inspection stage on the way. At ReadyDispatch the
// stage is kept and only its timestamp is ensured.
func (i *Invoice) Advance(now time.Time, notes string) error {
	if err := i.stage.Validate(); err != nil {
		return err
	}

	now = now.UTC()
	i.stamp(i.stage, now)

	target := i.stage
	for s, ok := i.stage.next(); ok; s, ok = s.next() {
		if !i.requirements.Applies(s) {
			i.stamp(s, now)
			continue
		}
		target = s
		break
	}

	i.stage = target
	i.appendNote(now, notes)
	return nil
}

// Progress is the share of applicable stages already completed, as a
// rounded percentage.
func (i *Invoice) Progress() int {
	applicable := i.requirements.ApplicableStages()
	if len(applicable) == 0 {
		return 0
	}

	completed := 0
	for _, s := range applicable {
		if _, ok := i.completedAt[s]; ok {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(applicable)) * 100))
}

// EvaluateDocumentCompleteness decides whether the paperwork is complete and
// updates the blocked flag accordingly. changed reports a flip of the flag.
func (i *Invoice) EvaluateDocumentCompleteness(hasInvoiceDocument bool) (complete bool, changed bool) {
	complete = hasInvoiceDocument &&
		(!i.requirements.QC || i.qc.HasCertificate) &&
		(!i.requirements.BV || i.bv.HasCertificate)

	blocked := !complete
	changed = blocked != i.blocked
	i.blocked = blocked
	return complete, changed
}

// MarkReadyForTransport releases the invoice for dispatch. Every earlier stage
// without a completion timestamp is stamped with now.
func (i *Invoice) MarkReadyForTransport(confirmed bool, notes string, now time.Time) error {
	if !confirmed {
		return errs.NewWorkflowError(
			errs.ErrConfirmationRequired,
			"ready for transport must be explicitly confirmed",
		)
	}

	if err := i.stage.Validate(); err != nil {
		return err
	}

	if missing := i.missingInspections(); len(missing) > 0 {
		return errs.NewWorkflowError(errs.ErrInspectionsIncomplete, strings.Join(missing, "; "))
	}

	now = now.UTC()
	for _, s := range Stages() {
		i.stamp(s, now)
	}
	i.stage = ReadyDispatch
	i.readyDispatchAt = &now
	i.appendNote(now, notes)
	return nil
}

// RecordInspection corrects the status and certificate of one inspection.
// It never moves the stage.
func (i *Invoice) RecordInspection(kind InspectionKind, status InspectionStatus, hasCertificate bool) error {
	if kind != QC && kind != BV {
		return errs.NewValueIsInvalidErrorWithCause("inspection kind", fmt.Errorf("%d is not qc or bv", int(kind)))
	}
	return i.setInspection(kind, Inspection{Status: status, HasCertificate: hasCertificate})
}

// RequestTransport flags the invoice as waiting for a vehicle.
func (i *Invoice) RequestTransport() error {
	next, err := i.transport.Request()
	if err != nil {
		return err
	}
	i.transport = next
	return nil
}

// BookTransport flags the invoice as covered by a load confirmation.
func (i *Invoice) BookTransport() error {
	next, err := i.transport.Book()
	if err != nil {
		return err
	}
	i.transport = next
	return nil
}

// ReleaseTransport reverts a booking to its pre-booking state.
func (i *Invoice) ReleaseTransport(viaRequest bool) error {
	next, err := i.transport.Release(viaRequest)
	if err != nil {
		return err
	}
	i.transport = next
	return nil
}

// WithdrawTransportRequest clears an open request after it was rejected.
func (i *Invoice) WithdrawTransportRequest() error {
	next, err := i.transport.Withdraw()
	if err != nil {
		return err
	}
	i.transport = next
	return nil
}

func (i *Invoice) missingInspections() []string {
	var missing []string
	for _, kind := range []InspectionKind{QC, BV} {
		if !i.requirements.Requires(kind) {
			continue
		}
		name := strings.ToUpper(kind.String())
		insp := i.Inspection(kind)
		if !insp.Passed() {
			missing = append(missing, fmt.Sprintf("%s inspection is required but is %s", name, insp.Status))
		}
		if !insp.HasCertificate {
			missing = append(missing, fmt.Sprintf("%s certificate is missing", name))
		}
	}
	return missing
}

// stamp writes a completion timestamp once.
func (i *Invoice) stamp(stage Stage, at time.Time) {
	if _, ok := i.completedAt[stage]; ok {
		return
	}
	i.completedAt[stage] = at
}

func (i *Invoice) appendNote(at time.Time, note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	line := fmt.Sprintf("[%s] %s", at.Format(time.RFC3339), note)
	if i.notes == "" {
		i.notes = line
		return
	}
	i.notes += "\n" + line
}

func (i *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	if len(number) > maxNumberLength {
		return errs.NewValueIsOutOfRangeError("number", len(number), 1, maxNumberLength)
	}
	i.number = number
	return nil
}

func (i *Invoice) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	i.stage = stage
	return nil
}

func (i *Invoice) setInspection(kind InspectionKind, insp Inspection) error {
	if err := insp.Status.Validate(); err != nil {
		return err
	}
	if kind == BV {
		i.bv = insp
	} else {
		i.qc = insp
	}
	return nil
}

func (i *Invoice) setTransport(status TransportStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	i.transport = status
	return nil
}
