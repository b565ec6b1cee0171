package invoice_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newInvoice(t *testing.T, reqs invoice.Requirements) *invoice.Invoice {
	t.Helper()
	inv, err := invoice.NewInvoice(kernel.NewUUID(), "INV-1001", reqs, t0)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("starts at receiving", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{QC: true})

		require.NoError(t, inv.Validate())
		assert.Equal(t, invoice.Receiving, inv.Stage())
		assert.Equal(t, invoice.InspectionPending, inv.Inspection(invoice.QC).Status)
		assert.Equal(t, invoice.TransportNone, inv.TransportStatus())
		assert.Equal(t, 1, inv.Version())
		assert.Nil(t, inv.ReadyDispatchAt())
		assert.Equal(t, 0, inv.Progress())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := invoice.NewInvoice(kernel.UUID{}, "  ", invoice.Requirements{}, t0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "number")
		assert.Contains(t, err.Error(), "UUID")
	})

	t.Run("rejects long number", func(t *testing.T) {
		_, err := invoice.NewInvoice(kernel.NewUUID(), strings.Repeat("9", 65), invoice.Requirements{}, t0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var inv invoice.Invoice
		require.ErrorIs(t, inv.Validate(), invoice.ErrInvoiceIsNotConstructed)
	})
}

func TestInvoice_Advance(t *testing.T) {
	tests := []struct {
		name  string
		reqs  invoice.Requirements
		steps []invoice.Stage
	}{
		{
			name:  "no inspections skips both",
			reqs:  invoice.Requirements{},
			steps: []invoice.Stage{invoice.DocVerify, invoice.ReadyDispatch, invoice.ReadyDispatch},
		},
		{
			name:  "qc only skips bv",
			reqs:  invoice.Requirements{QC: true},
			steps: []invoice.Stage{invoice.DocVerify, invoice.QCInspection, invoice.ReadyDispatch},
		},
		{
			name:  "bv only skips qc",
			reqs:  invoice.Requirements{BV: true},
			steps: []invoice.Stage{invoice.DocVerify, invoice.BVInspection, invoice.ReadyDispatch},
		},
		{
			name:  "both required visits every stage",
			reqs:  invoice.Requirements{QC: true, BV: true},
			steps: []invoice.Stage{invoice.DocVerify, invoice.QCInspection, invoice.BVInspection, invoice.ReadyDispatch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInvoice(t, tt.reqs)
			for n, want := range tt.steps {
				require.NoError(t, inv.Advance(t0.Add(time.Duration(n+1)*time.Hour), ""))
				assert.Equal(t, want, inv.Stage(), "after advance %d", n+1)
			}
		})
	}
}

func TestInvoice_Advance_StampsSkippedStages(t *testing.T) {
	inv := newInvoice(t, invoice.Requirements{BV: true})

	require.NoError(t, inv.Advance(t0.Add(time.Hour), ""))
	_, ok := inv.CompletedAt(invoice.QCInspection)
	assert.False(t, ok, "qc is not stamped before leaving doc_verify")

	leave := t0.Add(2 * time.Hour)
	require.NoError(t, inv.Advance(leave, ""))
	assert.Equal(t, invoice.BVInspection, inv.Stage())

	qcAt, ok := inv.CompletedAt(invoice.QCInspection)
	require.True(t, ok)
	assert.Equal(t, leave, qcAt)

	docAt, _ := inv.CompletedAt(invoice.DocVerify)
	assert.Equal(t, leave, docAt)
}

func TestInvoice_Advance_TimestampsAreWrittenOnce(t *testing.T) {
	inv := newInvoice(t, invoice.Requirements{})
	require.NoError(t, inv.Advance(t0.Add(time.Hour), ""))
	require.NoError(t, inv.Advance(t0.Add(2*time.Hour), ""))
	require.NoError(t, inv.Advance(t0.Add(3*time.Hour), ""))
	require.NoError(t, inv.Advance(t0.Add(4*time.Hour), ""))

	receivedAt, _ := inv.CompletedAt(invoice.Receiving)
	readyAt, _ := inv.CompletedAt(invoice.ReadyDispatch)
	assert.Equal(t, t0.Add(time.Hour), receivedAt)
	assert.Equal(t, t0.Add(3*time.Hour), readyAt)
	assert.Equal(t, invoice.ReadyDispatch, inv.Stage())
}

func TestInvoice_Advance_IsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := range 50 {
		reqs := invoice.Requirements{QC: rng.Intn(2) == 0, BV: rng.Intn(2) == 0}
		inv := newInvoice(t, reqs)
		prev := inv.Stage()

		for step := range 8 {
			require.True(t, inv.CanAdvance())
			require.NoError(t, inv.Advance(t0.Add(time.Duration(step)*time.Minute), ""))

			require.NoError(t, inv.Stage().Validate())
			assert.False(t, prev.IsAfter(inv.Stage()), "round %d step %d regressed", round, step)
			prev = inv.Stage()

			if !reqs.QC && inv.Stage().IsAfter(invoice.DocVerify) {
				_, ok := inv.CompletedAt(invoice.QCInspection)
				assert.True(t, ok, "qc must be stamped once past doc_verify when not required")
			}
			for _, earlier := range invoice.Stages() {
				if inv.Stage().IsAfter(earlier) {
					_, ok := inv.CompletedAt(earlier)
					assert.True(t, ok, "%s passed without timestamp", earlier)
				}
			}
		}
	}
}

func TestInvoice_Advance_AppendsNotes(t *testing.T) {
	inv := newInvoice(t, invoice.Requirements{})

	require.NoError(t, inv.Advance(t0, "docs received"))
	require.NoError(t, inv.Advance(t0.Add(time.Hour), "   "))
	require.NoError(t, inv.Advance(t0.Add(2*time.Hour), "cleared"))

	assert.Equal(t,
		"[2024-03-01T09:00:00Z] docs received\n[2024-03-01T11:00:00Z] cleared",
		inv.WorkflowNotes())
}

func TestInvoice_Progress(t *testing.T) {
	t.Run("two of three applicable stages rounds to 67", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{})
		require.NoError(t, inv.Advance(t0, ""))

		snap := inv.Snapshot()
		snap.CompletedAt[invoice.DocVerify] = t0
		restored, err := invoice.RestoreInvoice(snap)
		require.NoError(t, err)

		assert.Equal(t, 67, restored.Progress())
	})

	t.Run("skipped stages do not count", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{})
		require.NoError(t, inv.Advance(t0, ""))
		require.NoError(t, inv.Advance(t0, ""))

		assert.Equal(t, invoice.ReadyDispatch, inv.Stage())
		assert.Equal(t, 67, inv.Progress())

		require.NoError(t, inv.Advance(t0, ""))
		assert.Equal(t, 100, inv.Progress())
	})

	t.Run("all five applicable", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{QC: true, BV: true})
		require.NoError(t, inv.Advance(t0, ""))
		assert.Equal(t, 20, inv.Progress())
		require.NoError(t, inv.Advance(t0, ""))
		assert.Equal(t, 40, inv.Progress())
	})
}

func TestInvoice_EvaluateDocumentCompleteness(t *testing.T) {
	tests := []struct {
		name        string
		reqs        invoice.Requirements
		qcCert      bool
		bvCert      bool
		hasInvoice  bool
		wantOK      bool
		wantChanged bool
	}{
		{"invoice doc only, nothing required", invoice.Requirements{}, false, false, true, true, false},
		{"missing invoice doc", invoice.Requirements{}, false, false, false, false, true},
		{"qc required without cert", invoice.Requirements{QC: true}, false, false, true, false, true},
		{"qc required with cert", invoice.Requirements{QC: true}, true, false, true, true, false},
		{"bv required without cert", invoice.Requirements{QC: true, BV: true}, true, false, true, false, true},
		{"all certs", invoice.Requirements{QC: true, BV: true}, true, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInvoice(t, tt.reqs)
			require.NoError(t, inv.RecordInspection(invoice.QC, invoice.InspectionPassed, tt.qcCert))
			require.NoError(t, inv.RecordInspection(invoice.BV, invoice.InspectionPassed, tt.bvCert))

			ok, changed := inv.EvaluateDocumentCompleteness(tt.hasInvoice)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, !tt.wantOK, inv.BlockedWaitingForDocuments())

			_, again := inv.EvaluateDocumentCompleteness(tt.hasInvoice)
			assert.False(t, again)
		})
	}
}

func TestInvoice_MarkReadyForTransport(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{})

		err := inv.MarkReadyForTransport(false, "", t0)

		require.ErrorIs(t, err, errs.ErrConfirmationRequired)
		assert.Nil(t, inv.ReadyDispatchAt())
	})

	t.Run("pending qc blocks", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{QC: true})

		err := inv.MarkReadyForTransport(true, "", t0)

		require.ErrorIs(t, err, errs.ErrInspectionsIncomplete)
		assert.Contains(t, err.Error(), "QC inspection is required but is pending")
		assert.Nil(t, inv.ReadyDispatchAt())
		assert.Equal(t, invoice.Receiving, inv.Stage())
	})

	t.Run("passed qc without certificate blocks", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{QC: true})
		require.NoError(t, inv.RecordInspection(invoice.QC, invoice.InspectionPassed, false))

		err := inv.MarkReadyForTransport(true, "", t0)

		require.ErrorIs(t, err, errs.ErrInspectionsIncomplete)
		assert.Contains(t, err.Error(), "QC certificate is missing")
		assert.NotContains(t, err.Error(), "QC inspection is required")
		assert.Nil(t, inv.ReadyDispatchAt())
		assert.Equal(t, invoice.Receiving, inv.Stage())
	})

	t.Run("failed bv blocks even with qc passed", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{QC: true, BV: true})
		require.NoError(t, inv.RecordInspection(invoice.QC, invoice.InspectionPassed, true))
		require.NoError(t, inv.RecordInspection(invoice.BV, invoice.InspectionFailed, false))

		err := inv.MarkReadyForTransport(true, "", t0)

		require.ErrorIs(t, err, errs.ErrInspectionsIncomplete)
		assert.NotContains(t, err.Error(), "QC")
		assert.Contains(t, err.Error(), "BV inspection is required but is failed")
	})

	t.Run("not required inspections are ignored", func(t *testing.T) {
		inv := newInvoice(t, invoice.Requirements{BV: true})
		require.NoError(t, inv.RecordInspection(invoice.BV, invoice.InspectionPassed, true))

		require.NoError(t, inv.MarkReadyForTransport(true, "truck booked", t0.Add(time.Hour)))

		assert.Equal(t, invoice.ReadyDispatch, inv.Stage())
		require.NotNil(t, inv.ReadyDispatchAt())
		assert.Equal(t, t0.Add(time.Hour), *inv.ReadyDispatchAt())
		for _, s := range invoice.Stages() {
			_, ok := inv.CompletedAt(s)
			assert.True(t, ok, "stage %s stamped", s)
		}
		assert.Equal(t, 100, inv.Progress())
		assert.Contains(t, inv.WorkflowNotes(), "truck booked")
	})
}

func TestInvoice_RecordInspection(t *testing.T) {
	inv := newInvoice(t, invoice.Requirements{QC: true})
	require.NoError(t, inv.Advance(t0, ""))

	require.NoError(t, inv.RecordInspection(invoice.QC, invoice.InspectionInProgress, false))
	assert.Equal(t, invoice.InspectionInProgress, inv.Inspection(invoice.QC).Status)
	assert.Equal(t, invoice.DocVerify, inv.Stage())

	require.ErrorIs(t, inv.RecordInspection(invoice.QC, invoice.InspectionStatus(99), false), errs.ErrValueIsInvalid)
	require.ErrorIs(t, inv.RecordInspection(invoice.UnknownInspection, invoice.InspectionPassed, true), errs.ErrValueIsInvalid)
}

func TestInvoice_CheckVersion(t *testing.T) {
	inv := newInvoice(t, invoice.Requirements{})

	require.NoError(t, inv.CheckVersion(1))
	require.ErrorIs(t, inv.CheckVersion(2), errs.ErrConcurrentModification)
}

func TestRestoreInvoice(t *testing.T) {
	base := func() invoice.Snapshot {
		return invoice.Snapshot{
			ID:              kernel.NewUUID(),
			Number:          "INV-7",
			Stage:           invoice.QCInspection,
			Requirements:    invoice.Requirements{QC: true},
			QC:              invoice.Inspection{Status: invoice.InspectionScheduled},
			BV:              invoice.Inspection{Status: invoice.InspectionPending},
			CompletedAt:     map[invoice.Stage]time.Time{invoice.Receiving: t0, invoice.DocVerify: t0},
			TransportStatus: invoice.TransportRequested,
			Version:         4,
			CreatedAt:       t0,
		}
	}

	t.Run("round trip", func(t *testing.T) {
		snap := base()
		inv, err := invoice.RestoreInvoice(snap)
		require.NoError(t, err)
		assert.Equal(t, snap, inv.Snapshot())
	})

	t.Run("unknown stage", func(t *testing.T) {
		snap := base()
		snap.Stage = invoice.UnknownStage
		_, err := invoice.RestoreInvoice(snap)
		require.ErrorIs(t, err, errs.ErrInvalidStage)
	})

	t.Run("missing earlier timestamp", func(t *testing.T) {
		snap := base()
		delete(snap.CompletedAt, invoice.DocVerify)
		_, err := invoice.RestoreInvoice(snap)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero version", func(t *testing.T) {
		snap := base()
		snap.Version = 0
		_, err := invoice.RestoreInvoice(snap)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
