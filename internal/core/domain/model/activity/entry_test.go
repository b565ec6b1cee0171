package activity_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	ownerID := kernel.NewUUID()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("UTC+3", 3*3600))
	md := map[string]any{"notes": "cleared"}

	e, err := activity.NewEntry(activity.OwnerInvoice, ownerID, activity.StageAdvanced,
		" advanced ", activity.Change{From: "receiving", To: "doc_verify"}, md, at)
	require.NoError(t, err)
	require.NoError(t, e.Validate())

	assert.Equal(t, "advanced", e.Description())
	assert.Equal(t, "receiving", e.FromStatus())
	assert.Equal(t, "doc_verify", e.ToStatus())
	assert.Equal(t, time.UTC, e.OccurredAt().Location())

	md["notes"] = "mutated"
	assert.Equal(t, "cleared", e.Metadata()["notes"])
}

func TestNewEntry_Invalid(t *testing.T) {
	_, err := activity.NewEntry("warehouse", kernel.UUID{}, "", "", activity.Change{}, nil, time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
