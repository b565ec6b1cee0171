package manifest_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/manifest"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManifest(t *testing.T) {
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	invoiceIDs := []kernel.UUID{kernel.NewUUID()}

	m, err := manifest.NewManifest(kernel.NewUUID(), " MNF-000017 ", kernel.NewUUID(),
		kernel.MustFileReference("EXP-5"), invoiceIDs, now)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, "MNF-000017", m.Number())
	assert.Equal(t, invoiceIDs, m.InvoiceIDs())
	assert.Equal(t, now, m.FiledAt())

	_, err = manifest.NewManifest(kernel.NewUUID(), "", kernel.UUID{}, kernel.FileReference{}, nil, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	for _, field := range []string{"number", "fileReference", "invoiceIDs", "UUID"} {
		assert.Contains(t, err.Error(), field)
	}
}
