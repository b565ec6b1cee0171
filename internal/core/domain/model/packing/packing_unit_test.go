package packing_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackingUnit(t *testing.T) {
	t.Run("without file name", func(t *testing.T) {
		pu, err := packing.NewPackingUnit(kernel.NewUUID(), kernel.NewUUID(), kernel.FileReference{})

		require.NoError(t, err)
		require.NoError(t, pu.Validate())
		assert.True(t, pu.FileName().IsEmpty())
	})

	t.Run("requires ids", func(t *testing.T) {
		_, err := packing.NewPackingUnit(kernel.NewUUID(), kernel.UUID{}, kernel.FileReference{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value", func(t *testing.T) {
		var pu packing.PackingUnit
		require.ErrorIs(t, pu.Validate(), packing.ErrPackingUnitIsNotConstructed)
	})
}

func TestPackingUnit_ChangeFileName(t *testing.T) {
	pu, err := packing.NewPackingUnit(kernel.NewUUID(), kernel.NewUUID(), kernel.MustFileReference("EXP-1"))
	require.NoError(t, err)

	assert.False(t, pu.ChangeFileName(kernel.MustFileReference(" EXP-1 ")))
	assert.True(t, pu.ChangeFileName(kernel.MustFileReference("EXP-2")))
	assert.Equal(t, "EXP-2", pu.FileName().String())
	assert.True(t, pu.ChangeFileName(kernel.FileReference{}))
	assert.True(t, pu.FileName().IsEmpty())
}
