package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolution(status services.ReferenceStatus) services.Resolution {
	return services.Resolution{
		Reference: kernel.MustFileReference("EXP-3"),
		Status:    status,
		Detail:    "file reference EXP-3 is " + string(status),
	}
}

func TestBookingGate_CanBook(t *testing.T) {
	gate := services.NewBookingGate()

	tests := []struct {
		status  services.ReferenceStatus
		wantErr error
	}{
		{services.ReferencePlanning, nil},
		{services.ReferenceConfirmed, errs.ErrAlreadyBooked},
		{services.ReferenceDuplicate, errs.ErrAlreadyBooked},
		{services.ReferenceLocked, errs.ErrReferenceLocked},
		{services.ReferenceError, errs.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			result := gate.CanBook(resolution(tt.status))
			if tt.wantErr == nil {
				assert.True(t, result.Allowed)
				require.NoError(t, result.Err())
				return
			}
			assert.False(t, result.Allowed)
			require.ErrorIs(t, result.Err(), tt.wantErr)
			assert.Contains(t, result.Reason, string(tt.status))
		})
	}

	t.Run("empty reference", func(t *testing.T) {
		result := gate.CanBook(services.Resolution{Status: services.ReferenceAvailable})
		require.ErrorIs(t, result.Err(), errs.ErrValueIsRequired)
	})
}

func TestBookingGate_CanRequestTransport(t *testing.T) {
	gate := services.NewBookingGate()
	inv, err := invoice.NewInvoice(kernel.NewUUID(), "INV-5", invoice.Requirements{}, time.Now())
	require.NoError(t, err)

	result := gate.CanRequestTransport(inv, []services.Resolution{
		resolution(services.ReferencePlanning),
		{Status: services.ReferenceAvailable},
	})
	assert.True(t, result.Allowed)

	result = gate.CanRequestTransport(inv, []services.Resolution{resolution(services.ReferenceLocked)})
	require.ErrorIs(t, result.Err(), errs.ErrReferenceLocked)

	require.NoError(t, inv.RequestTransport())
	result = gate.CanRequestTransport(inv, nil)
	require.ErrorIs(t, result.Err(), errs.ErrAlreadyBooked)
	assert.Contains(t, result.Reason, "INV-5")
}

func TestBookingGate_CanChangeFileName(t *testing.T) {
	gate := services.NewBookingGate()

	tests := []struct {
		name    string
		current services.ReferenceStatus
		target  services.ReferenceStatus
		wantErr error
	}{
		{"planning to planning", services.ReferencePlanning, services.ReferencePlanning, nil},
		{"available to confirmed joins the chain", services.ReferenceAvailable, services.ReferenceConfirmed, nil},
		{"away from locked", services.ReferenceLocked, services.ReferenceAvailable, errs.ErrReferenceLocked},
		{"onto locked", services.ReferencePlanning, services.ReferenceLocked, errs.ErrReferenceLocked},
		{"onto duplicate", services.ReferenceConfirmed, services.ReferenceDuplicate, errs.ErrAlreadyBooked},
		{"unresolved current", services.ReferenceError, services.ReferencePlanning, errs.ErrStorageUnavailable},
		{"unresolved target", services.ReferencePlanning, services.ReferenceError, errs.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gate.CanChangeFileName(resolution(tt.current), resolution(tt.target))
			if tt.wantErr == nil {
				require.NoError(t, result.Err())
				return
			}
			require.ErrorIs(t, result.Err(), tt.wantErr)
		})
	}
}
