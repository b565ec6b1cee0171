package queries_test

import (
	"strings"
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolveFileReferenceQuery(t *testing.T) {
	unitID := kernel.NewUUID()

	query, err := queries.NewResolveFileReferenceQuery("  FR-1  ", &unitID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "FR-1", query.FileName().String())
	assert.Equal(t, unitID, *query.ExcludePackingUnitID())

	unitID = kernel.NewUUID()
	assert.NotEqual(t, unitID, *query.ExcludePackingUnitID(), "query keeps its own copy of the id")
}

func TestNewResolveFileReferenceQuery_Invalid(t *testing.T) {
	t.Run("too long", func(t *testing.T) {
		_, err := queries.NewResolveFileReferenceQuery(strings.Repeat("x", 101), nil)
		require.Error(t, err)
	})

	t.Run("zero exclude id", func(t *testing.T) {
		_, err := queries.NewResolveFileReferenceQuery("FR-1", &kernel.UUID{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestResolveFileReferenceQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ResolveFileReferenceQuery{}
	assert.ErrorIs(t, query.Validate(), queries.ErrResolveFileReferenceQueryIsNotConstructed)
}

func TestNewGetInvoiceProgressQuery(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetInvoiceProgressQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.InvoiceID())

	_, err = queries.NewGetInvoiceProgressQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetInvoiceProgressQuery{}.Validate(), queries.ErrGetInvoiceProgressQueryIsNotConstructed)
}

func TestNewGetActivityLogQuery(t *testing.T) {
	ownerID := kernel.NewUUID()

	tests := []struct {
		name      string
		ownerType activity.OwnerType
		limit     int
		wantLimit int
		wantErr   error
	}{
		{name: "default limit", ownerType: activity.OwnerInvoice, limit: 0, wantLimit: queries.DefaultActivityLogLimit},
		{name: "explicit limit", ownerType: activity.OwnerManifest, limit: 10, wantLimit: 10},
		{name: "max limit", ownerType: activity.OwnerLoadConfirmation, limit: queries.MaxActivityLogLimit, wantLimit: queries.MaxActivityLogLimit},
		{name: "negative limit", ownerType: activity.OwnerInvoice, limit: -1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "limit too large", ownerType: activity.OwnerInvoice, limit: queries.MaxActivityLogLimit + 1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "unknown owner type", ownerType: "courier", limit: 5, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewGetActivityLogQuery(tt.ownerType, ownerID, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, query.Validate())
			assert.Equal(t, tt.wantLimit, query.Limit())
			assert.Equal(t, tt.ownerType, query.OwnerType())
			assert.Equal(t, ownerID, query.OwnerID())
		})
	}
}

func TestNewListOpenInvoicesQuery(t *testing.T) {
	query, err := queries.NewListOpenInvoicesQuery(0)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, queries.DefaultOpenInvoicesLimit, query.Limit())

	_, err = queries.NewListOpenInvoicesQuery(queries.MaxOpenInvoicesLimit + 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	assert.ErrorIs(t, queries.ListOpenInvoicesQuery{}.Validate(), queries.ErrListOpenInvoicesQueryIsNotConstructed)
}
