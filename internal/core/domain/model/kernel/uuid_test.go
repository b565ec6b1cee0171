package kernel_test

import (
	"encoding/json"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"canonical", canonical, nil},
		{"braced", "{" + canonical + "}", nil},
		{"urn", "urn:uuid:" + canonical, nil},
		{"no hyphens", "550e8400e29b41d4a716446655440000", nil},
		{"garbage", "not-a-uuid", errs.ErrValueIsInvalid},
		{"empty", "", errs.ErrValueIsInvalid},
		{"nil uuid", "00000000-0000-0000-0000-000000000000", errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	raw := uuid.MustParse(canonical)

	id, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUIDsFromStrings(t *testing.T) {
	ids, err := kernel.UUIDsFromStrings([]string{canonical, kernel.NewUUID().String()})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = kernel.UUIDsFromStrings([]string{canonical, "bad"})
	require.Error(t, err)
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}

func TestUUID_MarshalJSON(t *testing.T) {
	id, err := kernel.UUIDFromString(canonical)
	require.NoError(t, err)

	payload, err := json.Marshal(struct {
		ID kernel.UUID `json:"id"`
	}{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+canonical+`"}`, string(payload))
}

func TestContainsUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	assert.True(t, kernel.ContainsUUID([]kernel.UUID{a, b}, b))
	assert.False(t, kernel.ContainsUUID([]kernel.UUID{a}, b))
	assert.False(t, kernel.ContainsUUID(nil, a))
}
