package kernel_test

import (
	"strings"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileReference(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		empty   bool
		wantErr error
	}{
		{name: "plain", raw: "EXP-2024-118", want: "EXP-2024-118"},
		{name: "trimmed", raw: "  EXP-2024-118\t", want: "EXP-2024-118"},
		{name: "inner spaces kept", raw: "EXP 118 A", want: "EXP 118 A"},
		{name: "blank is absent", raw: "   ", empty: true},
		{name: "empty is absent", raw: "", empty: true},
		{name: "exactly max length", raw: strings.Repeat("x", kernel.MaxFileReferenceLength), want: strings.Repeat("x", 100)},
		{name: "too long", raw: strings.Repeat("x", kernel.MaxFileReferenceLength+1), wantErr: errs.ErrValueIsOutOfRange},
		{name: "multibyte counted as characters", raw: strings.Repeat("é", kernel.MaxFileReferenceLength), want: strings.Repeat("é", 100)},
		{name: "control character", raw: "EXP\x00118", wantErr: errs.ErrValueIsInvalid},
		{name: "inner newline", raw: "EXP\n118", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := kernel.NewFileReference(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.empty, ref.IsEmpty())
			assert.Equal(t, tt.want, ref.String())
		})
	}
}

func TestFileReference_IsEqual(t *testing.T) {
	a := kernel.MustFileReference("EXP-1")

	assert.True(t, a.IsEqual(kernel.MustFileReference(" EXP-1 ")))
	assert.False(t, a.IsEqual(kernel.MustFileReference("exp-1")))
	assert.True(t, kernel.FileReference{}.IsEqual(kernel.MustFileReference("")))
}

func TestMustFileReference_Panics(t *testing.T) {
	assert.Panics(t, func() { kernel.MustFileReference("bad\x01") })
}
