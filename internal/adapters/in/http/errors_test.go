package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	api "dispatch/internal/adapters/in/http"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"value required", errs.NewValueIsRequiredError("number"), http.StatusUnprocessableEntity},
		{"value invalid", errs.NewValueIsInvalidError("uuid"), http.StatusUnprocessableEntity},
		{"value out of range", errs.NewValueIsOutOfRangeError("limit", 0, 1, 10), http.StatusUnprocessableEntity},
		{"invalid stage", errs.NewWorkflowError(errs.ErrInvalidStage, "already at ready_dispatch"), http.StatusUnprocessableEntity},
		{"confirmation required", errs.NewWorkflowError(errs.ErrConfirmationRequired, ""), http.StatusUnprocessableEntity},
		{"inspections incomplete", errs.NewWorkflowError(errs.ErrInspectionsIncomplete, ""), http.StatusUnprocessableEntity},
		{"already booked", errs.NewWorkflowError(errs.ErrAlreadyBooked, "FR-1"), http.StatusConflict},
		{"reference locked", errs.NewWorkflowError(errs.ErrReferenceLocked, "FR-1"), http.StatusConflict},
		{"manifest dependency", errs.NewWorkflowError(errs.ErrManifestDependency, ""), http.StatusConflict},
		{"concurrent modification", errs.NewWorkflowError(errs.ErrConcurrentModification, ""), http.StatusConflict},
		{"not found", errs.NewObjectNotFoundError("invoice", "x"), http.StatusNotFound},
		{"storage unavailable", errs.NewStorageUnavailableError(errors.New("conn reset")), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("handle: %w", errs.NewWorkflowError(errs.ErrAlreadyBooked, "")), http.StatusConflict},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsRequiredError("b")), http.StatusUnprocessableEntity},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.StatusFor(tt.err))
		})
	}
}
