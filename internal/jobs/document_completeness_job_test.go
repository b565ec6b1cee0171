package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOpenInvoicesLister struct{ mock.Mock }

func (m *MockOpenInvoicesLister) Handle(
	ctx context.Context,
	query queries.ListOpenInvoicesQuery,
) ([]queries.ListOpenInvoicesResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ListOpenInvoicesResponse), args.Error(1)
}

type MockDocumentChecker struct{ mock.Mock }

func (m *MockDocumentChecker) Handle(
	ctx context.Context,
	cmd commands.CheckDocumentCompletenessCommand,
) (commands.DocumentCompleteness, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DocumentCompleteness), args.Error(1)
}

func forInvoice(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.CheckDocumentCompletenessCommand) bool {
		return cmd.InvoiceID().IsEqual(id)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDocumentCompletenessJob_RunOnce(t *testing.T) {
	first, second, third := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	lister := &MockOpenInvoicesLister{}
	lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOpenInvoicesQuery) bool {
		return q.Limit() == queries.DefaultOpenInvoicesLimit
	})).Return([]queries.ListOpenInvoicesResponse{
		{ID: first, Number: "INV-1"},
		{ID: second, Number: "INV-2"},
		{ID: third, Number: "INV-3"},
	}, nil)

	checker := &MockDocumentChecker{}
	checker.On("Handle", mock.Anything, forInvoice(first)).
		Return(commands.DocumentCompleteness{Complete: true, Changed: true}, nil)
	checker.On("Handle", mock.Anything, forInvoice(second)).
		Return(commands.DocumentCompleteness{}, errs.NewObjectNotFoundError("invoice", second))
	checker.On("Handle", mock.Anything, forInvoice(third)).
		Return(commands.DocumentCompleteness{Blocked: true}, nil)

	job := jobs.NewDocumentCompletenessJob(lister, checker, "", discardLogger())

	changed := job.RunOnce(context.Background())

	assert.Equal(t, 1, changed)
	lister.AssertExpectations(t)
	checker.AssertNumberOfCalls(t, "Handle", 3)
}

func TestDocumentCompletenessJob_RunOnce_ListingFails(t *testing.T) {
	lister := &MockOpenInvoicesLister{}
	lister.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewStorageUnavailableError(errors.New("connection refused")))
	checker := &MockDocumentChecker{}

	job := jobs.NewDocumentCompletenessJob(lister, checker, "", discardLogger())

	assert.Equal(t, 0, job.RunOnce(context.Background()))
	checker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDocumentCompletenessJob_Start(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		job := jobs.NewDocumentCompletenessJob(&MockOpenInvoicesLister{}, &MockDocumentChecker{}, "0 0 3 * * *", discardLogger())

		require.NoError(t, job.Start())
		job.Stop()
	})

	t.Run("invalid schedule", func(t *testing.T) {
		job := jobs.NewDocumentCompletenessJob(&MockOpenInvoicesLister{}, &MockDocumentChecker{}, "every now and then", discardLogger())

		require.Error(t, job.Start())
	})
}
