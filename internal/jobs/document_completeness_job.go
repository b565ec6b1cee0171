package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultDocumentSweepSchedule runs the sweep every five minutes.
const DefaultDocumentSweepSchedule = "0 */5 * * * *"

type openInvoicesLister interface {
	Handle(ctx context.Context, query queries.ListOpenInvoicesQuery) ([]queries.ListOpenInvoicesResponse, error)
}

type documentChecker interface {
	Handle(ctx context.Context, cmd commands.CheckDocumentCompletenessCommand) (commands.DocumentCompleteness, error)
}

// DocumentCompletenessJob re-evaluates the paperwork of every invoice that
// is not yet ready for dispatch, so the "blocked waiting for documents" flag
// follows uploads without an operator action.
type DocumentCompletenessJob struct {
	lister   openInvoicesLister
	checker  documentChecker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewDocumentCompletenessJob(
	lister openInvoicesLister,
	checker documentChecker,
	schedule string,
	logger *slog.Logger,
) *DocumentCompletenessJob {
	if schedule == "" {
		schedule = DefaultDocumentSweepSchedule
	}

	return &DocumentCompletenessJob{
		lister:   lister,
		checker:  checker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "document_completeness_job"),
	}
}

// Start schedules the sweep. An invalid schedule is returned as an error.
func (j *DocumentCompletenessJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Document completeness job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *DocumentCompletenessJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Document completeness job stopped")
}

// RunOnce checks one page of open invoices and returns how many changed
// their blocked flag.
func (j *DocumentCompletenessJob) RunOnce(ctx context.Context) int {
	query, err := queries.NewListOpenInvoicesQuery(queries.DefaultOpenInvoicesLimit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Document completeness job failed", "error", err)
		return 0
	}

	open, err := j.lister.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing open invoices failed", "error", err)
		return 0
	}

	changed := 0
	for _, inv := range open {
		cmd, err := commands.NewCheckDocumentCompletenessCommand(inv.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Document completeness job failed", "invoiceId", inv.ID.String(), "error", err)
			continue
		}

		result, err := j.checker.Handle(ctx, cmd)
		if err != nil {
			// An invoice released or edited since the listing is not a failure.
			if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrConcurrentModification) {
				j.logger.WarnContext(ctx, "Skipped document check", "invoiceId", inv.ID.String(), "error", err)
				continue
			}
			j.logger.ErrorContext(ctx, "Document check failed", "invoiceId", inv.ID.String(), "error", err)
			continue
		}
		if result.Changed {
			changed++
		}
	}

	if changed > 0 {
		j.logger.InfoContext(ctx, "Document completeness updated", "checked", len(open), "changed", changed)
	}
	return changed
}
