package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	documentCompletenessJob *DocumentCompletenessJob
}

func NewJobManager(
	listOpenInvoicesHandler queries.ListOpenInvoicesQueryHandler,
	checkDocumentsHandler commands.CheckDocumentCompletenessCommandHandler,
	documentSweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		documentCompletenessJob: NewDocumentCompletenessJob(
			listOpenInvoicesHandler,
			checkDocumentsHandler,
			documentSweepSchedule,
			logger,
		),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.documentCompletenessJob.Start(); err != nil {
		return fmt.Errorf("failed to start document completeness job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.documentCompletenessJob.Stop()
}
