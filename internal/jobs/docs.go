// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. DocumentCompletenessJob - re-checks the paperwork of invoices that are
// not yet ready for dispatch and flips their "blocked waiting for documents"
// flag. The schedule comes from DOCUMENT_SWEEP_SCHEDULE and defaults to every
// five minutes.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listOpenInvoicesHandler, checkDocumentsHandler, schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep never stops on a single invoice: invoices that vanished or changed
// concurrently are logged as warnings, other failures as errors. Overlapping
// runs are skipped.
package jobs
