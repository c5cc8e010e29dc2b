// Package jobs provides scheduled background tasks for the dispatch
// engine, built on github.com/robfig/cron/v3.
//
// A single job is currently registered: AvailabilityAuditJob, which runs
// every minute and cross-checks the partner pool against live orders.
// The engine's transactional writes keep the two consistent, so the
// audit is a watchdog, not a repair mechanism: a reported violation means
// a bug or manual database intervention.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(db, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
