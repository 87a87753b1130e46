// Package jobs provides the scheduled background tasks of the dispatch
// service, built on github.com/robfig/cron/v3.
//
// OrderAssignmentJob periodically assigns the oldest waiting order to the
// closest available courier. It runs the same guarded command the API uses,
// so a sweep and a manual assignment racing for one order still produce
// exactly one winner.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(autoAssignHandler, jobs.DefaultAssignmentSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Expected business outcomes (nothing waiting, nobody in range, a lost
// assignment race) are skipped quietly; anything else is logged as an error.
package jobs
