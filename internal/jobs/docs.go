// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. PaymentExpiryJob - runs every minute and fails gateway payments whose
// callback has not arrived within the payment TTL, marking their orders'
// payment as failed.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewPaymentExpiryJob(expireHandler, cfg.PaymentTTL, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and the job waits for its next tick; nothing is retried
// within a tick. A failed start stops the jobs already running.
package jobs
