// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OfferExpirationJob cancels Offered jobs whose expires_at has passed. Accepting an
// expired offer already fails lazily, so the sweep only keeps stored statuses accurate for
// listings. It is enabled with OFFER_SWEEP_ENABLED and scheduled by OFFER_SWEEP_SCHEDULE,
// every minute by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Config{OfferSweepEnabled: true}, expireOffersHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Offers expired before the failure
// stay expired.
package jobs
