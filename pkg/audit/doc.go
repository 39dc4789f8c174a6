// Package audit records the console's administrative actions: sign-ins,
// impersonation starts and stops, client creation, and role template saves.
//
// Events are stored in a local SQLite database and pruned on a cron schedule
// according to the configured retention.
//
//	store, _ := audit.NewStore("console-audit.db")
//	defer store.Close()
//
//	store.Record(ctx, audit.NewEvent(ctx, audit.EventImpersonationStart, audit.StatusSuccess).
//		WithResource(email).
//		WithMessage("impersonation started"))
//
//	job := audit.NewRetentionJob(store, 90, "0 3 * * *", logger)
//	job.Start()
//	defer job.Stop()
package audit
