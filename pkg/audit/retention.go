package audit

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kfone/console/pkg/observability"
)

// RetentionJob prunes aged audit events on a cron schedule.
type RetentionJob struct {
	store         *Store
	retentionDays int
	schedule      string
	logger        *observability.Logger
	cron          *cron.Cron
}

// NewRetentionJob creates the prune job. schedule is a standard 5-field cron
// expression, e.g. "0 3 * * *" for a nightly run.
func NewRetentionJob(store *Store, retentionDays int, schedule string, logger *observability.Logger) *RetentionJob {
	return &RetentionJob{
		store:         store,
		retentionDays: retentionDays,
		schedule:      schedule,
		logger:        logger,
	}
}

// Start registers and starts the cron schedule.
func (j *RetentionJob) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for an in-flight run to finish.
func (j *RetentionJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// RunOnce prunes immediately. Exposed so operators can trigger it out of
// schedule.
func (j *RetentionJob) RunOnce() {
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pruned, err := j.store.Prune(ctx, cutoff)
	if err != nil {
		j.logger.WithError(err).Error("Audit retention prune failed")
		return
	}
	if pruned > 0 {
		j.logger.Infof("Pruned %d audit events older than %s", pruned, cutoff.Format(time.RFC3339))
	}
}
