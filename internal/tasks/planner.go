package tasks

import (
	"context"
	"time"

	"isml_backend/internal/logger"
	"isml_backend/internal/notify"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// Drainer empties the notification outbox.
type Drainer interface {
	Drain(ctx context.Context) (notify.DrainResult, error)
}

// Reconciler realigns the batch sequence counter with the stored names.
type Reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// Schedule says when each job runs. An empty expression or a nil job disables it.
type Schedule struct {
	Outbox    string
	Reconcile string
}

// DrainOutbox runs one drain and logs what it did.
func DrainOutbox(ctx context.Context, d Drainer) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	res, err := d.Drain(ctx)
	if err != nil {
		logger.Error("outbox drain failed", err)
		return
	}
	if res.Sent+res.Retried+res.Dead > 0 {
		logger.Info("outbox drained",
			zap.Int("sent", res.Sent),
			zap.Int("retried", res.Retried),
			zap.Int("dead", res.Dead))
	}
}

// ReconcileSequence raises the batch counter past any number already in use.
func ReconcileSequence(ctx context.Context, r Reconciler) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	value, err := r.Reconcile(ctx)
	if err != nil {
		logger.Error("batch sequence reconcile failed", err)
		return
	}
	logger.Info("batch sequence reconciled", zap.Int64("value", value))
}

// InitScheduler registers the jobs on a seconds-enabled cron and starts it.
// Stop the returned cron to end both jobs.
func InitScheduler(ctx context.Context, sched Schedule, drainer Drainer, reconciler Reconciler) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if drainer != nil && sched.Outbox != "" {
		if _, err := c.AddFunc(sched.Outbox, func() { DrainOutbox(ctx, drainer) }); err != nil {
			return nil, err
		}
	}
	if reconciler != nil && sched.Reconcile != "" {
		if _, err := c.AddFunc(sched.Reconcile, func() { ReconcileSequence(ctx, reconciler) }); err != nil {
			return nil, err
		}
	}

	c.Start()
	logger.Info("scheduler started",
		zap.String("outbox", sched.Outbox),
		zap.String("reconcile", sched.Reconcile),
		zap.Int("jobs", len(c.Entries())))
	return c, nil
}
