package tasks

import (
	"context"
	"errors"
	"testing"

	"isml_backend/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDrainer struct {
	calls int
	err   error
}

func (d *countingDrainer) Drain(context.Context) (notify.DrainResult, error) {
	d.calls++
	return notify.DrainResult{Sent: 1}, d.err
}

type countingReconciler struct {
	calls int
}

func (r *countingReconciler) Reconcile(context.Context) (int64, error) {
	r.calls++
	return 130, nil
}

func TestInitSchedulerRegistersJobs(t *testing.T) {
	c, err := InitScheduler(context.Background(),
		Schedule{Outbox: "@every 10s", Reconcile: "0 0 3 * * *"},
		&countingDrainer{}, &countingReconciler{})
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 2)
}

func TestInitSchedulerSkipsDisabledJobs(t *testing.T) {
	c, err := InitScheduler(context.Background(),
		Schedule{Reconcile: "0 0 3 * * *"},
		&countingDrainer{}, nil)
	require.NoError(t, err)
	defer c.Stop()

	assert.Empty(t, c.Entries())
}

func TestInitSchedulerRejectsBadExpression(t *testing.T) {
	_, err := InitScheduler(context.Background(),
		Schedule{Outbox: "every now and then"},
		&countingDrainer{}, nil)
	assert.Error(t, err)
}

func TestJobsCallThrough(t *testing.T) {
	d := &countingDrainer{err: errors.New("redis down")}
	DrainOutbox(context.Background(), d)
	assert.Equal(t, 1, d.calls)

	r := &countingReconciler{}
	ReconcileSequence(context.Background(), r)
	assert.Equal(t, 1, r.calls)
}
