package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type fakeLock struct {
	held       bool
	acquireErr error
	releases   int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	f.releases++
	return nil
}

type testJob struct {
	name   string
	purged int64
	err    error
	runs   int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) (int64, error) {
	t.runs++
	return t.purged, t.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestServiceRunCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	success := &testJob{name: "success", purged: 3}
	failure := &testJob{name: "fail", err: errors.New("boom")}
	lock := &fakeLock{}
	reg := prometheus.NewRegistry()

	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(success, nil, failure),
		Lock:     lock,
		Metrics:  metrics.NewMaintenanceMetrics(reg),
	})
	require.NoError(t, err)

	require.NoError(t, service.runCycle(context.Background()))
	assert.Equal(t, 1, success.runs)
	assert.Equal(t, 1, failure.runs)
	assert.Equal(t, 1, lock.releases)
	assert.False(t, lock.held)

	count, err := testutil.GatherAndCount(reg, "storefront_maintenance_job_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestServiceRunCycleSkipsWhenLockHeld(t *testing.T) {
	job := &testJob{name: "retention"}
	lock := &fakeLock{held: true}
	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, service.runCycle(context.Background()))
	assert.Zero(t, job.runs)
	assert.Zero(t, lock.releases)
}

func TestServiceRunCycleReportsLockErrors(t *testing.T) {
	service, err := NewService(ServiceParams{
		Logger: testLogger(),
		Lock:   &fakeLock{acquireErr: errors.New("redis down")},
	})
	require.NoError(t, err)
	assert.ErrorContains(t, service.runCycle(context.Background()), "redis down")
}

type signalJob struct {
	ran chan struct{}
}

func (s *signalJob) Name() string { return "signal" }

func (s *signalJob) Run(context.Context) (int64, error) {
	select {
	case s.ran <- struct{}{}:
	default:
	}
	return 0, nil
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	job := &signalJob{ran: make(chan struct{}, 1)}
	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     &fakeLock{},
		Interval: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()

	select {
	case <-job.ran:
	case <-time.After(time.Second):
		t.Fatal("first cycle did not run")
	}
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("service did not stop")
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(ServiceParams{Lock: &fakeLock{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{Logger: testLogger()})
	assert.Error(t, err)
}
