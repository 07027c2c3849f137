package cron

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PurgeFunc removes rows older than cutoff and returns the number removed.
type PurgeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

// RetentionJob deletes rows that fall outside a retention window.
type RetentionJob struct {
	name  string
	keep  time.Duration
	purge PurgeFunc
	now   func() time.Time
}

// NewRetentionJob builds a job that keeps the last keep worth of rows.
func NewRetentionJob(name string, keep time.Duration, purge PurgeFunc) (*RetentionJob, error) {
	if name == "" {
		return nil, errors.New("job name required")
	}
	if keep <= 0 {
		return nil, fmt.Errorf("%s: retention must be positive", name)
	}
	if purge == nil {
		return nil, fmt.Errorf("%s: purge func required", name)
	}
	return &RetentionJob{
		name:  name,
		keep:  keep,
		purge: purge,
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

func (j *RetentionJob) Name() string { return j.name }

func (j *RetentionJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.keep)
	purged, err := j.purge(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return purged, nil
}
