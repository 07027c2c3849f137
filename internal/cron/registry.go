package cron

import "context"

// Job is a scheduled maintenance task. Run reports how many rows it removed.
type Job interface {
	Name() string
	Run(ctx context.Context) (int64, error)
}

// Registry keeps jobs in registration order.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry preloaded with jobs; nil entries are skipped.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy of the registered jobs.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
