package ports

import "go.trai.ch/forge/internal/core/domain"

// Handler turns a validated job spec into a complete task descriptor
// for one (backend, kind) pair.
type Handler interface {
	// BuildTaskDescriptor fills in the partially built descriptor:
	// command, environment, artifacts, caching metadata and
	// attributes. The descriptor is mutated in place; on error it must
	// not be published.
	BuildTaskDescriptor(run *domain.JobSpec, desc *domain.TaskDescriptor) error
}

// JobLoader reads the job definitions file and returns the generation
// parameters and validated job specs.
type JobLoader interface {
	Load(path string) (*domain.Params, []*domain.Job, error)
}
