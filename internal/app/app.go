// Package app implements the application layer for forge.
package app

import (
	"context"
	"io"
	"maps"
	"runtime"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/toolchain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// App represents the main application logic.
type App struct {
	loader ports.JobLoader
	hasher ports.PathHasher
	logger ports.Logger
}

// New creates a new App instance.
func New(loader ports.JobLoader, hasher ports.PathHasher, logger ports.Logger) *App {
	return &App{
		loader: loader,
		hasher: hasher,
		logger: logger,
	}
}

// RunOptions carries command-line overrides for the generation run.
type RunOptions struct {
	// TrustLevel overrides the trust level from the job file when
	// positive.
	TrustLevel int
}

// Run loads the job definitions file, builds a task descriptor for
// every job and encodes the results as YAML to out. Jobs are
// independent, so descriptors are built concurrently; the first failure
// aborts the run and nothing is emitted.
func (a *App) Run(ctx context.Context, cfgPath string, out io.Writer, opts RunOptions) error {
	params, jobs, err := a.loader.Load(cfgPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load job definitions")
	}
	if opts.TrustLevel > 0 {
		params.TrustLevel = opts.TrustLevel
	}

	registry := toolchain.NewRegistry()
	toolchain.NewBuilder(a.hasher, params).RegisterHandlers(registry)

	descriptors := make([]*domain.TaskDescriptor, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, job := range jobs {
		g.Go(func() error {
			handler, err := registry.Lookup(job.Backend, job.Kind)
			if err != nil {
				return zerr.With(err, "label", job.Label)
			}

			desc := newDescriptor(job)
			if err := handler.BuildTaskDescriptor(&job.Run, desc); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to build task descriptor"), "label", job.Label)
			}

			descriptors[i] = desc
			a.logger.Info("built task descriptor for " + job.Label)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(descriptors); err != nil {
		return zerr.Wrap(err, "failed to encode task descriptors")
	}
	return enc.Close()
}

// newDescriptor seeds the partial descriptor a kind handler fills in.
func newDescriptor(job *domain.Job) *domain.TaskDescriptor {
	return &domain.TaskDescriptor{
		Label:        job.Label,
		Description:  job.Description,
		Dependencies: job.Dependencies,
		Worker: domain.Worker{
			Backend: job.Backend,
			Env:     maps.Clone(job.Env),
		},
	}
}
