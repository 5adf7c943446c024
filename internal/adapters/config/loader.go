// Package config loads and validates the job definitions file.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultSparseProfile is used when a job does not choose a profile.
const DefaultSparseProfile = "toolchain-build"

var _ ports.JobLoader = (*Loader)(nil)

// Loader implements ports.JobLoader for YAML job files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the job definitions file at path, applies schema defaults
// and validates every job. Validation failures are rejected here, before
// any descriptor is built.
func (l *Loader) Load(path string) (*domain.Params, []*domain.Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		readErr := zerr.With(domain.ErrJobFileReadFailed, "path", path)
		return nil, nil, zerr.With(readErr, "cause", err.Error())
	}

	var file JobFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		parseErr := zerr.With(domain.ErrJobFileParseFailed, "path", path)
		return nil, nil, zerr.With(parseErr, "cause", err.Error())
	}

	params, err := buildParams(&file.Params, path)
	if err != nil {
		return nil, nil, err
	}

	jobs := make([]*domain.Job, 0, len(file.Jobs))
	labels := make(map[string]bool, len(file.Jobs))
	for i := range file.Jobs {
		job, err := buildJob(&file.Jobs[i], params)
		if err != nil {
			return nil, nil, err
		}
		if labels[job.Label] {
			return nil, nil, zerr.With(domain.ErrDuplicateLabel, "label", job.Label)
		}
		labels[job.Label] = true
		jobs = append(jobs, job)
	}

	return params, jobs, nil
}

func buildParams(dto *ParamsDTO, cfgPath string) (*domain.Params, error) {
	if dto.TrustLevel < 1 {
		return nil, zerr.With(domain.ErrInvalidTrustLevel, "trust_level", dto.TrustLevel)
	}

	root := dto.RepoRoot
	if root == "" {
		root = "."
	}
	kind := dto.Kind
	if kind == "" {
		kind = "toolchain"
	}

	// The job file itself is a digest input; record where it sits
	// relative to the hashed repository root.
	jobFile := cfgPath
	if rel, err := filepath.Rel(root, cfgPath); err == nil {
		jobFile = filepath.ToSlash(rel)
	}

	return &domain.Params{
		RepoRoot:       root,
		TrustLevel:     dto.TrustLevel,
		BuildDate:      dto.BuildDate,
		Project:        dto.Project,
		Kind:           kind,
		JobFile:        jobFile,
		HeadRepository: dto.HeadRepository,
		HeadRev:        dto.HeadRev,
		UpstreamRepo:   dto.UpstreamRepo,
	}, nil
}

func buildJob(dto *JobDTO, params *domain.Params) (*domain.Job, error) {
	if dto.Label == "" {
		return nil, domain.ErrMissingLabel
	}

	backend, err := parseBackend(dto.Worker)
	if err != nil {
		return nil, zerr.With(err, "label", dto.Label)
	}

	run, err := buildRun(&dto.Run, backend)
	if err != nil {
		return nil, zerr.With(err, "label", dto.Label)
	}

	kind := dto.Kind
	if kind == "" {
		kind = params.Kind
	}

	return &domain.Job{
		Label:        dto.Label,
		Kind:         kind,
		Backend:      backend,
		Description:  dto.Description,
		Dependencies: dto.Dependencies,
		Env:          dto.Env,
		Run:          *run,
	}, nil
}

func buildRun(dto *RunDTO, backend domain.Backend) (*domain.JobSpec, error) {
	if dto.Script == "" {
		return nil, domain.ErrMissingScript
	}
	if dto.ToolchainArtifact == "" {
		return nil, domain.ErrMissingToolchainArtifact
	}

	mode, err := parseTooltoolMode(dto.TooltoolDownloads)
	if err != nil {
		return nil, err
	}

	useVCSCache := backend == domain.BackendContainerLinux
	if dto.VCSCache != nil {
		useVCSCache = *dto.VCSCache
	}

	sparse := DefaultSparseProfile
	if dto.SparseProfile != nil {
		sparse = *dto.SparseProfile
	}

	if backend == domain.BackendNativeWindows {
		if mode != domain.TooltoolNone || useVCSCache {
			return nil, zerr.With(domain.ErrBackendCapability,
				"backend", string(backend))
		}
	}

	return &domain.JobSpec{
		Script:            dto.Script,
		Arguments:         dto.Arguments,
		TooltoolDownloads: mode,
		UseVCSCache:       useVCSCache,
		SparseProfile:     sparse,
		Resources:         dto.Resources,
		ToolchainArtifact: dto.ToolchainArtifact,
		ToolchainAlias:    dto.ToolchainAlias,
	}, nil
}

func parseBackend(s string) (domain.Backend, error) {
	switch domain.Backend(s) {
	case domain.BackendContainerLinux, domain.BackendNativeWindows:
		return domain.Backend(s), nil
	default:
		return "", zerr.With(domain.ErrUnknownBackend, "worker", s)
	}
}

func parseTooltoolMode(s string) (domain.TooltoolMode, error) {
	switch domain.TooltoolMode(s) {
	case "", domain.TooltoolNone:
		return domain.TooltoolNone, nil
	case domain.TooltoolPublic, domain.TooltoolInternal:
		return domain.TooltoolMode(s), nil
	default:
		return "", zerr.With(domain.ErrInvalidTooltoolMode, "tooltool_downloads", s)
	}
}
