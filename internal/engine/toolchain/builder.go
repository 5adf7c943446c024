package toolchain

import (
	"fmt"
	"strconv"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// Scopes granted to jobs that download via the artifact proxy.
const (
	tooltoolPublicScope   = "artifact-proxy:tooltool.download.public"
	tooltoolInternalScope = "artifact-proxy:tooltool.download.internal"
)

// Builder owns descriptor construction for toolchain-script jobs. One
// Builder serves both backends; it holds only pure-function inputs, so
// building descriptors for independent jobs concurrently is safe.
type Builder struct {
	params  *domain.Params
	digests *DigestComputer
}

// NewBuilder creates a Builder hashing resources through hasher.
func NewBuilder(hasher ports.PathHasher, params *domain.Params) *Builder {
	return &Builder{
		params:  params,
		digests: NewDigestComputer(hasher, params),
	}
}

// RegisterHandlers binds the builder's per-backend handlers under the
// configured kind.
func (b *Builder) RegisterHandlers(r *Registry) {
	r.Register(domain.BackendContainerLinux, b.params.Kind, &containerLinuxHandler{b})
	r.Register(domain.BackendNativeWindows, b.params.Kind, &nativeWindowsHandler{b})
}

type containerLinuxHandler struct{ b *Builder }

// BuildTaskDescriptor fills in a descriptor for the containerized Linux
// worker.
func (h *containerLinuxHandler) BuildTaskDescriptor(run *domain.JobSpec, desc *domain.TaskDescriptor) error {
	b := h.b
	worker := &desc.Worker

	desc.RunOnProjects = []string{"trunk", "try"}
	worker.ChainOfTrust = true

	ensurePublicBuildArtifact(worker, domain.Artifact{
		Name: domain.PublicBuildArtifact,
		Path: domain.ArtifactsPath,
		Type: "directory",
	})

	if run.UseVCSCache {
		worker.Caches = append(worker.Caches, domain.Cache{
			Name:       fmt.Sprintf("level-%d-%s-vcs", b.params.TrustLevel, b.params.Project),
			MountPoint: domain.VCSCacheMountPoint,
		})
	}

	env := b.baseEnv()
	env["TOOLS_DISABLE"] = "true"
	mergeEnv(worker, env)

	if run.TooltoolDownloads != "" && run.TooltoolDownloads != domain.TooltoolNone {
		addTooltool(run, desc)
	}

	command, err := AssembleCommand(domain.BackendContainerLinux, run, b.params)
	if err != nil {
		return err
	}
	worker.Command = command

	b.setToolchainAttributes(run, desc)
	return b.addCacheRoutes(run, desc)
}

type nativeWindowsHandler struct{ b *Builder }

// BuildTaskDescriptor fills in a descriptor for the native Windows
// worker. The command is assembled first so unsupported scripts fail
// before the descriptor is touched.
func (h *nativeWindowsHandler) BuildTaskDescriptor(run *domain.JobSpec, desc *domain.TaskDescriptor) error {
	b := h.b

	command, err := AssembleCommand(domain.BackendNativeWindows, run, b.params)
	if err != nil {
		return err
	}

	worker := &desc.Worker
	desc.RunOnProjects = []string{"trunk", "try"}
	worker.ChainOfTrust = true

	ensurePublicBuildArtifact(worker, domain.Artifact{
		Name: domain.PublicBuildArtifact,
		Path: domain.WindowsBuildArtifactPath,
		Type: "directory",
	})

	mergeEnv(worker, b.baseEnv())
	worker.Command = command

	b.setToolchainAttributes(run, desc)
	return b.addCacheRoutes(run, desc)
}

// baseEnv returns the environment common to both backends.
func (b *Builder) baseEnv() map[string]string {
	return map[string]string{
		"BUILD_DATE":          b.params.BuildDate,
		"TRUST_LEVEL":         strconv.Itoa(b.params.TrustLevel),
		"AUTOMATION":          "1",
		"VCS_HEAD_REPOSITORY": b.params.HeadRepository,
		"VCS_HEAD_REV":        b.params.HeadRev,
	}
}

// addCacheRoutes computes the digest and stores the cache coordinates:
// the ordered lookup list as the optimization hint and the single write
// route on the descriptor's route list.
func (b *Builder) addCacheRoutes(run *domain.JobSpec, desc *domain.TaskDescriptor) error {
	digest, err := b.digests.Compute(run, desc.Worker.Env["TOOLTOOL_MANIFEST"], desc.Dependencies)
	if err != nil {
		return err
	}

	plan := PlanCacheIndex(digest, desc.Label, b.params.Kind, b.params.TrustLevel)
	desc.Optimization.IndexSearch = plan.ReadRoutes
	desc.Routes = append(desc.Routes, plan.WriteRoute)
	return nil
}

func (b *Builder) setToolchainAttributes(run *domain.JobSpec, desc *domain.TaskDescriptor) {
	if desc.Attributes == nil {
		desc.Attributes = make(map[string]string)
	}
	desc.Attributes["toolchain-artifact"] = run.ToolchainArtifact
	if run.ToolchainAlias != "" {
		desc.Attributes["toolchain-alias"] = run.ToolchainAlias
	}
}

// ensurePublicBuildArtifact adds the default public build artifact
// unless the caller already declared one under the conventional name.
func ensurePublicBuildArtifact(worker *domain.Worker, artifact domain.Artifact) {
	for _, a := range worker.Artifacts {
		if a.Name == domain.PublicBuildArtifact {
			return
		}
	}
	worker.Artifacts = append(worker.Artifacts, artifact)
}

// mergeEnv copies env into the worker environment without clobbering
// values the caller already set.
func mergeEnv(worker *domain.Worker, env map[string]string) {
	if worker.Env == nil {
		worker.Env = make(map[string]string, len(env))
	}
	for k, v := range env {
		if _, ok := worker.Env[k]; !ok {
			worker.Env[k] = v
		}
	}
}

// addTooltool wires the artifact proxy, the shared download cache and
// the scopes a tooltool-enabled job needs.
func addTooltool(run *domain.JobSpec, desc *domain.TaskDescriptor) {
	worker := &desc.Worker
	worker.RelengAPIProxy = true
	worker.Caches = append(worker.Caches, domain.Cache{
		Name:       domain.TooltoolCacheName,
		MountPoint: domain.TooltoolCacheMountPoint,
	})
	mergeEnv(worker, map[string]string{
		"TOOLTOOL_CACHE": domain.TooltoolCacheMountPoint,
	})

	desc.Scopes = append(desc.Scopes, tooltoolPublicScope)
	if run.TooltoolDownloads == domain.TooltoolInternal {
		desc.Scopes = append(desc.Scopes, tooltoolInternalScope)
	}
}
