// Package domain contains the core types for toolchain task generation.
package domain

import "strings"

// TooltoolMode controls which tooltool downloads a job may perform.
type TooltoolMode string

const (
	// TooltoolNone disables tooltool downloads for the job.
	TooltoolNone TooltoolMode = "none"

	// TooltoolPublic enables downloads of public tooltool files only.
	TooltoolPublic TooltoolMode = "public"

	// TooltoolInternal enables downloads of both public and internal files.
	TooltoolInternal TooltoolMode = "internal"
)

// Backend identifies the worker environment a job runs on. The backend
// determines command syntax and capability: the native Windows backend
// cannot run scripts that need the in-tree interpreter.
type Backend string

const (
	// BackendContainerLinux is the containerized Linux worker.
	BackendContainerLinux Backend = "container-linux"

	// BackendNativeWindows is the native Windows worker.
	BackendNativeWindows Backend = "native-windows"
)

// Job is one entry of the job definitions file: the job's identity and
// placement plus the run description consumed by the kind handler.
type Job struct {
	Label       string
	Kind        string
	Backend     Backend
	Description string

	// Dependencies maps a dependency's label to the identifier of the
	// task that provides it.
	Dependencies map[string]string

	// Env presets worker environment variables. The builder merges its
	// own variables in without clobbering these.
	Env map[string]string

	Run JobSpec
}

// JobSpec describes one toolchain build job. It is immutable once the
// loader has validated it.
type JobSpec struct {
	// Script is the build script filename, resolved under the in-tree
	// toolchain scripts directory. Scripts ending in .py are invoked
	// through the in-tree python runner so vendored libraries are
	// available.
	Script string

	// Arguments are passed to the script in order. Order is
	// significant: it changes both the command line and the digest.
	Arguments []string

	// TooltoolDownloads enables tooltool downloads via the relengapi
	// proxy. Not supported on the Windows backend.
	TooltoolDownloads TooltoolMode

	// UseVCSCache mounts the shared VCS cache into the worker. Not
	// supported on the Windows backend.
	UseVCSCache bool

	// SparseProfile names a checkout sparse profile under the in-tree
	// sparse-profiles directory. Empty means a full checkout.
	SparseProfile string

	// Resources are paths or glob patterns, relative to the repository
	// root, for files that influence the build output.
	Resources []string

	// ToolchainArtifact is the path of the artifact the job produces.
	ToolchainArtifact string

	// ToolchainAlias is an optional alternate name other jobs may use
	// to reference this toolchain.
	ToolchainAlias string
}

// NeedsInTreeInterpreter reports whether the job's script must be run
// through the in-tree python runner.
func (j *JobSpec) NeedsInTreeInterpreter() bool {
	return strings.HasSuffix(j.Script, ".py")
}
