package domain

// Artifact is one entry in a worker's artifact list.
type Artifact struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Type string `yaml:"type"`
}

// Cache is a named cache volume mounted into a worker.
type Cache struct {
	Name       string `yaml:"name"`
	MountPoint string `yaml:"mount-point"`
}

// Worker holds the backend-specific execution configuration of a task.
type Worker struct {
	Backend Backend `yaml:"backend"`

	// Env is the worker environment. The builder merges generation
	// parameters in without clobbering values set by the caller.
	Env map[string]string `yaml:"env"`

	// Command is the ordered command segments handed to the worker.
	// The container backend produces a single argv; the Windows
	// backend produces one segment per command line.
	Command []string `yaml:"command"`

	Artifacts    []Artifact `yaml:"artifacts"`
	Caches       []Cache    `yaml:"caches,omitempty"`
	ChainOfTrust bool       `yaml:"chain-of-trust"`

	// RelengAPIProxy enables the artifact-proxy feature needed for
	// tooltool downloads. Container backend only.
	RelengAPIProxy bool `yaml:"relengapi-proxy,omitempty"`
}

// Optimization carries hints the downstream scheduler uses to skip a
// task, most importantly the ordered cache index lookup list.
type Optimization struct {
	// IndexSearch is probed in order; the first hit wins. Routes are
	// ordered from the most trusted cache level down to the level the
	// current run writes to.
	IndexSearch []string `yaml:"index-search,omitempty"`
}

// TaskDescriptor is the concrete, worker-ready description of one
// toolchain build task. A descriptor is owned by the caller that builds
// it; the builder mutates it in place and never publishes partial
// results.
type TaskDescriptor struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`

	// Dependencies maps a dependency's label to its task identifier.
	// The identifiers feed into the digest so a rebuilt dependency
	// invalidates this task's cache entry.
	Dependencies map[string]string `yaml:"dependencies,omitempty"`

	Worker Worker `yaml:"worker"`

	Attributes    map[string]string `yaml:"attributes,omitempty"`
	Routes        []string          `yaml:"routes,omitempty"`
	Scopes        []string          `yaml:"scopes,omitempty"`
	RunOnProjects []string          `yaml:"run-on-projects,omitempty"`

	Optimization Optimization `yaml:"optimization"`
}
