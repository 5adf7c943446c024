package config

// JobFile is the top-level structure of the job definitions file.
type JobFile struct {
	Params ParamsDTO `yaml:"params"`
	Jobs   []JobDTO  `yaml:"jobs"`
}

// ParamsDTO holds the run-wide generation parameters.
type ParamsDTO struct {
	RepoRoot       string `yaml:"repo-root"`
	TrustLevel     int    `yaml:"trust-level"`
	BuildDate      string `yaml:"build-date"`
	Project        string `yaml:"project"`
	Kind           string `yaml:"kind"`
	HeadRepository string `yaml:"head-repository"`
	HeadRev        string `yaml:"head-rev"`
	UpstreamRepo   string `yaml:"upstream-repo"`
}

// JobDTO is one job entry.
type JobDTO struct {
	Label        string            `yaml:"label"`
	Kind         string            `yaml:"kind"`
	Worker       string            `yaml:"worker"`
	Description  string            `yaml:"description"`
	Dependencies map[string]string `yaml:"dependencies"`

	// Env presets worker environment variables, e.g. TOOLTOOL_MANIFEST.
	// The builder merges its own variables in without clobbering these.
	Env map[string]string `yaml:"env"`

	Run RunDTO `yaml:"run"`
}

// RunDTO mirrors the toolchain-script run schema.
type RunDTO struct {
	Script    string   `yaml:"script"`
	Arguments []string `yaml:"arguments"`

	// TooltoolDownloads defaults to "none". Not supported on the
	// Windows backend.
	TooltoolDownloads string `yaml:"tooltool-downloads"`

	// VCSCache defaults to true on the container backend and to false
	// on Windows, which does not support it.
	VCSCache *bool `yaml:"vcs-cache"`

	// SparseProfile defaults to "toolchain-build" when omitted. Set it
	// to the empty string for a full checkout.
	SparseProfile *string `yaml:"sparse-profile"`

	Resources         []string `yaml:"resources"`
	ToolchainArtifact string   `yaml:"toolchain-artifact"`
	ToolchainAlias    string   `yaml:"toolchain-alias"`
}
