package domain

// Params carries the run-wide generation parameters. They used to be
// process-wide globals in older generators; threading them through
// explicitly keeps digest computation and command assembly pure.
type Params struct {
	// RepoRoot is the filesystem root all resource patterns are
	// resolved against when hashing.
	RepoRoot string

	// TrustLevel is the trust tier of the environment generating the
	// tasks, 1 (lowest) through 3 (highest). Values above 3 are
	// clamped to 3 when planning cache routes.
	TrustLevel int

	// BuildDate is the timestamp stamp exported to build scripts.
	BuildDate string

	// Project names the repository the run builds from; it feeds into
	// VCS cache names.
	Project string

	// Kind is the job kind generating these tasks. Its "{kind}-"
	// prefix is stripped from labels when forming index route names.
	Kind string

	// JobFile is the repository-relative path of the job definitions
	// file. It is hashed into every digest so edits to the job
	// definitions invalidate cached toolchains.
	JobFile string

	// HeadRepository and HeadRev identify the checkout the workers
	// build from; they are exported into the worker environment.
	HeadRepository string
	HeadRev        string

	// UpstreamRepo is the shared upstream the Windows robustcheckout
	// pulls from.
	UpstreamRepo string
}

// MaxTrustLevel is the highest trust tier; caches at this level are
// readable by every environment.
const MaxTrustLevel = 3
