package domain

import "go.trai.ch/zerr"

var (
	// ErrResourceNotFound is returned when a declared resource pattern
	// matches no existing file during digest computation.
	ErrResourceNotFound = zerr.New("resource not found")

	// ErrResourceHashFailed is returned when a resource file cannot be
	// read or hashed.
	ErrResourceHashFailed = zerr.New("failed to hash resource")

	// ErrInTreeInterpreterUnsupported is returned when a backend
	// without the in-tree python runner is asked to run a .py script.
	// This is a build-definition bug: change the script or the backend.
	ErrInTreeInterpreterUnsupported = zerr.New("in-tree interpreter scripts are not supported on this backend")

	// ErrNoHandler is returned when no handler is registered for a
	// job's (backend, kind) pair.
	ErrNoHandler = zerr.New("no handler registered for backend and kind")

	// ErrJobFileReadFailed is returned when the job definitions file
	// cannot be read.
	ErrJobFileReadFailed = zerr.New("failed to read job definitions file")

	// ErrJobFileParseFailed is returned when the job definitions file
	// cannot be parsed.
	ErrJobFileParseFailed = zerr.New("failed to parse job definitions file")

	// ErrMissingLabel is returned when a job has no label.
	ErrMissingLabel = zerr.New("job is missing a label")

	// ErrDuplicateLabel is returned when two jobs share a label.
	ErrDuplicateLabel = zerr.New("duplicate job label")

	// ErrMissingScript is returned when a job declares no build script.
	ErrMissingScript = zerr.New("job is missing a script")

	// ErrMissingToolchainArtifact is returned when a job declares no
	// toolchain artifact path.
	ErrMissingToolchainArtifact = zerr.New("job is missing a toolchain artifact")

	// ErrInvalidTooltoolMode is returned for an unknown
	// tooltool-downloads value.
	ErrInvalidTooltoolMode = zerr.New("invalid tooltool-downloads mode, expected 'none', 'public' or 'internal'")

	// ErrUnknownBackend is returned for an unknown worker backend.
	ErrUnknownBackend = zerr.New("unknown worker backend")

	// ErrInvalidTrustLevel is returned when the trust level is below 1.
	ErrInvalidTrustLevel = zerr.New("trust level must be at least 1")

	// ErrBackendCapability is returned when a job requests a feature
	// its backend does not support, such as tooltool downloads or the
	// VCS cache on Windows.
	ErrBackendCapability = zerr.New("job requests a feature its backend does not support")
)
