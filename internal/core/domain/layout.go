package domain

const (
	// WorkerHome is the home directory of the containerized worker.
	WorkerHome = "/builds/worker"

	// RunTaskPath is the checkout-and-run launcher inside the
	// container image.
	RunTaskPath = "/builds/worker/bin/run-task"

	// VCSCheckoutPath is where run-task places the source checkout.
	VCSCheckoutPath = "/builds/worker/workspace/build/src"

	// CheckoutRelPath is VCSCheckoutPath relative to WorkerHome.
	CheckoutRelPath = "workspace/build/src"

	// ArtifactsPath is where the container worker collects artifacts.
	ArtifactsPath = "/builds/worker/artifacts/"

	// ScriptsDir is the in-tree directory holding toolchain build
	// scripts, relative to the checkout root.
	ScriptsDir = "ci/scripts/toolchain"

	// SparseProfilesDir holds the checkout sparse profiles, relative
	// to the checkout root.
	SparseProfilesDir = "ci/sparse-profiles"

	// InTreePythonRunner is the in-tree launcher that runs python
	// scripts with vendored libraries on the import path.
	InTreePythonRunner = "ci/run-python"

	// VCSCacheMountPoint is where the shared VCS cache is mounted in
	// the container worker.
	VCSCacheMountPoint = "/builds/worker/.vcs-cache"

	// TooltoolCacheName and TooltoolCacheMountPoint describe the
	// shared tooltool download cache.
	TooltoolCacheName       = "tooltool-cache"
	TooltoolCacheMountPoint = "/builds/worker/tooltool-cache"

	// PublicBuildArtifact is the conventional name of the public build
	// output artifact.
	PublicBuildArtifact = "public/build"
)

// Windows worker layout. The native backend has no container image, so
// tool locations are fixed install paths on the worker host.
const (
	WindowsHgPath       = `c:\Program Files\Mercurial\hg.exe`
	WindowsBashPath     = `c:\msys64\usr\bin\bash`
	WindowsHgShareBase  = `y:\hg-shared`
	WindowsCheckoutDest = `.\build\src`

	// WindowsCheckoutRelPath is the checkout destination as seen from
	// the worker's task directory, forward-slashed for bash.
	WindowsCheckoutRelPath = "build/src"

	// WindowsBuildArtifactPath is the directory the Windows worker
	// uploads as the public build artifact.
	WindowsBuildArtifactPath = `public\build`
)

// Environment placeholders the Windows worker expands before running a
// command segment.
const (
	EnvPlaceholderHeadRev  = "%VCS_HEAD_REV%"
	EnvPlaceholderHeadRepo = "%VCS_HEAD_REPOSITORY%"
)
