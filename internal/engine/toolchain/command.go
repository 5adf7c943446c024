package toolchain

import (
	"fmt"
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// AssembleCommand produces the ordered command segments for run on the
// given backend. Assembly is pure: no I/O, deterministic for a given
// spec.
func AssembleCommand(backend domain.Backend, run *domain.JobSpec, params *domain.Params) ([]string, error) {
	switch backend {
	case domain.BackendContainerLinux:
		return containerLinuxCommand(run), nil
	case domain.BackendNativeWindows:
		return nativeWindowsCommand(run, params)
	default:
		return nil, zerr.With(domain.ErrUnknownBackend, "backend", string(backend))
	}
}

// quotedArguments renders the script arguments as a single
// POSIX-quoted, space-prefixed token, or "" when there are none. Both
// backends run the script under bash, so they share quoting rules.
func quotedArguments(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return " " + shellquote.Join(args...)
}

// containerLinuxCommand wraps the script in the run-task launcher,
// which performs the checkout (optionally sparse) before handing off to
// a shell invocation inside the worker home.
func containerLinuxCommand(run *domain.JobSpec) []string {
	// Python scripts go through the in-tree runner so vendored
	// libraries are importable.
	wrapper := ""
	if run.NeedsInTreeInterpreter() {
		wrapper = domain.CheckoutRelPath + "/" + domain.InTreePythonRunner + " "
	}

	command := []string{
		domain.RunTaskPath,
		"--vcs-checkout=" + domain.VCSCheckoutPath,
	}
	if run.SparseProfile != "" {
		command = append(command,
			"--sparse-profile", path.Join(domain.SparseProfilesDir, run.SparseProfile))
	}
	command = append(command,
		"--",
		"bash",
		"-c",
		fmt.Sprintf("cd %s && %s%s%s",
			domain.WorkerHome,
			wrapper,
			path.Join(domain.CheckoutRelPath, domain.ScriptsDir, run.Script),
			quotedArguments(run.Arguments)),
	)
	return command
}

// nativeWindowsCommand emits two command segments: a robustcheckout of
// the source tree, then a bash invocation of the script. The Windows
// worker has no in-tree python runner, so .py scripts are rejected
// outright.
func nativeWindowsCommand(run *domain.JobSpec, params *domain.Params) ([]string, error) {
	if run.NeedsInTreeInterpreter() {
		return nil, zerr.With(domain.ErrInTreeInterpreterUnsupported, "script", run.Script)
	}

	checkout := []string{
		`"` + domain.WindowsHgPath + `"`,
		"robustcheckout",
		"--sharebase", domain.WindowsHgShareBase,
		"--purge",
		"--upstream", params.UpstreamRepo,
		"--revision", domain.EnvPlaceholderHeadRev,
		domain.EnvPlaceholderHeadRepo,
		domain.WindowsCheckoutDest,
	}

	script := fmt.Sprintf("%s %s%s",
		domain.WindowsBashPath,
		path.Join(domain.WindowsCheckoutRelPath, domain.ScriptsDir, run.Script),
		quotedArguments(run.Arguments))

	return []string{strings.Join(checkout, " "), script}, nil
}
