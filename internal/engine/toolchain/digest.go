// Package toolchain turns toolchain build job specs into worker-ready
// task descriptors with content-addressed cache coordinates.
package toolchain

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"path"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// DigestComputer derives the cache digest for a job: a pure function of
// the content of every file that influences the build output, the
// task's dependency identifiers and the script arguments.
type DigestComputer struct {
	hasher ports.PathHasher
	params *domain.Params
}

// NewDigestComputer creates a DigestComputer hashing against the
// repository root in params.
func NewDigestComputer(hasher ports.PathHasher, params *domain.Params) *DigestComputer {
	return &DigestComputer{hasher: hasher, params: params}
}

// Compute returns the digest for run. The hashed file set is the job's
// declared resources plus the job definitions file and the build script
// itself, plus the tooltool manifest when one is set. Dependency
// identifiers are sorted before hashing so map iteration order cannot
// leak into the digest; argument order is preserved because it changes
// script behavior.
func (c *DigestComputer) Compute(run *domain.JobSpec, tooltoolManifest string, deps map[string]string) (string, error) {
	files := slices.Clone(run.Resources)
	files = append(files,
		c.params.JobFile,
		path.Join(domain.ScriptsDir, run.Script),
	)
	if tooltoolManifest != "" {
		files = append(files, tooltoolManifest)
	}

	contentHash, err := c.hasher.HashPaths(c.params.RepoRoot, files)
	if err != nil {
		return "", zerr.Wrap(err, "failed to hash build inputs")
	}

	data := []string{contentHash}
	data = append(data, slices.Sorted(maps.Values(deps))...)
	data = append(data, run.Arguments...)

	sum := sha256.Sum256([]byte(strings.Join(data, "\n")))
	return hex.EncodeToString(sum[:]), nil
}
