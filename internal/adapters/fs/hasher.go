package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathHasher = (*Hasher)(nil)

// Hasher implements ports.PathHasher with XXHash.
type Hasher struct {
	walker FileWalker
}

// NewHasher creates a new Hasher.
func NewHasher(walker FileWalker) *Hasher {
	return &Hasher{walker: walker}
}

// HashPaths resolves patterns under root and returns a hash covering
// the relative path and content of every matched file.
//
// The resolved file set is canonicalized before hashing: paths are
// sorted lexicographically and deduplicated, so the result does not
// depend on pattern order or on two patterns matching the same file.
// Changing this canonicalization changes every digest and therefore
// invalidates cache entries written by earlier versions.
func (h *Hasher) HashPaths(root string, patterns []string) (string, error) {
	files, err := h.resolve(root, patterns)
	if err != nil {
		return "", err
	}

	slices.Sort(files)
	files = slices.Compact(files)

	hasher := xxhash.New()
	for _, rel := range files {
		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0})
		if err := h.hashFileContent(filepath.Join(root, rel), hasher); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// resolve expands each pattern to root-relative file paths. A pattern
// may name a file, a directory (walked recursively) or a glob.
func (h *Hasher) resolve(root string, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matched, err := h.resolveOne(root, pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matched...)
	}
	return files, nil
}

func (h *Hasher) resolveOne(root, pattern string) ([]string, error) {
	abs := filepath.Join(root, pattern)

	info, err := os.Stat(abs)
	if err != nil {
		return h.glob(root, abs)
	}

	if !info.IsDir() {
		return []string{filepath.ToSlash(pattern)}, nil
	}

	var files []string
	for path, walkErr := range h.walker.WalkFiles(abs) {
		// A walk that fails partway would otherwise hash a truncated
		// file set and publish a wrong cache key.
		if walkErr != nil {
			err := zerr.With(domain.ErrResourceHashFailed, "path", abs)
			return nil, zerr.With(err, "cause", walkErr.Error())
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		files = append(files, filepath.ToSlash(rel))
	}
	return files, nil
}

func (h *Hasher) glob(root, abs string) ([]string, error) {
	matches, err := filepath.Glob(abs)
	if err != nil || len(matches) == 0 {
		return nil, zerr.With(domain.ErrResourceNotFound, "pattern", abs)
	}

	var files []string
	for _, match := range matches {
		rel, err := filepath.Rel(root, match)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", match)
		}
		// A glob may match directories as well as files.
		matched, err := h.resolveOne(root, rel)
		if err != nil {
			return nil, err
		}
		files = append(files, matched...)
	}
	return files, nil
}

// hashFileContent writes the file's XXHash to the outer hasher.
func (h *Hasher) hashFileContent(path string, out io.Writer) error {
	f, err := os.Open(path) //nolint:gosec // path comes from job resources
	if err != nil {
		if os.IsNotExist(err) {
			return zerr.With(domain.ErrResourceNotFound, "path", path)
		}
		return zerr.With(zerr.Wrap(err, "failed to open resource"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return zerr.With(domain.ErrResourceHashFailed, "path", path)
	}

	if err := binary.Write(out, binary.LittleEndian, hasher.Sum64()); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
