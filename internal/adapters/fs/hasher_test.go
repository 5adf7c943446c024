package fs_test

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func newHasher() *fs.Hasher {
	return fs.NewHasher(fs.NewWalker())
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestHashPaths_PatternOrderIndependent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/one.txt", "one")
	writeFile(t, root, "b/two.txt", "two")
	h := newHasher()

	forward, err := h.HashPaths(root, []string{"a/one.txt", "b/two.txt"})
	require.NoError(t, err)
	reverse, err := h.HashPaths(root, []string{"b/two.txt", "a/one.txt"})
	require.NoError(t, err)

	assert.Equal(t, forward, reverse)
	assert.Len(t, forward, 16)
}

func TestHashPaths_DeduplicatesMatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/one.txt", "one")
	h := newHasher()

	single, err := h.HashPaths(root, []string{"a/one.txt"})
	require.NoError(t, err)

	// The same file matched via a literal path and a glob counts once.
	doubled, err := h.HashPaths(root, []string{"a/one.txt", "a/*.txt"})
	require.NoError(t, err)

	assert.Equal(t, single, doubled)
}

func TestHashPaths_DirectoryWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/one.txt", "one")
	writeFile(t, root, "a/sub/two.txt", "two")
	writeFile(t, root, "a/.git/config", "ignored")
	h := newHasher()

	viaDir, err := h.HashPaths(root, []string{"a"})
	require.NoError(t, err)
	viaFiles, err := h.HashPaths(root, []string{"a/one.txt", "a/sub/two.txt"})
	require.NoError(t, err)

	assert.Equal(t, viaFiles, viaDir, "directory walk should skip VCS metadata")
}

func TestHashPaths_ContentSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/one.txt", "one")
	h := newHasher()

	before, err := h.HashPaths(root, []string{"a/one.txt"})
	require.NoError(t, err)

	writeFile(t, root, "a/one.txt", "changed")
	after, err := h.HashPaths(root, []string{"a/one.txt"})
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestHashPaths_PathSensitive(t *testing.T) {
	root1 := t.TempDir()
	writeFile(t, root1, "a/one.txt", "same content")
	root2 := t.TempDir()
	writeFile(t, root2, "a/renamed.txt", "same content")
	h := newHasher()

	h1, err := h.HashPaths(root1, []string{"a"})
	require.NoError(t, err)
	h2, err := h.HashPaths(root2, []string{"a"})
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "the relative path is part of the hash")
}

func TestHashPaths_MissingPattern(t *testing.T) {
	root := t.TempDir()
	h := newHasher()

	_, err := h.HashPaths(root, []string{"missing/*.json"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
}

func TestHashPaths_EmptySet(t *testing.T) {
	root := t.TempDir()
	h := newHasher()

	digest, err := h.HashPaths(root, nil)
	require.NoError(t, err)
	assert.Len(t, digest, 16)
}

// failingWalker yields one file and then fails, as a real walk does
// when a subdirectory cannot be read.
type failingWalker struct {
	file string
}

func (w *failingWalker) WalkFiles(string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !yield(w.file, nil) {
			return
		}
		yield("", errors.New("permission denied"))
	}
}

func TestHashPaths_AbortedWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/one.txt", "one")
	h := fs.NewHasher(&failingWalker{file: filepath.Join(root, "a/one.txt")})

	// A hash over the files seen before the failure must not escape.
	_, err := h.HashPaths(root, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceHashFailed))
}

func TestWalkFiles_SurfacesWalkErrors(t *testing.T) {
	w := fs.NewWalker()

	var walkErr error
	for _, err := range w.WalkFiles(filepath.Join(t.TempDir(), "missing")) {
		walkErr = err
	}
	require.Error(t, walkErr)
}
