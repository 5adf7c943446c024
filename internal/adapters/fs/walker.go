// Package fs provides the file system adapter used for resource
// hashing.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// FileWalker yields the files under a directory tree.
type FileWalker interface {
	WalkFiles(root string) iter.Seq2[string, error]
}

// Walker implements FileWalker over the local file system.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file under root, skipping VCS
// metadata directories. Paths are yielded as returned by
// filepath.WalkDir, i.e. prefixed with root. A walk failure is
// yielded as a final ("", err) pair and ends the sequence; callers
// must not treat the files seen so far as the complete set.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield("", err)
				return filepath.SkipAll
			}
			if d.IsDir() {
				if name := d.Name(); name == ".git" || name == ".hg" {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
