// Package ports defines the core interfaces for the application.
package ports

// PathHasher computes a single stable content hash over a set of file
// patterns. Implementations must canonicalize the resolved file set
// (sort by path) so the hash does not depend on pattern order.
type PathHasher interface {
	// HashPaths resolves each pattern (literal path, glob or
	// directory) under root and returns a hex hash covering the
	// relative path and content of every matched file.
	//
	// A pattern that matches nothing is a configuration error.
	HashPaths(root string, patterns []string) (string, error)
}
