// Package storage abstracts the file store the generator writes into, so the
// same core logic can target a plain directory or a live editor instance.
package storage

// Backend is the storage surface consumed by the mutator and the undo log.
// Paths are project-relative; implementations anchor them to their own root.
type Backend interface {
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Read returns the current bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write stores data at path, replacing any existing content.
	Write(path string, data []byte) error
	// Delete removes the file at path. With recursive set, a directory
	// subtree is removed as well.
	Delete(path string, recursive bool) error
	// MkdirAll creates the directory at path, including parents. It is a
	// no-op if the directory already exists.
	MkdirAll(path string) error
}
