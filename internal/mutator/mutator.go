// Package mutator performs file mutations against a storage backend and
// records each successful one in the undo log.
package mutator

import (
	"errors"
	"fmt"
	"path"

	"github.com/sokinpui/genapp/internal/history"
	"github.com/sokinpui/genapp/internal/storage"
)

// ErrAlreadyExists reports a create against an existing path.
var ErrAlreadyExists = errors.New("file already exists")

// ErrNotFound reports an update or delete against a missing path.
var ErrNotFound = errors.New("file not found")

// Mutator applies create/update/delete operations. Every successful mutation
// records exactly one history entry; that one-to-one mapping is what makes
// undo reliable.
type Mutator struct {
	backend storage.Backend
	log     *history.Log
}

// New creates a mutator writing through backend and logging into log.
func New(backend storage.Backend, log *history.Log) *Mutator {
	return &Mutator{backend: backend, log: log}
}

// Create writes a new file. It fails with ErrAlreadyExists when the path is
// taken; the existence probe races with the write by design.
func (m *Mutator) Create(filePath, content string) error {
	if m.backend.Exists(filePath) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, filePath)
	}
	if dir := path.Dir(filePath); dir != "." && dir != "/" {
		if err := m.backend.MkdirAll(dir); err != nil {
			return fmt.Errorf("create parent of %s: %w", filePath, err)
		}
	}
	if err := m.backend.Write(filePath, []byte(content)); err != nil {
		return fmt.Errorf("create %s: %w", filePath, err)
	}
	m.log.Record(history.Op{Kind: history.KindCreate, Path: filePath})
	return nil
}

// Update overwrites an existing file, snapshotting its prior bytes for undo.
func (m *Mutator) Update(filePath, content string) error {
	if !m.backend.Exists(filePath) {
		return fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}
	prior, err := m.backend.Read(filePath)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", filePath, err)
	}
	if err := m.backend.Write(filePath, []byte(content)); err != nil {
		return fmt.Errorf("update %s: %w", filePath, err)
	}
	m.log.Record(history.Op{Kind: history.KindUpdate, Path: filePath, Prior: prior})
	return nil
}

// Delete removes an existing file, snapshotting its bytes for undo.
func (m *Mutator) Delete(filePath string) error {
	if !m.backend.Exists(filePath) {
		return fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}
	prior, err := m.backend.Read(filePath)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", filePath, err)
	}
	if err := m.backend.Delete(filePath, false); err != nil {
		return fmt.Errorf("delete %s: %w", filePath, err)
	}
	m.log.Record(history.Op{Kind: history.KindDelete, Path: filePath, Prior: prior})
	return nil
}

// EnsureDir creates a directory if it does not exist yet. It is idempotent
// and records no history entry.
func (m *Mutator) EnsureDir(dirPath string) error {
	if err := m.backend.MkdirAll(dirPath); err != nil {
		return fmt.Errorf("ensure directory %s: %w", dirPath, err)
	}
	return nil
}
