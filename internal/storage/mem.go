package storage

import (
	"os"
	"path"
	"strings"
	"sync"
)

// Mem is an in-memory Backend. It exists for tests and dry runs.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMem creates an empty in-memory backend.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

func norm(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func (m *Mem) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	if _, ok := m.files[p]; ok {
		return true
	}
	_, ok := m.dirs[p]
	return ok
}

func (m *Mem) Read(p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[norm(p)]
	if !ok {
		return nil, os.ErrNotExist
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *Mem) Write(p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	cp := make([]byte, len(data))
	copy(cp, data)
	m.files[p] = cp
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = struct{}{}
	}
	return nil
}

func (m *Mem) Delete(p string, recursive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = norm(p)
	if _, ok := m.files[p]; ok {
		delete(m.files, p)
		return nil
	}
	if _, ok := m.dirs[p]; ok {
		if !recursive {
			return os.ErrInvalid
		}
		delete(m.dirs, p)
		prefix := p + "/"
		for f := range m.files {
			if strings.HasPrefix(f, prefix) {
				delete(m.files, f)
			}
		}
		for d := range m.dirs {
			if strings.HasPrefix(d, prefix) {
				delete(m.dirs, d)
			}
		}
		return nil
	}
	return os.ErrNotExist
}

func (m *Mem) MkdirAll(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for dir := norm(p); dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		m.dirs[dir] = struct{}{}
	}
	return nil
}

// Files returns a copy of the stored file map, keyed by normalized path.
func (m *Mem) Files() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.files))
	for p, data := range m.files {
		cp := make([]byte, len(data))
		copy(cp, data)
		out[p] = cp
	}
	return out
}
