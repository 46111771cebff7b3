package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a Backend rooted at a directory on the local filesystem.
type Dir struct {
	root string
}

// NewDir creates a directory-rooted backend. The directory is created if it
// does not exist yet.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create root %q: %w", abs, err)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute root directory.
func (d *Dir) Root() string { return d.root }

// abs anchors a project-relative path under the root, rejecting escapes.
func (d *Dir) abs(path string) (string, error) {
	path = filepath.FromSlash(strings.TrimPrefix(path, "/"))
	joined := filepath.Join(d.root, path)
	if joined != d.root && !strings.HasPrefix(joined, d.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes project root", path)
	}
	return joined, nil
}

func (d *Dir) Exists(path string) bool {
	abs, err := d.abs(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

func (d *Dir) Read(path string) ([]byte, error) {
	abs, err := d.abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (d *Dir) Write(path string, data []byte) error {
	abs, err := d.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	return os.WriteFile(abs, data, 0644)
}

func (d *Dir) Delete(path string, recursive bool) error {
	abs, err := d.abs(path)
	if err != nil {
		return err
	}
	if recursive {
		if _, err := os.Stat(abs); err != nil {
			return err
		}
		return os.RemoveAll(abs)
	}
	return os.Remove(abs)
}

func (d *Dir) MkdirAll(path string) error {
	abs, err := d.abs(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(abs, 0755)
}
