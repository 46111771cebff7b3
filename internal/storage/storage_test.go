package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirBackend(t *testing.T) {
	backend, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}

	t.Run("write creates parent directories", func(t *testing.T) {
		if err := backend.Write("a/b/c.txt", []byte("data")); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(backend.Root(), "a", "b", "c.txt"))
		if err != nil {
			t.Fatalf("file missing on disk: %v", err)
		}
		if string(data) != "data" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("exists and read", func(t *testing.T) {
		if !backend.Exists("a/b/c.txt") {
			t.Error("expected file to exist")
		}
		if backend.Exists("nope.txt") {
			t.Error("expected file to be absent")
		}
		data, err := backend.Read("a/b/c.txt")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != "data" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("recursive delete removes subtree", func(t *testing.T) {
		if err := backend.Delete("a", true); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if backend.Exists("a/b/c.txt") {
			t.Error("subtree still present after recursive delete")
		}
	})

	t.Run("path escapes are rejected", func(t *testing.T) {
		if err := backend.Write("../outside.txt", []byte("x")); err == nil {
			t.Error("expected traversal to be rejected")
		}
		if _, err := backend.Read("../../etc/passwd"); err == nil {
			t.Error("expected traversal to be rejected")
		}
	})
}

func TestMemBackend(t *testing.T) {
	backend := NewMem()

	if err := backend.Write("x/y.txt", []byte("v")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !backend.Exists("x/y.txt") || !backend.Exists("x") {
		t.Error("expected file and implied directory to exist")
	}

	data, err := backend.Read("x/y.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	data[0] = 'Z' // must not leak into the store
	again, _ := backend.Read("x/y.txt")
	if string(again) != "v" {
		t.Errorf("read returned a live reference, got %q", again)
	}

	if err := backend.Delete("x", true); err != nil {
		t.Fatalf("recursive delete failed: %v", err)
	}
	if backend.Exists("x/y.txt") {
		t.Error("file survived recursive directory delete")
	}

	if err := backend.Delete("missing", false); err == nil {
		t.Error("expected delete of missing path to fail")
	}
}
