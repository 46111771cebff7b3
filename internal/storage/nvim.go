package storage

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"
)

// Nvim is a Backend that writes files through Neovim buffers, so generated
// content shows up in the editor with its buffers in sync with disk. Reads
// and existence checks go through the real files the buffers are backed by.
type Nvim struct {
	dir           *Dir
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

// NewNvim connects to a running Neovim instance via NVIM_LISTEN_ADDRESS, or
// starts a temporary headless one, and anchors all paths under root.
func NewNvim(root string) (*Nvim, error) {
	dir, err := NewDir(root)
	if err != nil {
		return nil, err
	}

	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			return &Nvim{dir: dir, nvim: v}, nil
		}
	}

	tmpDir, err := os.MkdirTemp("", "genapp-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	m := &Nvim{
		dir:           dir,
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
	}
	m.configureTempInstance()
	return m, nil
}

// configureTempInstance disables swap files on the throwaway instance.
func (n *Nvim) configureTempInstance() {
	b := n.nvim.NewBatch()
	b.Command("set noswapfile")
	b.Command("set hidden")
	if err := b.Execute(); err != nil {
		// Non-fatal; the instance still works without these options.
	}
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (n *Nvim) Close() {
	if n.nvim != nil {
		n.nvim.Close()
	}
	if n.isSelfStarted && n.cmd != nil && n.cmd.Process != nil {
		if err := n.cmd.Process.Kill(); err == nil {
			n.cmd.Wait()
			os.RemoveAll(filepath.Dir(n.socketPath))
		}
	}
}

// Root returns the absolute project root.
func (n *Nvim) Root() string { return n.dir.Root() }

func (n *Nvim) Exists(path string) bool { return n.dir.Exists(path) }

func (n *Nvim) Read(path string) ([]byte, error) { return n.dir.Read(path) }

// Write loads the file into a buffer, replaces its lines, and writes it out.
func (n *Nvim) Write(path string, data []byte) error {
	abs, err := n.dir.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	byteContent := make([][]byte, len(lines))
	for i, s := range lines {
		byteContent[i] = []byte(s)
	}

	b := n.nvim.NewBatch()
	b.Command(fmt.Sprintf("edit! %s", abs))
	b.SetBufferLines(0, 0, -1, true, byteContent)
	b.Command("write!")
	if err := b.Execute(); err != nil {
		return fmt.Errorf("nvim write %s: %w", path, err)
	}
	return nil
}

// Delete drops any buffer holding the file, then removes it from disk.
func (n *Nvim) Delete(path string, recursive bool) error {
	abs, err := n.dir.abs(path)
	if err != nil {
		return err
	}
	// Ignore failures here: the buffer may simply not be loaded.
	n.nvim.Command(fmt.Sprintf("silent! bwipeout! %s", abs))
	return n.dir.Delete(path, recursive)
}

func (n *Nvim) MkdirAll(path string) error { return n.dir.MkdirAll(path) }
