package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTemplate seeds a timeline file that does not exist yet.
const DefaultTemplate = "# Timeline\n\n## Today\n\n- [ ] Your first task\n  - [start:: 9:00] [end:: 10:00]\n- [ ] Another task with [due:: tomorrow]\n"

// FileStore is the persistence contract for the timeline text file.
type FileStore interface {
	Read(path string) (string, error)
	Write(path, text string) error
	Exists(path string) bool
	Watch(ctx context.Context, path string) (<-chan Event, error)
}

// Disk is a FileStore backed by the local filesystem.
type Disk struct{}

// NewDisk returns a FileStore on the local filesystem.
func NewDisk() *Disk {
	return &Disk{}
}

func (Disk) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("store: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the file through a temporary sibling and a rename so a
// reader never sees a half-written timeline.
func (Disk) Write(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: ensure directory: %w", err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := os.Chmod(name, mode); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}

func (Disk) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, os.ErrNotExist)
	}
	return !info.IsDir()
}

func (Disk) Watch(ctx context.Context, path string) (<-chan Event, error) {
	return WatchFile(ctx, path)
}
