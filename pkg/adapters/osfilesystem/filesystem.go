// Package osfilesystem provides a filesystem implementation backed by afero.
// New uses the operating system; NewMemory keeps everything in memory.
package osfilesystem

import (
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/user/vidplay/pkg/ports"
)

// FileSystem implements ports.FileSystem on top of an afero.Fs.
type FileSystem struct {
	fs afero.Fs
}

// New creates a FileSystem on the operating system's filesystem.
func New() *FileSystem {
	return &FileSystem{fs: afero.NewOsFs()}
}

// NewMemory creates a volatile in-memory FileSystem.
func NewMemory() *FileSystem {
	return &FileSystem{fs: afero.NewMemMapFs()}
}

// NewWithFs wraps an existing afero.Fs.
func NewWithFs(fs afero.Fs) *FileSystem {
	return &FileSystem{fs: fs}
}

// Open opens a file for reading.
func (f *FileSystem) Open(path string) (ports.File, error) {
	return f.fs.Open(path)
}

// Create creates or truncates a file, creating parent directories as needed.
func (f *FileSystem) Create(path string) (io.WriteCloser, error) {
	if err := f.mkdirParent(path); err != nil {
		return nil, err
	}
	return f.fs.Create(path)
}

// ReadFile reads the entire contents of a file.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, path)
}

// WriteFile writes data to a file, creating it if necessary.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if err := f.mkdirParent(path); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, path, data, 0644)
}

// MkdirAll creates a directory and all parent directories.
func (f *FileSystem) MkdirAll(path string) error {
	return f.fs.MkdirAll(path, 0755)
}

// Exists checks if a file or directory exists.
func (f *FileSystem) Exists(path string) (bool, error) {
	return afero.Exists(f.fs, path)
}

// Remove deletes a file or empty directory.
func (f *FileSystem) Remove(path string) error {
	return f.fs.Remove(path)
}

func (f *FileSystem) mkdirParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return f.fs.MkdirAll(dir, 0755)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
