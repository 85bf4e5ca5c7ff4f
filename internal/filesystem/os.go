// Package filesystem provides the operating system backed implementation of the
// narrow filesystem interfaces declared by the audit components.
package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// OSFileSystem implements the read-only filesystem operations used by projanitor.
type OSFileSystem struct{}

// Getwd returns the process working directory.
func (OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Stat retrieves file metadata, following symbolic links.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir lists directory entries sorted by name.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Open opens a file for reading.
func (OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
