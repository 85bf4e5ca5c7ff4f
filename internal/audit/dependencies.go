package audit

import (
	"io"
	"io/fs"
)

// FileSystem provides every filesystem operation the audit pipeline performs.
type FileSystem interface {
	Getwd() (string, error)
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Open(path string) (io.ReadCloser, error)
}
