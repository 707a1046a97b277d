package filesystem

import (
	"io/fs"
)

// FileSystem is the file access the descriptor tooling needs. Tests swap in
// MockFileSystem.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error

	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)

	// WalkDir visits root and everything below it in lexical order
	WalkDir(root string, fn fs.WalkDirFunc) error
}
