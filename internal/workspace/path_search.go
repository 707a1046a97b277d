package workspace

import (
	"path/filepath"

	"github.com/jakoblorz/go-descriptor/internal/descriptor"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
)

func findFileUp(fs filesystem.FileSystem, startDir, filename string) (string, bool) {
	dir := filepath.Clean(startDir)

	for {
		candidate := filepath.Join(dir, filename)
		if fs.Exists(candidate) {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// findDescriptorUp is findFileUp over every default descriptor name; names
// are tried in order within a directory before moving up.
func findDescriptorUp(fs filesystem.FileSystem, startDir string) (string, bool) {
	dir := filepath.Clean(startDir)

	for {
		if candidate, ok := descriptorIn(fs, dir); ok {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func descriptorIn(fs filesystem.FileSystem, dir string) (string, bool) {
	for _, name := range descriptor.DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
