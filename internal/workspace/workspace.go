package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-descriptor/internal/descriptor"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
)

// ErrNoDescriptor is returned when no descriptor file can be found
var ErrNoDescriptor = errors.New("no descriptor found")

// Workspace locates descriptor files. RootPath is the repository root (the
// nearest directory holding .git) or, outside a repository, the directory of
// the detected descriptor.
type Workspace struct {
	fs             filesystem.FileSystem
	RootPath       string
	DescriptorPath string
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem) *Workspace {
	return &Workspace{fs: fs}
}

// Detect finds the nearest descriptor from the current directory upward.
func (w *Workspace) Detect() error {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	path, found := findDescriptorUp(w.fs, cwd)
	if !found {
		return fmt.Errorf("%w in %s or any parent directory (looked for %s)",
			ErrNoDescriptor, cwd, strings.Join(descriptor.DefaultFileNames, ", "))
	}

	w.DescriptorPath = path
	w.RootPath = w.findRoot(filepath.Dir(path))
	return nil
}

// Resolve turns a user supplied path into a descriptor file. Relative paths
// are taken from the working directory, directories are searched for a
// default descriptor file and an empty path falls back to Detect.
func (w *Workspace) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		if err := w.Detect(); err != nil {
			return "", err
		}
		return w.DescriptorPath, nil
	}

	if !filepath.IsAbs(path) {
		cwd, err := w.fs.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)

	info, err := w.fs.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	if candidate, ok := descriptorIn(w.fs, path); ok {
		return candidate, nil
	}
	return "", fmt.Errorf("%w in %s", ErrNoDescriptor, path)
}

// Descriptors returns every descriptor file below RootPath, skipping .git and
// anything the root .gitignore excludes. Detect must run first.
func (w *Workspace) Descriptors() ([]string, error) {
	if w.RootPath == "" {
		return nil, fmt.Errorf("workspace root not set, run Detect first")
	}

	ignore, err := w.loadRootGitIgnore()
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(descriptor.DefaultFileNames))
	for _, name := range descriptor.DefaultFileNames {
		names[name] = struct{}{}
	}

	var paths []string
	err = w.fs.WalkDir(w.RootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == w.RootPath {
			return nil
		}

		if entry.IsDir() && entry.Name() == ".git" {
			return filepath.SkipDir
		}

		rel, relErr := filepath.Rel(w.RootPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if ignore != nil {
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() {
			return nil
		}
		if _, ok := names[entry.Name()]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace: %w", err)
	}

	return paths, nil
}

// Rel returns path relative to the workspace root, for display
func (w *Workspace) Rel(path string) string {
	if w.RootPath == "" {
		return path
	}
	rel, err := filepath.Rel(w.RootPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (w *Workspace) findRoot(start string) string {
	if gitDir, found := findFileUp(w.fs, start, ".git"); found {
		return filepath.Dir(gitDir)
	}
	return start
}

func (w *Workspace) loadRootGitIgnore() (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(w.RootPath, ".gitignore")
	if !w.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), w.RootPath, nil), nil
}
