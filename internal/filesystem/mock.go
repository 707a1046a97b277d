package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var _ FileSystem = (*MockFileSystem)(nil)

// MockFileSystem is an in-memory FileSystem for tests
type MockFileSystem struct {
	entries    map[string]*mockEntry
	currentDir string
}

type mockEntry struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

func (e *mockEntry) isDir() bool { return e.mode.IsDir() }

type mockFileInfo struct {
	name  string
	entry *mockEntry
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return int64(len(m.entry.content)) }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.entry.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.entry.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.entry.isDir() }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates an empty MockFileSystem rooted at /workspace
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		entries:    make(map[string]*mockEntry),
		currentDir: "/workspace",
	}
	mfs.AddDir(mfs.currentDir)
	return mfs
}

// AddFile adds a file, creating missing parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	clean := filepath.Clean(path)
	mfs.addParents(clean)
	mfs.entries[clean] = &mockEntry{content: content, mode: 0644, modTime: time.Now()}
}

// AddDir adds a directory and its parents
func (mfs *MockFileSystem) AddDir(path string) {
	clean := filepath.Clean(path)
	mfs.addParents(clean)
	if _, ok := mfs.entries[clean]; !ok {
		mfs.entries[clean] = &mockEntry{mode: 0755 | fs.ModeDir, modTime: time.Now()}
	}
}

func (mfs *MockFileSystem) addParents(clean string) {
	for dir := filepath.Dir(clean); dir != "." && dir != clean; dir = filepath.Dir(dir) {
		if _, ok := mfs.entries[dir]; !ok {
			mfs.entries[dir] = &mockEntry{mode: 0755 | fs.ModeDir, modTime: time.Now()}
		}
		if dir == "/" {
			break
		}
	}
}

// SetCurrentDir sets the working directory returned by Getwd
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.AddDir(dir)
	mfs.currentDir = filepath.Clean(dir)
}

// Content returns the content of a file, or "" if it does not exist
func (mfs *MockFileSystem) Content(path string) string {
	entry, ok := mfs.entries[filepath.Clean(path)]
	if !ok || entry.isDir() {
		return ""
	}
	return string(entry.content)
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	entry, ok := mfs.entries[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if entry.isDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return append([]byte(nil), entry.content...), nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	clean := filepath.Clean(path)
	if parent, ok := mfs.entries[filepath.Dir(clean)]; !ok || !parent.isDir() {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if existing, ok := mfs.entries[clean]; ok && existing.isDir() {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	mfs.entries[clean] = &mockEntry{content: append([]byte(nil), data...), mode: perm, modTime: time.Now()}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	clean := filepath.Clean(path)
	if existing, ok := mfs.entries[clean]; ok && !existing.isDir() {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}
	mfs.AddDir(clean)
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	clean := filepath.Clean(path)
	entry, ok := mfs.entries[clean]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &mockFileInfo{name: filepath.Base(clean), entry: entry}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, ok := mfs.entries[filepath.Clean(path)]
	return ok
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)
	if _, ok := mfs.entries[cleanRoot]; !ok {
		return fn(cleanRoot, nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist})
	}

	var paths []string
	for p := range mfs.entries {
		if p == cleanRoot || strings.HasPrefix(p, strings.TrimSuffix(cleanRoot, "/")+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		if underAny(p, skipped) {
			continue
		}

		entry := mfs.entries[p]
		info := &mockFileInfo{name: filepath.Base(p), entry: entry}
		err := fn(p, fs.FileInfoToDirEntry(info), nil)
		switch {
		case err == nil:
		case errors.Is(err, fs.SkipDir) && entry.isDir():
			skipped = append(skipped, p)
		case errors.Is(err, fs.SkipDir):
			skipped = append(skipped, filepath.Dir(p))
		case errors.Is(err, fs.SkipAll):
			return nil
		default:
			return err
		}
	}

	return nil
}

func underAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}
