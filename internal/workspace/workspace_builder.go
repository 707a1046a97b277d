package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder rooted at a git repository
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.AddDir(filepath.Join(root, ".git"))
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// AddProject writes a minimal valid TOML descriptor into path
func (wb *WorkspaceBuilder) AddProject(path, group, version string) *WorkspaceBuilder {
	content := fmt.Sprintf("[project]\ngroup = %q\nversion = %q\n\n[toolchain]\nversion = 17\n", group, version)
	return wb.AddDescriptor(filepath.Join(path, "descriptor.toml"), content)
}

// AddDescriptor writes a descriptor file with arbitrary content. path is
// relative to the workspace root.
func (wb *WorkspaceBuilder) AddDescriptor(path, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, path), []byte(content))
	return wb
}

// AddGitIgnore sets the root .gitignore
func (wb *WorkspaceBuilder) AddGitIgnore(content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, ".gitignore"), []byte(content))
	return wb
}

// InDir sets the working directory relative to the root
func (wb *WorkspaceBuilder) InDir(path string) *WorkspaceBuilder {
	dir := filepath.Join(wb.root, path)
	wb.fs.AddDir(dir)
	wb.fs.SetCurrentDir(dir)
	return wb
}

// Build finalizes the workspace and returns the filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	return wb.fs
}

// FileSystem returns the mock filesystem
func (wb *WorkspaceBuilder) FileSystem() *filesystem.MockFileSystem {
	return wb.fs
}
