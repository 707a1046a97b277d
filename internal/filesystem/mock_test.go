package filesystem

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_AddFileCreatesParents(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/workspace/apps/api/descriptor.toml", []byte("x"))

	require.True(t, mfs.Exists("/workspace/apps"))
	require.True(t, mfs.Exists("/workspace/apps/api"))

	info, err := mfs.Stat("/workspace/apps/api")
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestMockFileSystem_WriteFileRequiresParent(t *testing.T) {
	mfs := NewMockFileSystem()

	err := mfs.WriteFile("/workspace/missing/descriptor.toml", []byte("x"), 0644)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, mfs.MkdirAll("/workspace/missing", 0755))
	require.NoError(t, mfs.WriteFile("/workspace/missing/descriptor.toml", []byte("x"), 0644))
	require.Equal(t, "x", mfs.Content("/workspace/missing/descriptor.toml"))
}

func TestMockFileSystem_ReadFile(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/workspace/a.txt", []byte("hello"))

	data, err := mfs.ReadFile("/workspace/a.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	_, err = mfs.ReadFile("/workspace/b.txt")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = mfs.ReadFile("/workspace")
	require.Error(t, err)
}

func TestMockFileSystem_WalkDirSkipsDirectories(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/workspace/a/descriptor.toml", nil)
	mfs.AddFile("/workspace/build/out/descriptor.toml", nil)
	mfs.AddFile("/workspace/z.txt", nil)

	var visited []string
	err := mfs.WalkDir("/workspace", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() && filepath.Base(path) == "build" {
			return fs.SkipDir
		}
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"/workspace",
		"/workspace/a",
		"/workspace/a/descriptor.toml",
		"/workspace/z.txt",
	}, visited)
}
