package workspace

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
)

func TestWorkspaceDetect_DescriptorInCurrentDir(t *testing.T) {
	fs := NewWorkspaceBuilder("/repo").
		AddProject(".", "org.example", "1.0.0").
		Build()

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.DescriptorPath != "/repo/descriptor.toml" {
		t.Fatalf("unexpected descriptor path: %s", ws.DescriptorPath)
	}
	if ws.RootPath != "/repo" {
		t.Fatalf("unexpected root path: %s", ws.RootPath)
	}
}

func TestWorkspaceDetect_WalksUpward(t *testing.T) {
	fs := NewWorkspaceBuilder("/repo").
		AddProject("services/api", "org.example.api", "1.0.0").
		InDir("services/api/src/main/java").
		Build()

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.DescriptorPath != "/repo/services/api/descriptor.toml" {
		t.Fatalf("unexpected descriptor path: %s", ws.DescriptorPath)
	}
	if ws.RootPath != "/repo" {
		t.Fatalf("expected root at the git directory, got %s", ws.RootPath)
	}
}

func TestWorkspaceDetect_PrefersDefaultNameOrder(t *testing.T) {
	fs := NewWorkspaceBuilder("/repo").
		AddDescriptor("DESCRIPTOR.md", "---\n---\n").
		AddDescriptor("descriptor.yaml", "project: {}\n").
		Build()

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.DescriptorPath != "/repo/descriptor.yaml" {
		t.Fatalf("expected descriptor.yaml to win, got %s", ws.DescriptorPath)
	}
}

func TestWorkspaceDetect_OutsideRepository(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/descriptor.json", []byte("{}"))

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.RootPath != "/workspace" {
		t.Fatalf("expected descriptor directory as root, got %s", ws.RootPath)
	}
}

func TestWorkspaceDetect_NotFound(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	ws := New(fs)
	err := ws.Detect()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrNoDescriptor) {
		t.Fatalf("expected ErrNoDescriptor, got: %v", err)
	}
}

func TestWorkspaceResolve(t *testing.T) {
	fs := NewWorkspaceBuilder("/repo").
		AddProject(".", "org.example", "1.0.0").
		AddProject("lib", "org.example.lib", "1.0.0").
		AddDescriptor("custom/build.yaml", "project: {}\n").
		Build()
	fs.AddDir("/repo/empty")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "empty path detects", path: "", want: "/repo/descriptor.toml"},
		{name: "relative directory", path: "lib", want: "/repo/lib/descriptor.toml"},
		{name: "explicit file", path: "custom/build.yaml", want: "/repo/custom/build.yaml"},
		{name: "absolute file", path: "/repo/lib/descriptor.toml", want: "/repo/lib/descriptor.toml"},
		{name: "directory without descriptor", path: "empty", wantErr: true},
		{name: "missing path", path: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(fs).Resolve(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Resolve() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWorkspaceDescriptors(t *testing.T) {
	fs := NewWorkspaceBuilder("/repo").
		AddProject(".", "org.example", "1.0.0").
		AddProject("apps/api", "org.example.api", "1.0.0").
		AddDescriptor("apps/web/DESCRIPTOR.md", "---\n---\n").
		AddProject("build/generated", "org.example.gen", "1.0.0").
		AddDescriptor("apps/api/notes.toml", "").
		AddGitIgnore("build/\n").
		Build()
	fs.AddFile("/repo/.git/descriptor.toml", []byte(""))

	ws := New(fs)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	got, err := ws.Descriptors()
	if err != nil {
		t.Fatalf("Descriptors() error = %v", err)
	}

	want := []string{
		"/repo/apps/api/descriptor.toml",
		"/repo/apps/web/DESCRIPTOR.md",
		"/repo/descriptor.toml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Descriptors() = %v, want %v", got, want)
	}
}

func TestWorkspaceDescriptors_RequiresDetect(t *testing.T) {
	ws := New(filesystem.NewMockFileSystem())
	if _, err := ws.Descriptors(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWorkspaceRel(t *testing.T) {
	ws := &Workspace{RootPath: "/repo"}

	if got := ws.Rel("/repo/apps/api/descriptor.toml"); got != "apps/api/descriptor.toml" {
		t.Fatalf("unexpected rel path: %s", got)
	}
	if got := ws.Rel("/elsewhere/descriptor.toml"); got != "/elsewhere/descriptor.toml" {
		t.Fatalf("paths outside the root stay absolute, got %s", got)
	}
}
