package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/go-descriptor/internal/config"
	"github.com/jakoblorz/go-descriptor/internal/descriptor"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/jakoblorz/go-descriptor/internal/workspace"
	"github.com/stretchr/testify/require"
)

const testWorkspaceRoot = "/test-workspace"

const exampleDescriptor = `repositories = ["maven-central"]
plugins = ["java"]

[project]
group = "org.example"
version = "1.0-SNAPSHOT"

[toolchain]
version = 11

[[dependency.compile]]
coordinate = "com.fasterxml.jackson.core:jackson-core:2.15.2"

[[dependency.compile]]
coordinate = "com.fasterxml.jackson.core:jackson-databind:2.15.2"

[[dependency.test]]
coordinate = "org.junit:junit-bom:5.10.0"
kind = "platform"

[[dependency.test]]
coordinate = "org.junit.jupiter:junit-jupiter"

[test]
platform = "junit-platform"
`

func buildWorkspace(t *testing.T, setup func(*workspace.WorkspaceBuilder)) *filesystem.MockFileSystem {
	t.Helper()

	wb := workspace.NewWorkspaceBuilder(testWorkspaceRoot)
	if setup != nil {
		setup(wb)
	}

	return wb.Build()
}

func exampleWorkspace(t *testing.T) *filesystem.MockFileSystem {
	return buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddDescriptor("descriptor.toml", exampleDescriptor)
	})
}

func runCommand(t *testing.T, fs filesystem.FileSystem, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(fs)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_Valid(t *testing.T) {
	fs := exampleWorkspace(t)

	out, err := runCommand(t, fs, "validate")
	require.NoError(t, err)
	require.Contains(t, out, "/test-workspace/descriptor.toml")
	require.Contains(t, out, "org.example:1.0-SNAPSHOT, 4 dependencies, tests on junit-platform")
}

func TestValidate_MissingToolchain(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddDescriptor("descriptor.toml", "[project]\ngroup = \"g\"\nversion = \"1\"\n")
	})

	_, err := runCommand(t, fs, "validate")

	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "toolchain.version", cfgErr.Field)
}

func TestValidate_All(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddDescriptor("descriptor.toml", exampleDescriptor)
		wb.AddProject("services/api", "org.example.api", "2.0.0")
		wb.AddDescriptor("services/broken/descriptor.yaml", "project:\n  group: org.example\n  version: 1.0.0\n")
		wb.AddProject("out/copy", "org.example.copy", "1.0.0")
		wb.AddGitIgnore("out/\n")
	})

	out, err := runCommand(t, fs, "validate", "--all")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 3 descriptors are invalid")
	require.Contains(t, out, "services/api/descriptor.toml")
	require.Contains(t, out, "services/broken/descriptor.yaml")
	require.Contains(t, out, "toolchain.version")
	require.NotContains(t, out, "out/copy")
}

func TestValidate_AllRejectsPath(t *testing.T) {
	_, err := runCommand(t, exampleWorkspace(t), "validate", "--all", "descriptor.toml")
	require.Error(t, err)
}

func TestShow_JSON(t *testing.T) {
	out, err := runCommand(t, exampleWorkspace(t), "show", "--format", "json")
	require.NoError(t, err)

	var shown ShowOutput
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Equal(t, "org.example", shown.Project.Group)
	require.True(t, shown.Project.Snapshot)
	require.Equal(t, 11, shown.Project.Toolchain)
	require.Len(t, shown.Dependencies["compile"], 2)
	require.Len(t, shown.Dependencies["test"], 2)
	require.Equal(t, "5.10.0", shown.Dependencies["test"][1].Version)
	require.Equal(t, "org.junit:junit-bom", shown.Dependencies["test"][1].ManagedBy)
	require.Equal(t, "junit-platform", shown.TestPlatform)
}

func TestShow_Text(t *testing.T) {
	out, err := runCommand(t, exampleWorkspace(t), "show")
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestShow_UnknownFormat(t *testing.T) {
	_, err := runCommand(t, exampleWorkspace(t), "show", "--format", "xml")
	require.Error(t, err)
}

func TestDeps(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all declared",
			args: []string{"deps"},
			want: "compile  com.fasterxml.jackson.core:jackson-core:2.15.2\n" +
				"compile  com.fasterxml.jackson.core:jackson-databind:2.15.2\n" +
				"test     org.junit:junit-bom:5.10.0\n" +
				"test     org.junit.jupiter:junit-jupiter:5.10.0\n",
		},
		{
			name: "one scope",
			args: []string{"deps", "--scope", "test"},
			want: "org.junit:junit-bom:5.10.0\norg.junit.jupiter:junit-jupiter:5.10.0\n",
		},
		{
			name: "test classpath",
			args: []string{"deps", "--scope", "test", "--classpath"},
			want: "com.fasterxml.jackson.core:jackson-core:2.15.2\n" +
				"com.fasterxml.jackson.core:jackson-databind:2.15.2\n" +
				"org.junit.jupiter:junit-jupiter:5.10.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, exampleWorkspace(t), tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestDeps_InvalidFlags(t *testing.T) {
	_, err := runCommand(t, exampleWorkspace(t), "deps", "--classpath")
	require.Error(t, err)

	_, err = runCommand(t, exampleWorkspace(t), "deps", "--scope", "runtime")
	require.Error(t, err)
}

func TestAdd(t *testing.T) {
	fs := exampleWorkspace(t)

	out, err := runCommand(t, fs, "add", "org.junit.jupiter:junit-jupiter-params", "--scope", "test")
	require.NoError(t, err)
	require.Contains(t, out, "org.junit.jupiter:junit-jupiter-params:5.10.0")

	d, err := descriptor.NewStore(fs).Load(testWorkspaceRoot + "/descriptor.toml")
	require.NoError(t, err)
	require.Len(t, d.Dependencies.Test(), 3)
}

func TestAdd_LogsAddedDependency(t *testing.T) {
	fs := exampleWorkspace(t)

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(fs)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"add", "org.slf4j:slf4j-api:2.0.9", "--log-level", "info", "--log-json"})
	require.NoError(t, cmd.Execute())

	require.Contains(t, errOut.String(), `"message":"dependency added"`)
	require.Contains(t, errOut.String(), `"coordinate":"org.slf4j:slf4j-api:2.0.9"`)
}

func TestValidate_AllLogsInvalidDescriptors(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddDescriptor("descriptor.toml", exampleDescriptor)
		wb.AddDescriptor("broken/descriptor.toml", "[project]\ngroup = \"org.example\"\n")
	})

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(fs)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"validate", "--all", "--log-level", "debug", "--log-json"})
	require.Error(t, cmd.Execute())

	require.Contains(t, errOut.String(), `"message":"descriptor is invalid"`)
	require.Contains(t, errOut.String(), `"stack"`)
}

func TestAdd_ToExplicitFile(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddDescriptor("descriptor.toml", exampleDescriptor)
		wb.AddProject("lib", "org.example.lib", "1.0.0")
	})

	_, err := runCommand(t, fs, "add", "org.slf4j:slf4j-api:2.0.9", "--file", "lib")
	require.NoError(t, err)
	require.Contains(t, fs.Content(testWorkspaceRoot+"/lib/descriptor.toml"), "slf4j-api")
	require.NotContains(t, fs.Content(testWorkspaceRoot+"/descriptor.toml"), "slf4j-api")
}

func TestAdd_ConflictLeavesFileUntouched(t *testing.T) {
	fs := exampleWorkspace(t)

	_, err := runCommand(t, fs, "add", "com.fasterxml.jackson.core:jackson-core:2.16.0")

	var dupErr *models.DuplicateDependencyError
	require.True(t, errors.As(err, &dupErr))
	require.Equal(t, exampleDescriptor, fs.Content(testWorkspaceRoot+"/descriptor.toml"))
}

func TestInit(t *testing.T) {
	fs := buildWorkspace(t, nil)

	out, err := runCommand(t, fs, "init", "--group", "com.acme", "--junit")
	require.NoError(t, err)
	require.Contains(t, out, "/test-workspace/descriptor.toml")

	d, err := descriptor.NewStore(fs).Load(testWorkspaceRoot + "/descriptor.toml")
	require.NoError(t, err)
	require.Equal(t, "com.acme", d.Project.Group())
	require.Equal(t, "0.1.0-SNAPSHOT", d.Project.Version())
	require.Equal(t, defaultToolchain, d.Project.Toolchain())
	require.Equal(t, []string{"java"}, d.Plugins)
	require.Equal(t, models.EngineJUnitPlatform, d.Dependencies.TestPlatform())

	_, err = runCommand(t, fs, "init")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestInit_FormatAndForce(t *testing.T) {
	fs := exampleWorkspace(t)

	_, err := runCommand(t, fs, "init", "--format", "yaml", "--toolchain", "21", "--force")
	require.NoError(t, err)

	d, err := descriptor.NewStore(fs).Load(testWorkspaceRoot + "/descriptor.yaml")
	require.NoError(t, err)
	require.Equal(t, 21, d.Project.Toolchain())
	require.Equal(t, "org.example", d.Project.Group())
}

func TestInit_InvalidFlags(t *testing.T) {
	_, err := runCommand(t, buildWorkspace(t, nil), "init", "--format", "xml")
	require.Error(t, err)

	_, err = runCommand(t, buildWorkspace(t, nil), "init", "--toolchain", "-1")
	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestExport_GradleToFile(t *testing.T) {
	fs := exampleWorkspace(t)

	out, err := runCommand(t, fs, "export", "--out", "build.gradle.kts")
	require.NoError(t, err)
	require.Contains(t, out, "/test-workspace/build.gradle.kts")

	script := fs.Content(testWorkspaceRoot + "/build.gradle.kts")
	require.Contains(t, script, `testImplementation(platform("org.junit:junit-bom:5.10.0"))`)
	require.Contains(t, script, `testImplementation("org.junit.jupiter:junit-jupiter")`)
	require.Contains(t, script, "useJUnitPlatform()")
}

func TestExport_CustomTemplate(t *testing.T) {
	fs := exampleWorkspace(t)
	fs.AddFile(testWorkspaceRoot+"/ci/coords.tmpl", []byte(`{{ range .Test }}{{ .String }}{{ "\n" }}{{ end }}`))

	out, err := runCommand(t, fs, "export", "--template", "ci/coords.tmpl")
	require.NoError(t, err)
	require.Equal(t, "org.junit:junit-bom:5.10.0\norg.junit.jupiter:junit-jupiter:5.10.0\n", out)
}

func TestExport_Summary(t *testing.T) {
	out, err := runCommand(t, exampleWorkspace(t), "export", "--template", "summary")
	require.NoError(t, err)
	require.Contains(t, out, "# org.example 1.0-SNAPSHOT")
}

func TestResolveDescriptor_ConfiguredDefault(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddProject("app", "org.example.app", "1.0.0")
	})

	cfg := &config.Config{Descriptor: "app/descriptor.toml"}
	path, err := resolveDescriptor(fs, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, testWorkspaceRoot+"/app/descriptor.toml", path)

	path, err = resolveDescriptor(fs, cfg, []string{"app"})
	require.NoError(t, err)
	require.Equal(t, testWorkspaceRoot+"/app/descriptor.toml", path)

	_, err = resolveDescriptor(fs, &config.Config{}, nil)
	require.Error(t, err)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := runCommand(t, exampleWorkspace(t), "validate", "--log-level", "chatty")
	require.Error(t, err)
}
