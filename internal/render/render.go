package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
)

//go:embed templates/*.tmpl
var builtinFS embed.FS

var builtinFiles = map[string]string{
	"gradle":  "templates/gradle.kts.tmpl",
	"summary": "templates/summary.md.tmpl",
}

// Data is what templates see
type Data struct {
	Group        string
	Version      string
	Description  string
	Snapshot     bool
	Toolchain    int
	Repositories []string
	Plugins      []string
	Compile      []models.Coordinate
	Test         []models.Coordinate
	Dependencies map[string][]models.Coordinate
	TestPlatform string
	Source       string
}

// NewData flattens a descriptor for templates
func NewData(d *models.Descriptor) Data {
	compile := d.Dependencies.Compile()
	test := d.Dependencies.Test()

	return Data{
		Group:        d.Project.Group(),
		Version:      d.Project.Version(),
		Description:  d.Project.Description(),
		Snapshot:     d.Project.IsSnapshot(),
		Toolchain:    d.Project.Toolchain(),
		Repositories: d.Repositories,
		Plugins:      d.Plugins,
		Compile:      compile,
		Test:         test,
		Dependencies: map[string][]models.Coordinate{
			models.ScopeCompile.String(): compile,
			models.ScopeTest.String():    test,
		},
		TestPlatform: d.Dependencies.TestPlatform(),
		Source:       d.Source,
	}
}

// Builtins returns the names of the built-in templates
func Builtins() []string {
	names := make([]string, 0, len(builtinFiles))
	for name := range builtinFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is a built-in template
func IsBuiltin(name string) bool {
	_, ok := builtinFiles[name]
	return ok
}

// FuncMap returns sprig's text functions plus the build script helpers
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["kotlinString"] = kotlinString
	funcs["gradleRepository"] = gradleRepository
	funcs["gradleDependency"] = gradleDependency
	funcs["gradleEngine"] = gradleEngine
	return funcs
}

// Parse parses template text with FuncMap available
func Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Builtin parses a built-in template
func Builtin(name string) (*template.Template, error) {
	path, ok := builtinFiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown template: %s (built-in templates: %s)", name, strings.Join(Builtins(), ", "))
	}

	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return Parse(name, string(data))
}

// ParseTemplateFile parses a user supplied template file
func ParseTemplateFile(fs filesystem.FileSystem, path string) (*template.Template, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return Parse(filepath.Base(path), string(data))
}

// Lookup returns a built-in template by name, or parses name as a file
func Lookup(fs filesystem.FileSystem, name string) (*template.Template, error) {
	if IsBuiltin(name) {
		return Builtin(name)
	}
	return ParseTemplateFile(fs, name)
}

// Execute renders a descriptor through a template
func Execute(tmpl *template.Template, d *models.Descriptor) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewData(d)); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", tmpl.Name(), err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// Render renders a descriptor through a built-in template
func Render(name string, d *models.Descriptor) (string, error) {
	tmpl, err := Builtin(name)
	if err != nil {
		return "", err
	}
	return Execute(tmpl, d)
}
