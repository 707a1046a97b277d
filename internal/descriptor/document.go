package descriptor

import (
	"strings"

	"github.com/jakoblorz/go-descriptor/internal/models"
)

// Document is the decoded, not yet validated form of a descriptor file. Its
// keys follow the logical field names (project.group, toolchain.version,
// dependency.compile[], test.platform, ...) in every supported encoding.
type Document struct {
	Project      ProjectSection    `json:"project" yaml:"project" toml:"project"`
	Toolchain    ToolchainSection  `json:"toolchain" yaml:"toolchain" toml:"toolchain"`
	Repositories []string          `json:"repositories,omitempty" yaml:"repositories,omitempty" toml:"repositories,omitempty"`
	Plugins      []string          `json:"plugins,omitempty" yaml:"plugins,omitempty" toml:"plugins,omitempty"`
	Dependency   DependencySection `json:"dependency" yaml:"dependency" toml:"dependency"`
	Test         TestSection       `json:"test" yaml:"test" toml:"test"`
}

type ProjectSection struct {
	Group       string `json:"group" yaml:"group" toml:"group"`
	Version     string `json:"version" yaml:"version" toml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

type ToolchainSection struct {
	// Version is a pointer so an absent key can be told from zero
	Version *int `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

type DependencySection struct {
	Compile []DependencyEntry `json:"compile,omitempty" yaml:"compile,omitempty" toml:"compile,omitempty"`
	Test    []DependencyEntry `json:"test,omitempty" yaml:"test,omitempty" toml:"test,omitempty"`
}

// DependencyEntry declares one coordinate, either field by field or with the
// "namespace:artifact[:version]" shorthand in Coordinate.
type DependencyEntry struct {
	Coordinate string `json:"coordinate,omitempty" yaml:"coordinate,omitempty" toml:"coordinate,omitempty"`
	Registry   string `json:"registry,omitempty" yaml:"registry,omitempty" toml:"registry,omitempty"`
	Artifact   string `json:"artifact,omitempty" yaml:"artifact,omitempty" toml:"artifact,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
}

type TestSection struct {
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty" toml:"platform,omitempty"`

	// Engines registers test engines beyond the built-in catalog
	Engines map[string][]models.EngineRule `json:"engines,omitempty" yaml:"engines,omitempty" toml:"engines,omitempty"`
}

// Entries returns the entries declared for a scope
func (s *DependencySection) Entries(scope models.Scope) []DependencyEntry {
	switch scope {
	case models.ScopeCompile:
		return s.Compile
	case models.ScopeTest:
		return s.Test
	default:
		return nil
	}
}

// Append adds an entry to a scope
func (s *DependencySection) Append(scope models.Scope, entry DependencyEntry) {
	switch scope {
	case models.ScopeCompile:
		s.Compile = append(s.Compile, entry)
	case models.ScopeTest:
		s.Test = append(s.Test, entry)
	}
}

// EntryFor converts a coordinate into the field-by-field entry form
func EntryFor(c models.Coordinate) DependencyEntry {
	entry := DependencyEntry{
		Registry: c.Namespace,
		Artifact: c.Artifact,
		Version:  c.Version,
	}
	if c.IsPlatform() {
		entry.Kind = string(models.KindPlatform)
	}
	return entry
}

// coordinate turns an entry into a validated coordinate. field is the entry's
// path, e.g. "dependency.test[1]".
func (e DependencyEntry) coordinate(field string) (models.Coordinate, error) {
	var c models.Coordinate

	registry := strings.TrimSpace(e.Registry)
	artifact := strings.TrimSpace(e.Artifact)
	version := strings.TrimSpace(e.Version)

	if notation := strings.TrimSpace(e.Coordinate); notation != "" {
		if registry != "" || artifact != "" {
			return c, models.NewConfigurationError(field, "coordinate cannot be combined with registry or artifact")
		}

		parsed, err := models.ParseCoordinate(notation)
		if err != nil {
			return c, &models.ConfigurationError{Field: field + ".coordinate", Reason: err.Error()}
		}
		if version != "" && parsed.Version != "" && parsed.Version != version {
			return c, models.NewConfigurationError(field+".version", "conflicts with the version in coordinate")
		}
		if version != "" {
			parsed.Version = version
		}
		c = parsed
	} else {
		if registry == "" {
			return c, models.NewConfigurationError(field+".registry", "is required")
		}
		if artifact == "" {
			return c, models.NewConfigurationError(field+".artifact", "is required")
		}
		c = models.Coordinate{Namespace: registry, Artifact: artifact, Version: version}
	}

	kind, err := models.ParseKind(strings.TrimSpace(e.Kind))
	if err != nil {
		return c, &models.ConfigurationError{Field: field + ".kind", Reason: err.Error()}
	}
	c.Kind = kind

	if err := c.Validate(); err != nil {
		return c, &models.ConfigurationError{Field: field, Reason: err.Error()}
	}

	return c, nil
}
