package models

import (
	"sort"
)

// Test engine names understood out of the box.
const (
	EngineJUnitPlatform = "junit-platform"
	EngineJUnit         = "junit"
	EngineTestNG        = "testng"
)

// EngineRule matches the test dependencies that provide an engine.
// An empty Artifact matches every artifact within Namespace.
type EngineRule struct {
	Namespace string `json:"registry" yaml:"registry" toml:"registry"`
	Artifact  string `json:"artifact,omitempty" yaml:"artifact,omitempty" toml:"artifact,omitempty"`
}

// Matches reports whether the coordinate is covered by the rule
func (r EngineRule) Matches(c Coordinate) bool {
	if !WithinNamespace(c.Namespace, r.Namespace) {
		return false
	}
	return r.Artifact == "" || r.Artifact == c.Artifact
}

// EngineCatalog maps engine names to the rules of dependencies providing them
type EngineCatalog map[string][]EngineRule

// DefaultEngineCatalog returns the catalog of well known JVM test engines
func DefaultEngineCatalog() EngineCatalog {
	return EngineCatalog{
		EngineJUnitPlatform: {{Namespace: "org.junit"}},
		EngineJUnit:         {{Namespace: "junit", Artifact: "junit"}},
		EngineTestNG:        {{Namespace: "org.testng"}},
	}
}

// Register adds rules for an engine, creating it if needed
func (c EngineCatalog) Register(engine string, rules ...EngineRule) {
	c[engine] = append(c[engine], rules...)
}

// Has reports whether the engine is known
func (c EngineCatalog) Has(engine string) bool {
	_, ok := c[engine]
	return ok
}

// Provides reports whether the coordinate provides the engine
func (c EngineCatalog) Provides(engine string, coord Coordinate) bool {
	for _, rule := range c[engine] {
		if rule.Matches(coord) {
			return true
		}
	}
	return false
}

// Names returns the sorted engine names
func (c EngineCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the catalog
func (c EngineCatalog) Clone() EngineCatalog {
	clone := make(EngineCatalog, len(c))
	for name, rules := range c {
		clone[name] = append([]EngineRule(nil), rules...)
	}
	return clone
}
