package models

import (
	"fmt"
	"strings"
)

// DependencySet holds the declared dependencies partitioned by scope, plus the
// selected test platform.
//
// Both scopes share the same validation path; see add.
type DependencySet struct {
	compile  []Coordinate
	test     []Coordinate
	platform string
	engines  EngineCatalog
	sealed   bool
}

// NewDependencySet creates an empty set using the given engine catalog.
// A nil catalog selects DefaultEngineCatalog.
func NewDependencySet(engines EngineCatalog) *DependencySet {
	if engines == nil {
		engines = DefaultEngineCatalog()
	} else {
		engines = engines.Clone()
	}

	return &DependencySet{
		compile: []Coordinate{},
		test:    []Coordinate{},
		engines: engines,
	}
}

// AddCompileDependency appends a coordinate to the compile scope
func (d *DependencySet) AddCompileDependency(c Coordinate) error {
	return d.add(ScopeCompile, c)
}

// AddTestDependency appends a coordinate to the test scope
func (d *DependencySet) AddTestDependency(c Coordinate) error {
	return d.add(ScopeTest, c)
}

// Add appends a coordinate to the given scope
func (d *DependencySet) Add(scope Scope, c Coordinate) error {
	return d.add(scope, c)
}

func (d *DependencySet) add(scope Scope, c Coordinate) error {
	if d.sealed {
		return ErrSealed
	}
	if !scope.IsValid() {
		return NewConfigurationError("dependency", fmt.Sprintf("unknown scope %q", scope))
	}

	c.Scope = scope
	c.ManagedBy = ""
	c.ManagedScope = ""
	if c.Kind == "" {
		c.Kind = KindLibrary
	}

	field := "dependency." + scope.String()
	if err := c.Validate(); err != nil {
		return &ConfigurationError{Field: field, Reason: err.Error()}
	}
	if c.IsPlatform() && c.Version == "" {
		return NewConfigurationError(field, fmt.Sprintf("platform %s requires a version", c.Key()))
	}

	list := d.scoped(scope)
	for _, existing := range *list {
		if existing.Key() != c.Key() {
			continue
		}
		// Redeclaring the same coordinate is harmless.
		if existing.Version == c.Version && existing.Kind == c.Kind {
			return nil
		}
		return &DuplicateDependencyError{Scope: scope, Existing: existing, Conflicting: c}
	}

	*list = append(*list, c)
	return nil
}

// ResolveManagedVersions fills the version of every unversioned library from
// the platform that manages it. Test scope libraries see compile scope
// platforms too. When several platforms apply, the highest version wins.
func (d *DependencySet) ResolveManagedVersions() error {
	if d.sealed {
		return ErrSealed
	}

	for _, scope := range Scopes {
		list := d.scoped(scope)
		for i, c := range *list {
			if c.IsPlatform() || c.Version != "" {
				continue
			}

			platform, ok := d.managingPlatform(scope, c)
			if !ok {
				return NewConfigurationError(
					fmt.Sprintf("dependency.%s", scope),
					fmt.Sprintf("%s has no version and no platform manages it", c.Key()),
				)
			}

			(*list)[i].Version = platform.Version
			(*list)[i].ManagedBy = platform.Key()
			(*list)[i].ManagedScope = platform.Scope
		}
	}

	return nil
}

func (d *DependencySet) managingPlatform(scope Scope, c Coordinate) (Coordinate, bool) {
	candidates := d.Platforms(scope)
	if scope == ScopeTest {
		candidates = append(candidates, d.Platforms(ScopeCompile)...)
	}

	var best Coordinate
	found := false
	for _, p := range candidates {
		if !WithinNamespace(c.Namespace, p.Namespace) {
			continue
		}
		if !found || CompareVersions(p.Version, best.Version) > 0 {
			best = p
			found = true
		}
	}

	return best, found
}

// SelectTestPlatform records which test engine the test runner activates.
// The engine must be backed by at least one test scope dependency.
func (d *DependencySet) SelectTestPlatform(name string) error {
	if d.sealed {
		return ErrSealed
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return NewConfigurationError("test.platform", "must not be empty")
	}
	if d.platform != "" && d.platform != name {
		return NewConfigurationError("test.platform", fmt.Sprintf("already set to %q", d.platform))
	}
	if !d.engines.Has(name) {
		return &UnknownPlatformError{Platform: name, Known: d.engines.Names()}
	}

	for _, c := range d.test {
		if d.engines.Provides(name, c) {
			d.platform = name
			return nil
		}
	}

	return &UnknownPlatformError{Platform: name, Known: d.engines.Names(), Registered: true}
}

// Seal makes the set read-only. Every mutator returns ErrSealed afterwards.
func (d *DependencySet) Seal() {
	d.sealed = true
}

// Sealed reports whether the set is read-only
func (d *DependencySet) Sealed() bool {
	return d.sealed
}

// TestPlatform returns the selected engine, or "" if none was selected
func (d *DependencySet) TestPlatform() string {
	return d.platform
}

// Compile returns a copy of the compile scope coordinates in declaration order
func (d *DependencySet) Compile() []Coordinate {
	return d.Scoped(ScopeCompile)
}

// Test returns a copy of the test scope coordinates in declaration order
func (d *DependencySet) Test() []Coordinate {
	return d.Scoped(ScopeTest)
}

// Scoped returns a copy of the coordinates of one scope
func (d *DependencySet) Scoped(scope Scope) []Coordinate {
	list := d.scoped(scope)
	if list == nil {
		return nil
	}
	return append([]Coordinate(nil), (*list)...)
}

// All returns compile then test coordinates
func (d *DependencySet) All() []Coordinate {
	all := make([]Coordinate, 0, len(d.compile)+len(d.test))
	all = append(all, d.compile...)
	return append(all, d.test...)
}

// Platforms returns the platform coordinates of one scope
func (d *DependencySet) Platforms(scope Scope) []Coordinate {
	var platforms []Coordinate
	for _, c := range d.Scoped(scope) {
		if c.IsPlatform() {
			platforms = append(platforms, c)
		}
	}
	return platforms
}

// Classpath returns the library coordinates of a scope. Platforms only pin
// versions and never appear on a classpath. The test classpath includes the
// compile classpath.
func (d *DependencySet) Classpath(scope Scope) []Coordinate {
	var scopes []Scope
	switch scope {
	case ScopeCompile:
		scopes = []Scope{ScopeCompile}
	case ScopeTest:
		scopes = []Scope{ScopeCompile, ScopeTest}
	}

	var classpath []Coordinate
	seen := make(map[string]bool)
	for _, s := range scopes {
		for _, c := range d.Scoped(s) {
			if c.IsPlatform() || seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			classpath = append(classpath, c)
		}
	}
	return classpath
}

// Engines returns a copy of the engine catalog
func (d *DependencySet) Engines() EngineCatalog {
	return d.engines.Clone()
}

// Len returns the number of declared coordinates across scopes
func (d *DependencySet) Len() int {
	return len(d.compile) + len(d.test)
}

func (d *DependencySet) scoped(scope Scope) *[]Coordinate {
	switch scope {
	case ScopeCompile:
		return &d.compile
	case ScopeTest:
		return &d.test
	default:
		return nil
	}
}
