package models

import (
	"fmt"
	"strings"

	"golang.org/x/mod/module"
)

// Coordinate identifies one external library or platform
type Coordinate struct {
	// Namespace is the registry group, e.g. "com.fasterxml.jackson.core"
	Namespace string `json:"registry"`

	// Artifact is the artifact name within the namespace
	Artifact string `json:"artifact"`

	// Version is the declared version. Empty when a platform manages it.
	Version string `json:"version,omitempty"`

	// Kind tells libraries from platforms
	Kind Kind `json:"kind"`

	// Scope is the classpath the coordinate was declared for
	Scope Scope `json:"scope"`

	// ManagedBy is the key of the platform that supplied Version, if any
	ManagedBy string `json:"managedBy,omitempty"`

	// ManagedScope is the scope ManagedBy was declared in. Test libraries can
	// be managed by a compile platform.
	ManagedScope Scope `json:"managedScope,omitempty"`
}

// ParseCoordinate parses "namespace:artifact" or "namespace:artifact:version".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q (expected namespace:artifact[:version])", s)
	}

	c := Coordinate{
		Namespace: strings.TrimSpace(parts[0]),
		Artifact:  strings.TrimSpace(parts[1]),
		Kind:      KindLibrary,
	}
	if len(parts) == 3 {
		c.Version = strings.TrimSpace(parts[2])
		if c.Version == "" {
			return Coordinate{}, fmt.Errorf("invalid coordinate %q: empty version", s)
		}
	}

	return c, nil
}

// Key returns "namespace:artifact", the identity used for duplicate detection
func (c Coordinate) Key() string {
	return c.Namespace + ":" + c.Artifact
}

// String returns the coordinate in namespace:artifact[:version] notation
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Key()
	}
	return c.Key() + ":" + c.Version
}

// IsPlatform reports whether the coordinate only pins versions
func (c Coordinate) IsPlatform() bool {
	return c.Kind == KindPlatform
}

// Validate checks namespace, artifact and kind. Version rules depend on the
// surrounding DependencySet and are enforced there.
func (c Coordinate) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("registry namespace is required")
	}
	if c.Artifact == "" {
		return fmt.Errorf("artifact name is required")
	}
	if err := module.CheckImportPath(c.Namespace); err != nil || strings.Contains(c.Namespace, "/") {
		return fmt.Errorf("invalid registry namespace %q", c.Namespace)
	}
	if err := module.CheckImportPath(c.Artifact); err != nil || strings.Contains(c.Artifact, "/") {
		return fmt.Errorf("invalid artifact name %q", c.Artifact)
	}
	if strings.ContainsAny(c.Version, " \t\n:") {
		return fmt.Errorf("invalid version %q", c.Version)
	}
	if !c.Kind.IsValid() {
		return fmt.Errorf("invalid kind %q", c.Kind)
	}
	return nil
}

// WithinNamespace reports whether ns equals prefix or is a dotted child of it
// ("org.junit.jupiter" is within "org.junit").
func WithinNamespace(ns, prefix string) bool {
	return ns == prefix || strings.HasPrefix(ns, prefix+".")
}
