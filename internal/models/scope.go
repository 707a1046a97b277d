package models

import (
	"fmt"
)

// Scope says which classpath a dependency belongs to
type Scope string

const (
	ScopeCompile Scope = "compile"
	ScopeTest    Scope = "test"
)

// Scopes lists every scope in declaration order.
var Scopes = []Scope{ScopeCompile, ScopeTest}

// IsValid checks if the scope is known
func (s Scope) IsValid() bool {
	switch s {
	case ScopeCompile, ScopeTest:
		return true
	default:
		return false
	}
}

// String returns the string representation of Scope
func (s Scope) String() string {
	return string(s)
}

// ParseScope parses a string into a Scope
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if !scope.IsValid() {
		return "", fmt.Errorf("invalid scope: %s (must be compile or test)", s)
	}
	return scope, nil
}

// Kind distinguishes ordinary libraries from version-pinning platforms.
type Kind string

const (
	KindLibrary  Kind = "library"
	KindPlatform Kind = "platform"
)

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindLibrary, KindPlatform:
		return true
	default:
		return false
	}
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a string into a Kind. An empty string means library.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindLibrary, nil
	}
	kind := Kind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid kind: %s (must be library or platform)", s)
	}
	return kind, nil
}
