package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSealed is returned when a loaded DependencySet is mutated.
var ErrSealed = errors.New("dependency set is sealed")

// ConfigurationError reports a malformed or missing descriptor field
type ConfigurationError struct {
	// Field is the logical field path, e.g. "toolchain.version"
	Field string

	// Reason describes what is wrong with the field
	Reason string

	// Err is the underlying decode or parse error, if any
	Err error
}

// NewConfigurationError creates a ConfigurationError for a field
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DuplicateDependencyError reports two conflicting declarations of the same
// namespace+artifact within one scope
type DuplicateDependencyError struct {
	Scope       Scope
	Existing    Coordinate
	Conflicting Coordinate
}

func (e *DuplicateDependencyError) Error() string {
	return fmt.Sprintf("duplicate %s dependency %s: declared as %s and %s",
		e.Scope, e.Existing.Key(), describeDeclaration(e.Existing), describeDeclaration(e.Conflicting))
}

func describeDeclaration(c Coordinate) string {
	version := c.Version
	if version == "" {
		version = "<managed>"
	}
	if c.IsPlatform() {
		return fmt.Sprintf("platform %s", version)
	}
	return version
}

// UnknownPlatformError reports a test platform no test dependency provides
type UnknownPlatformError struct {
	// Platform is the requested engine name
	Platform string

	// Known lists the engines the catalog knows about
	Known []string

	// Registered is true when the engine is in the catalog but no test
	// dependency provides it
	Registered bool
}

func (e *UnknownPlatformError) Error() string {
	if e.Registered {
		return fmt.Sprintf("unknown test platform %q: no test dependency provides it", e.Platform)
	}
	return fmt.Sprintf("unknown test platform %q (known: %s)", e.Platform, strings.Join(e.Known, ", "))
}
