package models

import (
	"strings"
)

// ProjectDescriptor holds the identity and toolchain constraint of a project.
// Values are fixed at construction.
type ProjectDescriptor struct {
	group       string
	version     string
	toolchain   int
	description string
}

// NewProjectDescriptor creates a validated ProjectDescriptor
func NewProjectDescriptor(group, version string, toolchain int, description string) (*ProjectDescriptor, error) {
	group = strings.TrimSpace(group)
	version = strings.TrimSpace(version)

	if group == "" {
		return nil, NewConfigurationError("project.group", "must not be empty")
	}
	if version == "" {
		return nil, NewConfigurationError("project.version", "must not be empty")
	}
	if toolchain <= 0 {
		return nil, NewConfigurationError("toolchain.version", "must be a positive integer")
	}

	return &ProjectDescriptor{
		group:       group,
		version:     version,
		toolchain:   toolchain,
		description: strings.TrimSpace(description),
	}, nil
}

// Group returns the project group identifier
func (p *ProjectDescriptor) Group() string {
	return p.group
}

// Version returns the project version string
func (p *ProjectDescriptor) Version() string {
	return p.version
}

// Toolchain returns the minimum toolchain language version
func (p *ProjectDescriptor) Toolchain() int {
	return p.toolchain
}

// Description returns the free-form project description
func (p *ProjectDescriptor) Description() string {
	return p.description
}

// IsSnapshot reports whether the project version is a development snapshot
func (p *ProjectDescriptor) IsSnapshot() bool {
	v, err := ParseVersion(p.version)
	if err != nil {
		return strings.HasSuffix(strings.ToUpper(p.version), "-SNAPSHOT")
	}
	return v.IsSnapshot()
}
