package models

// Descriptor is a fully loaded and validated build descriptor
type Descriptor struct {
	// Project is the project identity and toolchain constraint
	Project *ProjectDescriptor

	// Dependencies holds the scoped coordinates and the test platform
	Dependencies *DependencySet

	// Repositories lists the registries coordinates resolve against, in order
	Repositories []string

	// Plugins lists the build plugins the descriptor applies
	Plugins []string

	// Source is the file the descriptor was read from, empty for in-memory loads
	Source string
}

// DefaultRepository is used when a descriptor declares no repositories.
const DefaultRepository = "maven-central"
