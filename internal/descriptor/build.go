package descriptor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/rs/zerolog"
)

// Option configures Build, Load and Store
type Option func(*options)

type options struct {
	logger  zerolog.Logger
	engines models.EngineCatalog
	source  string
}

func newOptions(opts []Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.engines == nil {
		o.engines = models.DefaultEngineCatalog()
	}
	return o
}

// WithLogger sets the logger used while building descriptors
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEngines replaces the built-in test engine catalog
func WithEngines(engines models.EngineCatalog) Option {
	return func(o *options) {
		o.engines = engines
	}
}

// WithSource records the file a descriptor was read from
func WithSource(path string) Option {
	return func(o *options) {
		o.source = path
	}
}

// Load decodes and builds a descriptor. Loading the same content twice yields
// equal descriptors.
func Load(data []byte, format Format, opts ...Option) (*models.Descriptor, error) {
	doc, err := Decode(format, data)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

// Build validates a decoded document and turns it into a sealed descriptor.
// On failure no partial descriptor is returned.
func Build(doc *Document, opts ...Option) (*models.Descriptor, error) {
	o := newOptions(opts)
	log := o.logger.With().Str("source", o.source).Logger()

	if doc.Toolchain.Version == nil {
		return nil, models.NewConfigurationError("toolchain.version", "is required")
	}

	project, err := models.NewProjectDescriptor(
		doc.Project.Group,
		doc.Project.Version,
		*doc.Toolchain.Version,
		doc.Project.Description,
	)
	if err != nil {
		return nil, err
	}
	if project.IsSnapshot() {
		log.Debug().Str("version", project.Version()).Msg("project version is a snapshot")
	}

	engines := o.engines.Clone()
	names := make([]string, 0, len(doc.Test.Engines))
	for name := range doc.Test.Engines {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rules := doc.Test.Engines[name]
		field := "test.engines." + name
		if strings.TrimSpace(name) == "" {
			return nil, models.NewConfigurationError("test.engines", "engine name must not be empty")
		}
		if len(rules) == 0 {
			return nil, models.NewConfigurationError(field, "needs at least one provider rule")
		}
		for i, rule := range rules {
			if strings.TrimSpace(rule.Namespace) == "" {
				return nil, models.NewConfigurationError(fmt.Sprintf("%s[%d].registry", field, i), "is required")
			}
		}
		engines.Register(name, rules...)
	}

	deps := models.NewDependencySet(engines)
	for _, scope := range models.Scopes {
		for i, entry := range doc.Dependency.Entries(scope) {
			field := fmt.Sprintf("dependency.%s[%d]", scope, i)

			coord, err := entry.coordinate(field)
			if err != nil {
				return nil, err
			}
			if models.IsDynamicVersion(coord.Version) {
				log.Warn().Str("coordinate", coord.String()).Msg("dynamic version makes the build non-reproducible")
			}

			if err := deps.Add(scope, coord); err != nil {
				var cfgErr *models.ConfigurationError
				if errors.As(err, &cfgErr) {
					cfgErr.Field = field
				}
				return nil, err
			}

			log.Debug().
				Str("scope", scope.String()).
				Str("coordinate", coord.String()).
				Str("kind", coord.Kind.String()).
				Msg("dependency declared")
		}
	}

	if err := deps.ResolveManagedVersions(); err != nil {
		return nil, err
	}

	if platform := strings.TrimSpace(doc.Test.Platform); platform != "" {
		if err := deps.SelectTestPlatform(platform); err != nil {
			return nil, err
		}
	}
	deps.Seal()

	repositories, err := uniqueList("repositories", doc.Repositories)
	if err != nil {
		return nil, err
	}
	if len(repositories) == 0 {
		repositories = []string{models.DefaultRepository}
	}

	plugins, err := uniqueList("plugins", doc.Plugins)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("group", project.Group()).
		Int("compile", len(deps.Compile())).
		Int("test", len(deps.Test())).
		Str("platform", deps.TestPlatform()).
		Msg("descriptor loaded")

	return &models.Descriptor{
		Project:      project,
		Dependencies: deps,
		Repositories: repositories,
		Plugins:      plugins,
		Source:       o.source,
	}, nil
}

func uniqueList(field string, values []string) ([]string, error) {
	list := make([]string, 0, len(values))
	seen := make(map[string]bool)

	for i, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, models.NewConfigurationError(fmt.Sprintf("%s[%d]", field, i), "must not be empty")
		}
		if seen[value] {
			return nil, models.NewConfigurationError(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("duplicate entry %q", value))
		}
		seen[value] = true
		list = append(list, value)
	}

	return list, nil
}
