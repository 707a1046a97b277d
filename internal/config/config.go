package config

import (
	"path/filepath"
	"strings"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// FileName is the tool settings file looked up in the working directory
const FileName = ".descriptor.toml"

// Config describes the tool settings
type Config struct {
	Descriptor string `toml:"descriptor" env:"DESCRIPTOR" usage:"Descriptor file used when no path is given"`
	Log        struct {
		Level string `toml:"level" env:"LEVEL" default:"warn" usage:"Log level (debug, info, warn, error)"`
		JSON  bool   `toml:"json" env:"JSON" default:"false" usage:"Output JSON lines instead of pretty console messages"`
	} `toml:"log" env:"LOG"`
	Export struct {
		Template string `toml:"template" env:"TEMPLATE" default:"gradle" usage:"Template used by export"`
	} `toml:"export" env:"EXPORT"`
}

var logLevels = map[string]zerolog.Level{
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
}

// Loader initializes an empty config object and returns a new Loader reading
// dir/.descriptor.toml and DESCRIPTOR_* environment variables
func Loader(dir string) (*Config, *aconfig.Loader) {
	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "DESCRIPTOR",
		Files:     []string{filepath.Join(dir, FileName)},
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load reads and validates the settings for dir
func Load(dir string) (*Config, error) {
	cfg, loader := Loader(dir)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrapf(err, "failed to load %s", FileName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if _, ok := logLevels[cfg.Log.Level]; !ok {
		return eris.Errorf("invalid value for log.level: %s (must be one of debug, info, warn, error or disabled)", cfg.Log.Level)
	}

	if strings.TrimSpace(cfg.Export.Template) == "" {
		return eris.New("export.template must not be empty")
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (cfg *Config) LogLevel() zerolog.Level {
	return logLevels[cfg.Log.Level]
}
