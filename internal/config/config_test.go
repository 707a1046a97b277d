package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "warn", cfg.Log.Level)
	require.False(t, cfg.Log.JSON)
	require.Equal(t, "gradle", cfg.Export.Template)
	require.Empty(t, cfg.Descriptor)
	require.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := "descriptor = \"build/descriptor.yaml\"\n\n[log]\nlevel = \"debug\"\njson = true\n\n[export]\ntemplate = \"summary\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "build/descriptor.yaml", cfg.Descriptor)
	require.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	require.True(t, cfg.Log.JSON)
	require.Equal(t, "summary", cfg.Export.Template)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[log]\nlevel = \"debug\"\n"), 0644))
	t.Setenv("DESCRIPTOR_LOG_LEVEL", "error")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, zerolog.ErrorLevel, cfg.LogLevel())
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[log]\nlevel = \"loud\"\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid value for log.level: loud")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = " INFO "
	cfg.Export.Template = "gradle"

	require.NoError(t, cfg.Validate())
	require.Equal(t, zerolog.InfoLevel, cfg.LogLevel())

	cfg.Export.Template = ""
	require.Error(t, cfg.Validate())
}
