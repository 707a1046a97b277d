package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rotisserie/eris"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestNewInvocationID(t *testing.T) {
	a := NewInvocationID()
	b := NewInvocationID()

	require.Len(t, a, 10)
	require.Regexp(t, `^[0-9a-z]{10}$`, a)
	require.NotEqual(t, a, b)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: zerolog.InfoLevel, JSON: true}, "abc123")

	logger.Debug().Msg("hidden")
	logger.Info().Str("coordinate", "org.junit:junit-bom:5.10.0").Msg("dependency declared")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "abc123", line[InvocationField])
	require.Equal(t, "info", line["level"])
	require.Equal(t, "dependency declared", line["message"])
	require.NotContains(t, buf.String(), "hidden")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: zerolog.WarnLevel}, "abc123")

	logger.Warn().Msg("dynamic version")

	require.Contains(t, buf.String(), "dynamic version")
	require.Contains(t, buf.String(), "abc123")
}

func TestSetup_ErrorStack(t *testing.T) {
	previous, previousMarshaler := log.Logger, zerolog.ErrorStackMarshaler
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.ErrorStackMarshaler = previousMarshaler
	})

	var buf bytes.Buffer
	logger := Setup(&buf, Options{Level: zerolog.DebugLevel, JSON: true}, "stack")

	err := eris.Wrap(errors.New("file not found"), "failed to read descriptor")
	logger.Error().Stack().Err(err).Msg("load failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Contains(t, line, zerolog.ErrorStackFieldName)
	require.Contains(t, line["error"], "failed to read descriptor")
}

func TestContext(t *testing.T) {
	require.Equal(t, &log.Logger, FromContext(context.Background()))

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: zerolog.InfoLevel, JSON: true}, "ctx")
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info().Msg("from context")
	require.Contains(t, buf.String(), `"run":"ctx"`)
}
