package logging

import (
	"context"
	"io"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InvocationField is the log field holding the invocation ID
const InvocationField = "run"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

type loggerKey struct{}

// Options controls logger setup
type Options struct {
	Level zerolog.Level
	JSON  bool
}

// NewInvocationID returns a short random ID that ties together the log lines
// of one command run
func NewInvocationID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return "unknown"
	}
	return id
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	writer := zerolog.ConsoleWriter{Out: out}
	writer.TimeFormat = "15:04:05"
	writer.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.LevelFieldName,
		InvocationField,
		zerolog.MessageFieldName,
	}
	return writer
}

// New builds a logger writing to out, tagged with the invocation ID
func New(out io.Writer, opts Options, invocationID string) zerolog.Logger {
	var w io.Writer = out
	if !opts.JSON {
		w = consoleWriter(out)
	}

	return zerolog.New(w).
		Level(opts.Level).
		With().
		Timestamp().
		Str(InvocationField, invocationID).
		Logger()
}

// Setup installs the global logger and returns it
func Setup(out io.Writer, opts Options, invocationID string) zerolog.Logger {
	if opts.JSON {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			return eris.ToJSON(err, true)
		}
	} else {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			return eris.ToString(err, true)
		}
	}

	logger := New(out, opts, invocationID)
	log.Logger = logger
	return logger
}

// WithLogger stores a logger on the context
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, &logger)
}

// FromContext returns the logger stored on the context, or the global logger
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &log.Logger
	}

	logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger)
	if !ok {
		return &log.Logger
	}
	return logger
}
