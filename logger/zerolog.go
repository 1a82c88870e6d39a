// Package logger adapts zerolog to the devconnect.Logger interface.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/goliatone/go-devconnect"
	"github.com/rs/zerolog"
)

// Zerolog implements devconnect.Logger
type Zerolog struct {
	zl zerolog.Logger
}

var _ devconnect.Logger = (*Zerolog)(nil)

// Options configures New
type Options struct {
	Level  string
	Pretty bool
	Output io.Writer
}

// New builds a structured logger. Unknown levels fall back to info.
func New(opts Options) *Zerolog {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "devconnect").
		Logger()

	return &Zerolog{zl: zl}
}

// Zerolog exposes the underlying logger
func (l *Zerolog) Zerolog() *zerolog.Logger {
	return &l.zl
}

// With returns a child logger carrying the given key/value pairs
func (l *Zerolog) With(args ...any) *Zerolog {
	return &Zerolog{zl: l.zl.With().Fields(pairs(args)).Logger()}
}

func (l *Zerolog) Debug(msg string, args ...any) {
	l.zl.Debug().Fields(pairs(args)).Msg(msg)
}

func (l *Zerolog) Info(msg string, args ...any) {
	l.zl.Info().Fields(pairs(args)).Msg(msg)
}

func (l *Zerolog) Warn(msg string, args ...any) {
	l.zl.Warn().Fields(pairs(args)).Msg(msg)
}

func (l *Zerolog) Error(msg string, args ...any) {
	l.zl.Error().Fields(pairs(args)).Msg(msg)
}

// pairs keeps args usable by zerolog: a dangling key gets a nil value and
// non string keys are dropped with their value.
func pairs(args []any) []any {
	if len(args)%2 != 0 {
		args = append(args, nil)
	}

	out := make([]any, 0, len(args))
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		out = append(out, key, args[i+1])
	}
	return out
}
