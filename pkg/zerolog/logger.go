package zerolog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/haguru/filmdb/internal/interfaces"
	"github.com/rs/zerolog"
)

// Logger implements interfaces.Logger using zerolog.
type Logger struct {
	zlog zerolog.Logger
}

// NewZerologLogger initializes zerolog with standard settings, writing to stdout.
func NewZerologLogger(serviceName string) interfaces.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	return NewLogger(output, serviceName)
}

// NewLogger writes JSON lines (or whatever w renders) tagged with the service name.
func NewLogger(w io.Writer, serviceName string) *Logger {
	z := zerolog.New(w).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return &Logger{zlog: z}
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Info(), keyvals).Msg(msg)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Warn(), keyvals).Msg(msg)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Error(), keyvals).Msg(msg)
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Debug(), keyvals).Msg(msg)
}

// SetLevel sets the minimum level of this logger. Unknown levels fall back to info.
func (l *Logger) SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		l.zlog = l.zlog.Level(zerolog.DebugLevel)
	case "info":
		l.zlog = l.zlog.Level(zerolog.InfoLevel)
	case "warn":
		l.zlog = l.zlog.Level(zerolog.WarnLevel)
	case "error":
		l.zlog = l.zlog.Level(zerolog.ErrorLevel)
	case "fatal":
		l.zlog = l.zlog.Level(zerolog.FatalLevel)
	case "panic":
		l.zlog = l.zlog.Level(zerolog.PanicLevel)
	default:
		l.zlog = l.zlog.Level(zerolog.InfoLevel)
	}
}

// With creates a new logger carrying the given key/value pairs on every entry.
func (l *Logger) With(keyvals ...interface{}) interfaces.Logger {
	ctx := l.zlog.With()
	for i := 0; i < len(keyvals)-1; i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, keyvals[i+1])
	}
	return &Logger{zlog: ctx.Logger()}
}

func withFields(event *zerolog.Event, keyvals []interface{}) *zerolog.Event {
	for i := 0; i < len(keyvals)-1; i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keyvals[i+1].(error); isErr {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, keyvals[i+1])
	}
	return event
}
