// Package logger provides the process-wide structured logger. It wraps
// zerolog behind a small leveled API with variadic key/value pairs so call
// sites stay terse.
package logger

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger writing JSON to os.Stdout. It is safe
// to call more than once; only the first call takes effect.
func Init() {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		defaultLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	})
}

// Get returns the initialized default logger, initializing it on first use.
func Get() *zerolog.Logger {
	Init()
	return &defaultLogger
}

// Info logs an informational message with alternating key/value args.
func Info(msg string, args ...any) {
	emit(Get().Info(), msg, args)
}

// Warn logs a warning message with alternating key/value args.
func Warn(msg string, args ...any) {
	emit(Get().Warn(), msg, args)
}

// Error logs an error message. The error may be nil.
func Error(msg string, err error, args ...any) {
	emit(Get().Error().Err(err), msg, args)
}

// Debug logs a debug message with alternating key/value args.
func Debug(msg string, args ...any) {
	emit(Get().Debug(), msg, args)
}

func emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}
