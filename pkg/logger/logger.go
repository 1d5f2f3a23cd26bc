package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the package logger for the given environment.
// Development gets a human readable console writer, everything else JSON.
func Init(environment string) {
	var w io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if environment == "development" || environment == "local" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	SetOutput(w, level)
}

// SetOutput replaces the sink and level of the package logger.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Logger returns the underlying zerolog logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug(msg string, args ...any) { write(Logger().Debug(), msg, args) }
func Info(msg string, args ...any)  { write(Logger().Info(), msg, args) }
func Warn(msg string, args ...any)  { write(Logger().Warn(), msg, args) }
func Error(msg string, args ...any) { write(Logger().Error(), msg, args) }

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) { write(Logger().Fatal(), msg, args) }

// write attaches args to the event. Errors become the "error" field,
// string keys pair with the value that follows them and anything left
// over is collected under "args".
func write(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}

	var extra []any
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			e = e.Err(v)
		case string:
			if i+1 < len(args) {
				if err, ok := args[i+1].(error); ok {
					e = e.AnErr(v, err)
				} else {
					e = e.Interface(v, args[i+1])
				}
				i++
				continue
			}
			extra = append(extra, v)
		case fmt.Stringer:
			extra = append(extra, v.String())
		default:
			extra = append(extra, v)
		}
	}
	if len(extra) > 0 {
		e = e.Interface("args", extra)
	}

	e.Msg(msg)
}
