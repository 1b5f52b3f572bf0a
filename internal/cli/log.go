// Package cli implements the cabinext command-line interface.
//
// # Commands
//
//   - plan: fetch, place, measure and render a whole room
//   - wall: fetch and place one wall, printed as a table
//   - measure: compute the dimension annotation of a rectangle
//   - place: ask the catalog to place an ad-hoc cabinet
//   - serve: run the HTTP API
//   - cache: clear or locate cached catalog responses and renderings
//
// Commands read a TOML room file given with --config (see pkg/config).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every catalog request, cache access and pipeline stage. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: timestamps to the hundredth of a second
// ("14:32:01.45") and messages below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a command took from creation to done.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time and any extra key/value
// pairs, e.g. "wrote files files=2 took=41ms".
func (s stopwatch) done(msg string, keyvals ...any) {
	took := time.Since(s.start).Round(time.Millisecond)
	s.logger.Info(msg, append(keyvals, "took", took)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default so commands run outside
// RootCommand (tests, completion) still log somewhere.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
