// Package trace is the observer hook the flattening engine reports to.
// It replaces ad hoc debug printing: a debug panel, a test or a logger
// subscribes to structured events without the engine knowing which.
package trace

import (
	"context"
	"log/slog"

	"github.com/agentic-research/ketl/api"
)

// Tracer receives engine events. Implementations must be safe for
// concurrent use: PathResolved is reported from one goroutine per column.
type Tracer interface {
	DefinitionParsed(ctx context.Context, field, path string, line int)
	DefinitionDropped(ctx context.Context, d api.DroppedLine)
	PathResolved(ctx context.Context, field string, values int)
	RowBuilt(ctx context.Context, id int)
}

// Nop discards every event.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) DefinitionParsed(context.Context, string, string, int) {}
func (nopTracer) DefinitionDropped(context.Context, api.DroppedLine)    {}
func (nopTracer) PathResolved(context.Context, string, int)             {}
func (nopTracer) RowBuilt(context.Context, int)                         {}

// Logger reports events to a slog.Logger. Dropped definitions are logged at
// warn level, everything else at debug.
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a Tracer writing to l, or to slog.Default when l is nil.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{log: l.With("component", "flatten")}
}

func (t *Logger) DefinitionParsed(ctx context.Context, field, path string, line int) {
	t.log.DebugContext(ctx, "definition parsed", "field", field, "path", path, "line", line)
}

func (t *Logger) DefinitionDropped(ctx context.Context, d api.DroppedLine) {
	t.log.WarnContext(ctx, "definition dropped", "line", d.Line, "text", d.Text, "reason", d.Reason)
}

func (t *Logger) PathResolved(ctx context.Context, field string, values int) {
	t.log.DebugContext(ctx, "path resolved", "field", field, "values", values)
}

func (t *Logger) RowBuilt(ctx context.Context, id int) {
	t.log.DebugContext(ctx, "row built", "id", id)
}
