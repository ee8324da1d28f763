package ingest

import (
	"context"
	"errors"
	"runtime"

	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
	"github.com/agentic-research/ketl/internal/table"
	"github.com/agentic-research/ketl/internal/trace"
	"golang.org/x/sync/errgroup"
)

// ErrNoDefinitions is returned by Flatten when no line of the definition
// text declares a usable column.
var ErrNoDefinitions = errors.New("no valid column definitions")

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Concurrency bounds how many columns resolve at once.
	// Zero or less means runtime.GOMAXPROCS(0).
	Concurrency int
	// Tracer receives parse, resolve and row events. Nil means trace.Nop.
	Tracer trace.Tracer
	// Walker resolves column paths. Nil means a PathWalker.
	Walker Walker
}

// Engine drives flattening: parse definitions, resolve every column against
// the document, then materialize rows.
type Engine struct {
	concurrency int
	tracer      trace.Tracer
	walker      Walker
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		concurrency: opts.Concurrency,
		tracer:      opts.Tracer,
		walker:      opts.Walker,
	}
	if e.concurrency <= 0 {
		e.concurrency = runtime.GOMAXPROCS(0)
	}
	if e.tracer == nil {
		e.tracer = trace.Nop
	}
	if e.walker == nil {
		e.walker = NewPathWalker()
	}
	return e
}

// Flatten parses definitions and flattens doc with them.
func (e *Engine) Flatten(ctx context.Context, doc jsonv.Value, definitions string) (*table.Table, error) {
	return e.FlattenSet(ctx, doc, lang.ParseDefinitionSet(definitions))
}

// FlattenSet flattens doc with an already parsed definition set. Dropped
// lines are reported to the tracer; they are never an error on their own.
func (e *Engine) FlattenSet(ctx context.Context, doc jsonv.Value, set lang.DefinitionSet) (*table.Table, error) {
	for _, d := range set.Dropped {
		e.tracer.DefinitionDropped(ctx, d)
	}
	if set.Empty() {
		return nil, ErrNoDefinitions
	}
	for _, def := range set.Columns {
		e.tracer.DefinitionParsed(ctx, def.Field, def.Path.String(), def.Line)
	}

	columns, err := e.resolveColumns(ctx, doc, set.Columns)
	if err != nil {
		return nil, err
	}
	return table.MaterializeFunc(columns, func(r table.Row) {
		e.tracer.RowBuilt(ctx, r.ID)
	}), nil
}

// resolveColumns runs one walk per column. Each goroutine writes only its
// own slot of the result, so column order is the declaration order.
func (e *Engine) resolveColumns(ctx context.Context, doc jsonv.Value, defs []lang.ColumnDefinition) ([]table.Column, error) {
	columns := make([]table.Column, len(defs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, def := range defs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seq := e.walker.Walk(doc, def.Path)
			columns[i] = table.Column{Field: def.Field, Values: seq}
			e.tracer.PathResolved(gctx, def.Field, len(seq))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return columns, nil
}
