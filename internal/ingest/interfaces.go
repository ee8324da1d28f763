package ingest

import (
	"context"

	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
	"github.com/agentic-research/ketl/internal/resolve"
)

// Walker evaluates one parsed path against a document and returns the values
// it reaches, in traversal order. Implementations must not mutate doc: the
// engine calls Walk for every column concurrently on the same document.
type Walker interface {
	Walk(doc jsonv.Value, p lang.Path) resolve.Sequence
}

// Source produces the document a definition set is flattened against.
type Source interface {
	Load(ctx context.Context) (jsonv.Value, error)
}
