package ingest

import (
	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
	"github.com/agentic-research/ketl/internal/resolve"
)

// PathWalker implements Walker with the column-path resolver.
type PathWalker struct{}

func NewPathWalker() *PathWalker {
	return &PathWalker{}
}

// Walk implements Walker.
func (w *PathWalker) Walk(doc jsonv.Value, p lang.Path) resolve.Sequence {
	return resolve.Resolve(doc, p)
}

var _ Walker = (*PathWalker)(nil)
