package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agentic-research/ketl/api"
)

// Recorder is a trace.Tracer that keeps every event as a string.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *Recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *Recorder) DefinitionParsed(_ context.Context, field, path string, line int) {
	r.add("parsed %s=%s@%d", field, path, line)
}

func (r *Recorder) DefinitionDropped(_ context.Context, d api.DroppedLine) {
	r.add("dropped %d: %s", d.Line, d.Reason)
}

func (r *Recorder) PathResolved(_ context.Context, field string, values int) {
	r.add("resolved %s: %d", field, values)
}

func (r *Recorder) RowBuilt(_ context.Context, id int) {
	r.add("row %d", id)
}

// Events returns the recorded events sorted, since columns resolve
// concurrently and their events interleave.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.events...)
	sort.Strings(out)
	return out
}
