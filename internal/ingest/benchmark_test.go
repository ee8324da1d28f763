package ingest

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
)

func benchDoc(n int) jsonv.Value {
	var b strings.Builder
	b.WriteString(`{"series": {`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `"day-%05d": {"open": %d, "close": %d, "tags": ["a", "b"]}`, i, i, i+1)
	}
	b.WriteString(`}}`)
	return jsonv.MustParse(b.String())
}

const benchDefs = `
Column Day = NodeName.series.*
Column Open = series.*.open
Column Close = series.*.close
Column Pos = series.*.$index
Column First = series.InnerNode1.open
`

func BenchmarkPathWalker_Walk(b *testing.B) {
	doc := benchDoc(1000)
	p := lang.ParsePath("series.*.close")
	w := NewPathWalker()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.Walk(doc, p)
	}
}

func BenchmarkEngine_Flatten(b *testing.B) {
	doc := benchDoc(5000)
	set := lang.ParseDefinitionSet(benchDefs)

	for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			engine := NewEngine(Options{Concurrency: workers})
			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := engine.FlattenSet(ctx, doc, set); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
