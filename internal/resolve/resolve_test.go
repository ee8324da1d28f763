package resolve

import (
	"fmt"
	"testing"

	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteDoc = `{"Global Quote": {"01. symbol": "IBM", "02. open": "120.1"}}`

func texts(seq Sequence) []string {
	out := make([]string, len(seq))
	for i, v := range seq {
		out[i] = v.Text()
	}
	return out
}

func resolve(t *testing.T, doc, path string) Sequence {
	t.Helper()
	require.True(t, lang.IsValid(path), "invalid path %q", path)
	return Resolve(jsonv.MustParse(doc), lang.ParsePath(path))
}

func TestResolve_Quote(t *testing.T) {
	t.Run("literal chain", func(t *testing.T) {
		assert.Equal(t, []string{"IBM"}, texts(resolve(t, quoteDoc, `{"Global Quote"}.{"01. symbol"}`)))
	})

	t.Run("node names", func(t *testing.T) {
		assert.Equal(t, []string{"01. symbol", "02. open"},
			texts(resolve(t, quoteDoc, `NodeName.{"Global Quote"}.*`)))
	})

	t.Run("values", func(t *testing.T) {
		assert.Equal(t, []string{"IBM", "120.1"},
			texts(resolve(t, quoteDoc, `{"Global Quote"}.*`)))
	})

	t.Run("missing key", func(t *testing.T) {
		seq := resolve(t, quoteDoc, `{"Missing"}.{"key"}`)
		require.Len(t, seq, 1)
		assert.True(t, seq[0].IsNull())
	})

	t.Run("node name of literal chain is the last key", func(t *testing.T) {
		assert.Equal(t, []string{"01. symbol"},
			texts(resolve(t, quoteDoc, `NodeName.{"Global Quote"}.{"01. symbol"}`)))
	})

	t.Run("container value", func(t *testing.T) {
		assert.Equal(t, []string{`{"01. symbol":"IBM","02. open":"120.1"}`},
			texts(resolve(t, quoteDoc, `{"Global Quote"}`)))
	})
}

func TestResolve_NoWildcardYieldsOne(t *testing.T) {
	doc := `{"a": {"b": [1, 2], "c": "x"}, "n": null}`
	for _, p := range []string{
		`a`, `a.b`, `a.c`, `a.c.deeper`, `n.x`, `missing`, `a.InnerNode1`,
		`a.InnerNode9`, `NodeName.a.c`, `$value`, `a.$key`, `a.InnerNode2.$key`,
	} {
		t.Run(p, func(t *testing.T) {
			assert.Len(t, resolve(t, doc, p), 1)
		})
	}
}

func TestResolve_TrailingWildcardCount(t *testing.T) {
	doc := `{"obj": {"z": 1, "a": {"deep": true}, "m": [1, 2, 3]}, "empty": {}, "arr": [10, 20]}`

	assert.Equal(t, []string{"1", `{"deep":true}`, "[1,2,3]"}, texts(resolve(t, doc, `obj.*`)))
	assert.Equal(t, []string{"z", "a", "m"}, texts(resolve(t, doc, `NodeName.obj.*`)))
	assert.Empty(t, resolve(t, doc, `empty.*`))
	assert.Equal(t, []string{"10", "20"}, texts(resolve(t, doc, `arr.*`)))
	assert.Equal(t, []string{"0", "1"}, texts(resolve(t, doc, `NodeName.arr.*`)))
}

func TestResolve_NodeNamePreservesCount(t *testing.T) {
	doc := `{"rows": [{"a": 1, "b": 2}, {"a": 3}], "x": {"y": {"z": 1}}}`
	for _, p := range []string{`rows.*.a`, `rows.*.*`, `x.y.z`, `x.*.*`, `rows.InnerNode2.*`, `missing.*`} {
		t.Run(p, func(t *testing.T) {
			plain := resolve(t, doc, p)
			named := resolve(t, doc, lang.NodeNamePrefix+p)
			assert.Len(t, named, len(plain))
		})
	}
}

func TestResolve_InnerNode(t *testing.T) {
	doc := `{"o": {"a": "A", "b": "B", "c": "C"}, "arr": ["x", "y"]}`

	assert.Equal(t, resolve(t, doc, `o.b`), resolve(t, doc, `o.InnerNode2`))
	assert.Equal(t, []string{"b"}, texts(resolve(t, doc, `NodeName.o.InnerNode2`)))
	assert.Equal(t, []string{"y"}, texts(resolve(t, doc, `arr.InnerNode2`)))
	assert.Equal(t, []string{"null"}, texts(resolve(t, doc, `o.InnerNode4`)))
	assert.Equal(t, []string{"null"}, texts(resolve(t, doc, `o.a.InnerNode1`)))
}

func TestResolve_ContextTokens(t *testing.T) {
	doc := `{"prices": {"AAPL": {"close": 1}, "MSFT": {"close": 2}}, "list": ["p", "q"]}`

	t.Run("key of innermost wildcard", func(t *testing.T) {
		assert.Equal(t, []string{"AAPL", "MSFT"}, texts(resolve(t, doc, `prices.*.$key`)))
	})

	t.Run("index of innermost wildcard", func(t *testing.T) {
		assert.Equal(t, []string{"0", "1"}, texts(resolve(t, doc, `prices.*.$index`)))
	})

	t.Run("nested wildcards bind the innermost", func(t *testing.T) {
		assert.Equal(t, []string{"close", "close"}, texts(resolve(t, doc, `prices.*.*.$key`)))
		assert.Equal(t, []string{"0", "0"}, texts(resolve(t, doc, `prices.*.*.$index`)))
	})

	t.Run("array keys are indices", func(t *testing.T) {
		seq := resolve(t, doc, `list.*.$key`)
		assert.Equal(t, []string{"0", "1"}, texts(seq))
		assert.Equal(t, jsonv.KindNumber, seq[0].Kind())
	})

	t.Run("inner node binds context", func(t *testing.T) {
		assert.Equal(t, []string{"MSFT"}, texts(resolve(t, doc, `prices.InnerNode2.$key`)))
		assert.Equal(t, []string{"1"}, texts(resolve(t, doc, `prices.InnerNode2.$index`)))
	})

	t.Run("value token", func(t *testing.T) {
		assert.Equal(t, []string{`{"close":1}`, `{"close":2}`}, texts(resolve(t, doc, `prices.*.$value`)))
	})

	t.Run("tokens are terminal", func(t *testing.T) {
		assert.Equal(t, []string{"AAPL", "MSFT"}, texts(resolve(t, doc, `prices.*.$key.close`)))
	})

	t.Run("outside a fan-out", func(t *testing.T) {
		assert.Equal(t, []string{"null"}, texts(resolve(t, doc, `prices.$key`)))
		assert.Equal(t, []string{"null"}, texts(resolve(t, doc, `$index`)))
	})
}

func TestResolve_MissesDoNotAbortSiblings(t *testing.T) {
	doc := `{"items": [{"name": "a"}, {"other": 1}, "scalar", {"name": "c"}]}`
	assert.Equal(t, []string{"a", "null", "null", "c"}, texts(resolve(t, doc, `items.*.name`)))
}

func TestResolve_WildcardOnScalar(t *testing.T) {
	assert.Equal(t, []string{"null"}, texts(resolve(t, `{"a": 5}`, `a.*`)))
}

func TestResolve_Deterministic(t *testing.T) {
	doc := jsonv.MustParse(`{"k3": {"x": 1}, "k1": {"x": 2}, "k2": {"x": 3}}`)
	p := lang.ParsePath(`*.x`)
	first := Resolve(doc, p)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Resolve(doc, p))
	}
	assert.Equal(t, []string{"1", "2", "3"}, texts(first))
}

// Paths with a JSONPath equivalent select the same values as ojg does.
func TestResolve_AgreesWithJSONPath(t *testing.T) {
	doc := `{"data": [{"id": 1, "tags": ["a", "b"]}, {"id": 2, "tags": ["c"]}], "meta": {"count": 2}}`
	native, err := oj.ParseString(doc)
	require.NoError(t, err)

	for _, p := range []string{`data.*.id`, `data.*.tags.*`, `meta.count`, `data.*.tags`} {
		t.Run(p, func(t *testing.T) {
			path := lang.ParsePath(p)
			x, ok := path.JSONPath()
			require.True(t, ok)

			var want []string
			for _, v := range x.Get(native) {
				want = append(want, oj.JSON(v))
			}
			var got []string
			for _, v := range Resolve(jsonv.MustParse(doc), path) {
				got = append(got, v.String())
			}
			assert.Equal(t, want, got, fmt.Sprintf("jsonpath %s", x))
		})
	}
}
