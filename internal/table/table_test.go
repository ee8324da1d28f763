package table

import (
	"encoding/json"
	"testing"

	"github.com/agentic-research/ketl/api"
	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strs(ss ...string) []jsonv.Value {
	out := make([]jsonv.Value, len(ss))
	for i, s := range ss {
		out[i] = jsonv.String(s)
	}
	return out
}

func rowJSON(t *testing.T, r Row) string {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	return string(b)
}

func TestMaterialize(t *testing.T) {
	t.Run("single values make one row", func(t *testing.T) {
		tbl := Materialize([]Column{
			{Field: "Symbol", Values: strs("IBM")},
			{Field: "Open", Values: strs("120.1")},
		})
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, `{"id":0,"Symbol":"IBM","Open":"120.1"}`, rowJSON(t, tbl.Rows[0]))
		assert.Equal(t, []api.ColumnDescriptor{{Field: "Symbol"}, {Field: "Open"}}, tbl.Columns)
	})

	t.Run("short column broadcasts its first value", func(t *testing.T) {
		tbl := Materialize([]Column{
			{Field: "Symbol", Values: strs("IBM")},
			{Field: "Key", Values: strs("open", "close", "high")},
		})
		require.Len(t, tbl.Rows, 3)
		for i, r := range tbl.Rows {
			assert.Equal(t, i, r.ID)
			sym, ok := r.Get("Symbol")
			require.True(t, ok)
			assert.Equal(t, "IBM", sym.Str())
		}
		key, _ := tbl.Rows[2].Get("Key")
		assert.Equal(t, "high", key.Str())
	})

	t.Run("partially short column repeats first value", func(t *testing.T) {
		tbl := Materialize([]Column{
			{Field: "A", Values: strs("a0", "a1")},
			{Field: "B", Values: strs("b0", "b1", "b2")},
		})
		a, _ := tbl.Rows[2].Get("A")
		assert.Equal(t, "a0", a.Str())
	})

	t.Run("empty column yields null", func(t *testing.T) {
		tbl := Materialize([]Column{
			{Field: "A", Values: nil},
			{Field: "B", Values: strs("x", "y")},
		})
		require.Len(t, tbl.Rows, 2)
		for _, r := range tbl.Rows {
			a, ok := r.Get("A")
			require.True(t, ok)
			assert.True(t, a.IsNull())
		}
	})

	t.Run("zero-width input still yields one row", func(t *testing.T) {
		tbl := Materialize([]Column{{Field: "A"}})
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, `{"id":0,"A":null}`, rowJSON(t, tbl.Rows[0]))

		tbl = Materialize(nil)
		require.Len(t, tbl.Rows, 1)
		assert.Empty(t, tbl.Rows[0].Cells())
	})
}

func TestMaterialize_Rectangular(t *testing.T) {
	cols := []Column{
		{Field: "A", Values: strs("1")},
		{Field: "B", Values: strs("1", "2", "3", "4")},
		{Field: "C"},
		{Field: "D", Values: strs("1", "2")},
	}
	tbl := Materialize(cols)

	assert.Len(t, tbl.Rows, RowCount(cols))
	assert.Equal(t, 4, RowCount(cols))
	for _, r := range tbl.Rows {
		assert.Len(t, r.Cells(), len(cols))
		for _, f := range tbl.Fields() {
			_, ok := r.Get(f)
			assert.True(t, ok)
		}
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	cols := []Column{
		{Field: "A", Values: strs("x")},
		{Field: "B", Values: strs("1", "2")},
	}
	first := Materialize(cols)
	second := Materialize(cols)
	assert.Equal(t, first, second)
}

func TestMaterializeFunc(t *testing.T) {
	var ids []int
	MaterializeFunc([]Column{{Field: "A", Values: strs("1", "2", "3")}}, func(r Row) {
		ids = append(ids, r.ID)
	})
	assert.Equal(t, []int{0, 1, 2}, ids)
}

func TestRow_MarshalJSON_IDColumnWins(t *testing.T) {
	tbl := Materialize([]Column{{Field: "id", Values: strs("custom")}, {Field: "x", Values: strs("1")}})
	assert.Equal(t, `{"id":"custom","x":"1"}`, rowJSON(t, tbl.Rows[0]))
}

func TestTable_Result(t *testing.T) {
	tbl := Materialize([]Column{{Field: "A", Values: strs("x", "y")}})
	dropped := []api.DroppedLine{{Line: 3, Text: "junk", Reason: "not a column declaration"}}

	res, err := tbl.Result(dropped)
	require.NoError(t, err)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": [{"field": "A"}],
		"rows": [{"id": 0, "A": "x"}, {"id": 1, "A": "y"}],
		"dropped": [{"line": 3, "text": "junk", "reason": "not a column declaration"}]
	}`, string(out))
}
