// Package table turns per-column value sequences of unequal length into a
// rectangular set of rows.
package table

import (
	"bytes"
	"encoding/json"

	"github.com/agentic-research/ketl/api"
	"github.com/agentic-research/ketl/internal/jsonv"
)

// IDField is the JSON name of the synthetic row id.
const IDField = "id"

// Column is one field together with its resolved values.
type Column struct {
	Field  string
	Values []jsonv.Value
}

// Row is one output record: a synthetic 0-based ID and a value for every
// column of the table it belongs to.
type Row struct {
	ID     int
	fields []string // shared with the table, never mutated
	cells  []jsonv.Value
}

// Get returns the cell for field.
func (r Row) Get(field string) (jsonv.Value, bool) {
	for i, f := range r.fields {
		if f == field {
			return r.cells[i], true
		}
	}
	return jsonv.Null(), false
}

// Cells returns a copy of the cells in column order.
func (r Row) Cells() []jsonv.Value {
	out := make([]jsonv.Value, len(r.cells))
	copy(out, r.cells)
	return out
}

// MarshalJSON encodes the row as {"id": n, "<field>": value, ...} in column
// order. A column named "id" replaces the synthetic id.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if _, shadowed := r.Get(IDField); !shadowed {
		buf.WriteString(`"id":`)
		buf.WriteString(jsonv.Int(r.ID).Literal())
		first = false
	}
	for i, f := range r.fields {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := r.cells[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Table is the materialized output: column descriptors plus rows.
type Table struct {
	Columns []api.ColumnDescriptor
	Rows    []Row
}

// Fields returns the column names in order.
func (t *Table) Fields() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Field
	}
	return out
}

// Result converts the table to the boundary payload.
func (t *Table) Result(dropped []api.DroppedLine) (api.Result, error) {
	res := api.Result{
		Columns: t.Columns,
		Rows:    make([]json.RawMessage, 0, len(t.Rows)),
		Dropped: dropped,
	}
	for _, r := range t.Rows {
		b, err := r.MarshalJSON()
		if err != nil {
			return api.Result{}, err
		}
		res.Rows = append(res.Rows, b)
	}
	return res, nil
}

// RowCount returns max(1, longest column), the number of rows Materialize
// produces for columns.
func RowCount(columns []Column) int {
	n := 1
	for _, c := range columns {
		n = max(n, len(c.Values))
	}
	return n
}

// Materialize builds one row per index up to RowCount. A column shorter than
// the table repeats its first value; an empty column yields null.
func Materialize(columns []Column) *Table {
	return MaterializeFunc(columns, nil)
}

// MaterializeFunc is Materialize with a callback invoked for every finished
// row, in order.
func MaterializeFunc(columns []Column, onRow func(Row)) *Table {
	fields := make([]string, len(columns))
	t := &Table{Columns: make([]api.ColumnDescriptor, len(columns))}
	for i, c := range columns {
		fields[i] = c.Field
		t.Columns[i] = api.ColumnDescriptor{Field: c.Field}
	}

	n := RowCount(columns)
	t.Rows = make([]Row, n)
	for i := 0; i < n; i++ {
		row := Row{ID: i, fields: fields, cells: make([]jsonv.Value, len(columns))}
		for j, c := range columns {
			row.cells[j] = cell(c.Values, i)
		}
		t.Rows[i] = row
		if onRow != nil {
			onRow(row)
		}
	}
	return t
}

func cell(values []jsonv.Value, i int) jsonv.Value {
	switch {
	case i < len(values):
		return values[i]
	case len(values) > 0:
		return values[0]
	}
	return jsonv.Null()
}
