package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/agentic-research/ketl/api"
	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *table.Table {
	return table.Materialize([]table.Column{
		{Field: "Symbol", Values: []jsonv.Value{jsonv.String("IBM")}},
		{Field: "Key", Values: []jsonv.Value{jsonv.String("01. symbol"), jsonv.String("02. open")}},
		{Field: "Extra", Values: []jsonv.Value{jsonv.MustParse(`{"a":[1,2]}`)}},
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatTable,
		"table":    FormatTable,
		"CSV":      FormatCSV,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		" html ":   FormatHTML,
		"json":     FormatJSON,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Contains(t, err.Error(), "table, csv, markdown, html, json")
}

func TestWrite(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sample(), nil, FormatTable))
		out := buf.String()
		assert.Contains(t, out, "Symbol")
		assert.Contains(t, out, "02. open")
		assert.Contains(t, out, `{"a":[1,2]}`)
		assert.True(t, strings.HasSuffix(out, "(2 rows)\n"))
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sample(), nil, FormatCSV))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(strings.ToLower(lines[0]), "id,"), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "0,IBM,01. symbol,"), lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "1,IBM,02. open,"), lines[2])
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sample(), nil, FormatMarkdown))
		assert.Contains(t, buf.String(), "| 0 | IBM | 01. symbol |")
	})

	t.Run("html", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sample(), nil, FormatHTML))
		out := buf.String()
		assert.Contains(t, out, "<table")
		assert.Contains(t, strings.ToLower(out), ">id</th>")
		assert.Contains(t, out, "02. open")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		dropped := []api.DroppedLine{{Line: 2, Text: "x", Reason: "not a column declaration"}}
		require.NoError(t, Write(&buf, sample(), dropped, FormatJSON))

		var res api.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
		assert.Equal(t, []api.ColumnDescriptor{{Field: "Symbol"}, {Field: "Key"}, {Field: "Extra"}}, res.Columns)
		require.Len(t, res.Rows, 2)
		assert.JSONEq(t, `{"id":1,"Symbol":"IBM","Key":"02. open","Extra":{"a":[1,2]}}`, string(res.Rows[1]))
		assert.Equal(t, dropped, res.Dropped)
	})

	t.Run("unknown", func(t *testing.T) {
		err := Write(&bytes.Buffer{}, sample(), nil, Format("yaml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewPlainNotifier(&buf)

	n.Dropped([]api.DroppedLine{{Line: 3, Text: "junk", Reason: "not a column declaration"}})
	n.Valid(1, "Symbol", `{"a"}`)
	n.Error(errors.New("boom"))
	n.Info("%d rows", 4)

	assert.Equal(t, "line 3: not a column declaration (junk)\n"+
		"line 1: ok Symbol = {\"a\"}\n"+
		"error: boom\n"+
		"4 rows\n", buf.String())
}

func TestStylesFor_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	NewNotifier(&buf).Valid(2, "A", "x")
	assert.Equal(t, "line 2: ok A = x\n", buf.String())
}
