package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/agentic-research/ketl/api"
	"github.com/agentic-research/ketl/internal/table"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Write renders t to w in format f. Every format leads with the synthetic
// row id column unless t has its own "id" column. Dropped definition lines
// are only part of the JSON payload; the other formats carry rows alone.
func Write(w io.Writer, t *table.Table, dropped []api.DroppedLine, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, t, dropped)
	case FormatCSV:
		_, err := fmt.Fprintln(w, newWriter(t).RenderCSV())
		return err
	case FormatMarkdown:
		_, err := fmt.Fprintln(w, newWriter(t).RenderMarkdown())
		return err
	case FormatHTML:
		_, err := fmt.Fprintln(w, newWriter(t).RenderHTML())
		return err
	case FormatTable, "":
		return writeBox(w, t)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
}

func writeBox(w io.Writer, t *table.Table) error {
	tw := newWriter(t)
	tw.SetStyle(prettytable.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	return err
}

func writeJSON(w io.Writer, t *table.Table, dropped []api.DroppedLine) error {
	res, err := t.Result(dropped)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// newWriter loads t into a go-pretty writer with the synthetic row id as the
// first column unless a column already uses that name.
func newWriter(t *table.Table) prettytable.Writer {
	fields := t.Fields()
	withID := !slices.Contains(fields, table.IDField)

	tw := prettytable.NewWriter()
	header := make(prettytable.Row, 0, len(fields)+1)
	if withID {
		header = append(header, table.IDField)
	}
	for _, f := range fields {
		header = append(header, f)
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(prettytable.Row, 0, len(fields)+1)
		if withID {
			row = append(row, r.ID)
		}
		for _, c := range r.Cells() {
			row = append(row, c.Text())
		}
		tw.AppendRow(row)
	}
	return tw
}
