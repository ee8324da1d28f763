package api

import "encoding/json"

// ColumnDescriptor is the header metadata paired with flattened rows.
type ColumnDescriptor struct {
	// Field is the column name from the `Column <field> = ...` declaration.
	Field string `json:"field"`
}

// DroppedLine records a definition line that was skipped during parsing.
// Dropping is not an error: authoring is interactive, so the line is
// reported and the rest of the definitions still apply.
type DroppedLine struct {
	// Line is the 1-based line number in the definition text.
	Line int `json:"line"`
	// Text is the line as written.
	Text string `json:"text"`
	// Reason says why the line was skipped.
	Reason string `json:"reason"`
}

// Result is the payload handed back to a table-rendering collaborator.
type Result struct {
	// Columns in declaration order.
	Columns []ColumnDescriptor `json:"columns"`
	// Rows encoded as JSON objects: {"id": n, "<field>": value, ...}.
	Rows []json.RawMessage `json:"rows"`
	// Dropped definition lines, if any.
	Dropped []DroppedLine `json:"dropped,omitempty"`
}
