package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/table"
	_ "modernc.org/sqlite"
)

// DefaultExportTable is the table name used when none is given.
const DefaultExportTable = "rows"

// SQLiteWriter exports flattened tables into a SQLite database, one SQL
// table per call to WriteTable. Scalars keep their type; arrays and objects
// are stored as compact JSON text.
type SQLiteWriter struct {
	db        *sql.DB
	batchSize int
}

// NewSQLiteWriter opens (or creates) the database at dbPath.
func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Performance tuning for bulk insert
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteWriter{db: db, batchSize: 10000}, nil
}

// WriteTable replaces the SQL table name with the rows of t. The synthetic
// row id becomes the integer primary key "id" unless t has its own column
// of that name in any letter case. SQLite folds column names, so a field
// that differs from an earlier one only in case is stored as <field>_2,
// <field>_3 and so on.
func (w *SQLiteWriter) WriteTable(ctx context.Context, name string, t *table.Table) error {
	if name == "" {
		name = DefaultExportTable
	}
	fields := columnNames(t.Fields())
	withID := !slices.ContainsFunc(fields, func(f string) bool {
		return foldASCII(f) == table.IDField
	})

	if _, err := w.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("drop table %s: %w", name, err)
	}
	if _, err := w.db.ExecContext(ctx, createStatement(name, fields, withID)); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	insert := insertStatement(name, fields, withID)
	for start := 0; start < len(t.Rows); start += w.batchSize {
		end := min(start+w.batchSize, len(t.Rows))
		if err := w.writeBatch(ctx, insert, t.Rows[start:end], withID); err != nil {
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}
	return nil
}

func (w *SQLiteWriter) writeBatch(ctx context.Context, insert string, rows []table.Row, withID bool) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }() // safe to ignore

	for _, r := range rows {
		cells := r.Cells()
		args := make([]any, 0, len(cells)+1)
		if withID {
			args = append(args, r.ID)
		}
		for _, c := range cells {
			args = append(args, sqlValue(c))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("row %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

// columnNames maps fields to SQL column names that stay distinct under
// SQLite's ASCII case folding.
func columnNames(fields []string) []string {
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		name := f
		for n := 2; seen[foldASCII(name)]; n++ {
			name = f + "_" + strconv.Itoa(n)
		}
		seen[foldASCII(name)] = true
		out = append(out, name)
	}
	return out
}

func foldASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, s)
}

func createStatement(name string, fields []string, withID bool) string {
	cols := make([]string, 0, len(fields)+1)
	if withID {
		cols = append(cols, quoteIdent(table.IDField)+" INTEGER PRIMARY KEY")
	}
	for _, f := range fields {
		cols = append(cols, quoteIdent(f))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(cols, ", "))
}

func insertStatement(name string, fields []string, withID bool) string {
	n := len(fields)
	cols := make([]string, 0, n+1)
	if withID {
		cols = append(cols, quoteIdent(table.IDField))
	}
	for _, f := range fields {
		cols = append(cols, quoteIdent(f))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(name), strings.Join(cols, ", "), marks)
}

// sqlValue maps a cell to the driver value SQLite stores for it.
func sqlValue(v jsonv.Value) any {
	switch v.Kind() {
	case jsonv.KindNull:
		return nil
	case jsonv.KindBool:
		if v.Bool() {
			return int64(1)
		}
		return int64(0)
	case jsonv.KindNumber:
		if n, err := strconv.ParseInt(v.Literal(), 10, 64); err == nil {
			return n
		}
		return v.Float64()
	case jsonv.KindString:
		return v.Str()
	}
	return v.String()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
