package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agentic-research/ketl/internal/jsonv"
	_ "modernc.org/sqlite"
)

// DefaultRecordQuery selects (id, record) pairs from the conventional
// results table.
const DefaultRecordQuery = "SELECT id, record FROM results"

// StreamSQLite runs query against the database at dbPath and calls fn with
// the first two columns of every row, as raw strings, in row order.
func StreamSQLite(ctx context.Context, dbPath, query string, fn func(id, raw string) error) error {
	if query == "" {
		query = DefaultRecordQuery
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadSQLite reads every record selected by query and returns them as one
// object keyed by record id, in row order. Each record must be a JSON
// document. A repeated id keeps its first position and takes the last record.
func LoadSQLite(ctx context.Context, dbPath, query string) (jsonv.Value, error) {
	var members []jsonv.Member
	err := StreamSQLite(ctx, dbPath, query, func(id, raw string) error {
		rec, err := jsonv.ParseString(raw)
		if err != nil {
			return fmt.Errorf("parse record %s: %w", id, err)
		}
		members = append(members, jsonv.Member{Key: id, Value: rec})
		return nil
	})
	if err != nil {
		return jsonv.Null(), err
	}
	return jsonv.ObjectValue(jsonv.NewObject(members...)), nil
}
