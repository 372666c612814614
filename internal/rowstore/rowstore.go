// Package rowstore abstracts the remote spreadsheet used as the site's
// database. Tables are sheets, the first row holds column names, and every
// lookup is a linear scan. There are no transactions and no concurrency
// control; Save is read-modify-write, last write wins.
package rowstore

import (
	"context"
	"errors"
)

var ErrRowNotFound = errors.New("row not found")

// Row is a handle to a previously scanned row.
type Row interface {
	// Get returns the value in the named column, "" if absent.
	Get(column string) string
	// Set stages a value; it is not persisted until Save.
	Set(column, value string)
	// Fields returns a copy of the row's current column values.
	Fields() map[string]string
	// Save writes the staged values back. Last write wins; a concurrent
	// Save to the same row can be lost.
	Save(ctx context.Context) error
	// Delete removes the row from its table.
	Delete(ctx context.Context) error
}

// Store is the tabular store contract.
type Store interface {
	// Tables lists the table names the store knows about.
	Tables(ctx context.Context) ([]string, error)
	// Scan returns every row of a table in sheet order.
	Scan(ctx context.Context, table string) ([]Row, error)
	// Append adds a new row holding the given column values.
	Append(ctx context.Context, table string, fields map[string]string) error
}
