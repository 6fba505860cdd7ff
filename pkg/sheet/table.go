package sheet

import (
	"context"
	"fmt"
	"strings"
)

// Table is a snapshot of a sheet with columns addressed by header name.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

func NewTable(name string, rows [][]string) *Table {
	t := &Table{Name: name, index: map[string]int{}}
	if len(rows) == 0 {
		return t
	}
	t.Header = rows[0]
	t.Rows = rows[1:]
	for i, h := range t.Header {
		t.index[strings.TrimSpace(h)] = i
	}
	return t
}

// Load reads a sheet into a Table.
func Load(ctx context.Context, store Store, name string) (*Table, error) {
	rows, err := store.Rows(ctx, name)
	if err != nil {
		return nil, err
	}
	return NewTable(name, rows), nil
}

// Column returns the zero-based index of a header.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Get returns the cell of a data row by header name, "" when absent.
func (t *Table) Get(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	i, ok := t.index[column]
	if !ok || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// StoreRow converts a data row index into the store's row index.
func (t *Table) StoreRow(row int) int { return row + 1 }

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Build lays out values by header name. Unknown headers stay empty.
func (t *Table) Build(values map[string]string) []string {
	row := make([]string, len(t.Header))
	for i, h := range t.Header {
		row[i] = values[strings.TrimSpace(h)]
	}
	return row
}

// Cell is a pending write addressed by header name.
type Cell struct {
	Column string
	Value  string
}

// Write applies cells to one data row, in order. Every column is resolved
// before the first write, so a missing column leaves the row untouched.
func (t *Table) Write(ctx context.Context, store Store, row int, cells ...Cell) error {
	cols := make([]int, len(cells))
	for i, c := range cells {
		col, ok := t.Column(c.Column)
		if !ok {
			return fmt.Errorf("%s.%s: %w", t.Name, c.Column, ErrColumnNotFound)
		}
		cols[i] = col
	}

	for i, c := range cells {
		if err := store.UpdateCell(ctx, t.Name, t.StoreRow(row), cols[i], c.Value); err != nil {
			return fmt.Errorf("update %s row %d: %w", t.Name, row, err)
		}
	}
	return nil
}
