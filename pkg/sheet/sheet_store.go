package sheet

import (
	"context"
	"errors"
)

var (
	ErrSheetNotFound   = errors.New("sheet not found")
	ErrRowOutOfRange   = errors.New("row out of range")
	ErrColumnNotFound  = errors.New("column not found")
	ErrInvalidPosition = errors.New("invalid cell position")
)

type (
	// Store is a workbook of named sheets. Row 0 of every sheet is its header.
	// Single mutations are serialized by the backend; nothing spans calls.
	Store interface {
		// EnsureSheet creates the sheet with the given header when it is missing
		// or has no rows at all. It reports whether anything was created.
		EnsureSheet(ctx context.Context, sheet string, header []string) (bool, error)
		// Rows returns every row including the header, or ErrSheetNotFound.
		Rows(ctx context.Context, sheet string) ([][]string, error)
		AppendRow(ctx context.Context, sheet string, row []string) error
		// UpdateCell writes one cell. row is an index into Rows, col is zero-based.
		UpdateCell(ctx context.Context, sheet string, row, col int, value string) error
	}
)
