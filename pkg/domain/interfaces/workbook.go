package interfaces

import "context"

// Workbook is the backing tabular store: a set of named tables with a
// header-defined schema. It is the sole system of record; no caching is kept
// between calls so that external schema edits are picked up immediately.
type Workbook interface {
	// Table returns the named table, or types.ErrTableMissing if it does
	// not exist.
	Table(ctx context.Context, name string) (Table, error)

	// CreateTable creates a new table with the given header row. Used only
	// for provisioning.
	CreateTable(ctx context.Context, name string, header []string) (Table, error)
}

// Table is one rectangular block of cells. Rows and columns are 1-based;
// row 1 is the header. Cell values are backend-native: strings, bools,
// time.Time (in-memory) or spreadsheet serial numbers (Sheets).
type Table interface {
	Name() string

	// Header returns the header row values.
	Header(ctx context.Context) ([]string, error)

	// Size returns the used row and column counts, header included.
	Size(ctx context.Context) (rows, cols int, err error)

	// ReadRange reads a rectangular block starting at (row, col).
	ReadRange(ctx context.Context, row, col, numRows, numCols int) ([][]any, error)

	// WriteCell overwrites a single cell.
	WriteCell(ctx context.Context, row, col int, value any) error

	// AppendRow appends a full row after the last used row.
	AppendRow(ctx context.Context, values []any) error
}
