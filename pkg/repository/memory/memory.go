package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/types"
)

// Workbook is an in-memory tabular store for tests and development. It
// implements the same contract as the Sheets backend.
type Workbook struct {
	mu     sync.RWMutex
	tables map[string]*table
}

// New creates an empty in-memory workbook.
func New() *Workbook {
	return &Workbook{
		tables: make(map[string]*table),
	}
}

func (w *Workbook) Table(ctx context.Context, name string) (interfaces.Table, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	t, ok := w.tables[name]
	if !ok {
		return nil, goerr.Wrap(types.ErrTableMissing, "no such table", goerr.V(types.TableKey, name))
	}
	return t, nil
}

func (w *Workbook) CreateTable(ctx context.Context, name string, header []string) (interfaces.Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.tables[name]; ok {
		return nil, goerr.New("table already exists", goerr.V(types.TableKey, name))
	}

	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	t := &table{
		name: name,
		rows: [][]any{row},
	}
	w.tables[name] = t
	return t, nil
}

type table struct {
	mu   sync.RWMutex
	name string
	rows [][]any
}

func (t *table) Name() string {
	return t.name
}

func (t *table) Header(ctx context.Context) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.rows) == 0 {
		return nil, nil
	}
	header := make([]string, len(t.rows[0]))
	for i, v := range t.rows[0] {
		if s, ok := v.(string); ok {
			header[i] = s
		}
	}
	return header, nil
}

func (t *table) Size(ctx context.Context) (int, int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cols := 0
	for _, row := range t.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(t.rows), cols, nil
}

func (t *table) ReadRange(ctx context.Context, row, col, numRows, numCols int) ([][]any, error) {
	if row < 1 || col < 1 || numRows < 0 || numCols < 0 {
		return nil, goerr.New("range out of bounds",
			goerr.V(types.TableKey, t.name), goerr.V("row", row), goerr.V("col", col))
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	block := make([][]any, 0, numRows)
	for r := row; r < row+numRows; r++ {
		out := make([]any, numCols)
		if r <= len(t.rows) {
			src := t.rows[r-1]
			for c := col; c < col+numCols; c++ {
				if c <= len(src) {
					out[c-col] = src[c-1]
				}
			}
		}
		block = append(block, out)
	}
	return block, nil
}

func (t *table) WriteCell(ctx context.Context, row, col int, value any) error {
	if row < 1 || col < 1 {
		return goerr.New("cell out of bounds",
			goerr.V(types.TableKey, t.name), goerr.V("row", row), goerr.V("col", col))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.rows) < row {
		t.rows = append(t.rows, nil)
	}
	r := t.rows[row-1]
	for len(r) < col {
		r = append(r, nil)
	}
	r[col-1] = value
	t.rows[row-1] = r
	return nil
}

func (t *table) AppendRow(ctx context.Context, values []any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := make([]any, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}
