package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/repository/memory"
	"github.com/secmon-lab/horae/pkg/repository/sheets"
)

func runWorkbookTest(t *testing.T, newWorkbook func(t *testing.T) interfaces.Workbook, tableName func(t *testing.T) string) {
	t.Helper()

	t.Run("Table fails for missing table", func(t *testing.T) {
		wb := newWorkbook(t)
		ctx := context.Background()

		_, err := wb.Table(ctx, "no-such-table")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrTableMissing)).True()
	})

	t.Run("CreateTable exposes the header row", func(t *testing.T) {
		wb := newWorkbook(t)
		ctx := context.Background()
		name := tableName(t)

		tbl, err := wb.CreateTable(ctx, name, []string{"alpha", "beta", "gamma"})
		gt.NoError(t, err).Required()

		header, err := tbl.Header(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, header).Equal([]string{"alpha", "beta", "gamma"})

		rows, cols, err := tbl.Size(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, rows).Equal(1)
		gt.Value(t, cols).Equal(3)
	})

	t.Run("AppendRow extends the used range", func(t *testing.T) {
		wb := newWorkbook(t)
		ctx := context.Background()
		name := tableName(t)

		tbl, err := wb.CreateTable(ctx, name, []string{"alpha", "beta"})
		gt.NoError(t, err).Required()

		gt.NoError(t, tbl.AppendRow(ctx, []any{"a1", "b1"})).Required()
		gt.NoError(t, tbl.AppendRow(ctx, []any{"a2", "b2"})).Required()

		rows, _, err := tbl.Size(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, rows).Equal(3)

		block, err := tbl.ReadRange(ctx, 2, 1, 2, 2)
		gt.NoError(t, err).Required()
		gt.Value(t, block[0][0]).Equal(any("a1"))
		gt.Value(t, block[1][1]).Equal(any("b2"))
	})

	t.Run("WriteCell overwrites a single cell", func(t *testing.T) {
		wb := newWorkbook(t)
		ctx := context.Background()
		name := tableName(t)

		tbl, err := wb.CreateTable(ctx, name, []string{"alpha", "beta"})
		gt.NoError(t, err).Required()
		gt.NoError(t, tbl.AppendRow(ctx, []any{"a1", "b1"})).Required()

		gt.NoError(t, tbl.WriteCell(ctx, 2, 2, "patched")).Required()

		block, err := tbl.ReadRange(ctx, 2, 1, 1, 2)
		gt.NoError(t, err).Required()
		gt.Value(t, block[0][0]).Equal(any("a1"))
		gt.Value(t, block[0][1]).Equal(any("patched"))
	})

	t.Run("ReadRange pads beyond the used range", func(t *testing.T) {
		wb := newWorkbook(t)
		ctx := context.Background()
		name := tableName(t)

		tbl, err := wb.CreateTable(ctx, name, []string{"alpha"})
		gt.NoError(t, err).Required()
		gt.NoError(t, tbl.AppendRow(ctx, []any{"a1"})).Required()

		block, err := tbl.ReadRange(ctx, 2, 1, 3, 4)
		gt.NoError(t, err).Required()
		gt.Array(t, block).Length(3)
		gt.Value(t, block[0][0]).Equal(any("a1"))
		gt.Value(t, block[0][3]).Equal(any(nil))
		gt.Value(t, block[2][0]).Equal(any(nil))
	})
}

func TestMemoryWorkbook(t *testing.T) {
	runWorkbookTest(t,
		func(t *testing.T) interfaces.Workbook {
			return memory.New()
		},
		func(t *testing.T) string {
			return "TestTable"
		},
	)
}

func TestSheetsWorkbook(t *testing.T) {
	spreadsheetID := os.Getenv("TEST_SHEETS_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("TEST_SHEETS_SPREADSHEET_ID not set")
	}
	credentials := os.Getenv("TEST_SHEETS_CREDENTIALS")
	if credentials == "" {
		t.Skip("TEST_SHEETS_CREDENTIALS not set")
	}

	ctx := context.Background()
	wb, err := sheets.New(ctx, spreadsheetID, credentials)
	gt.NoError(t, err).Required()

	runWorkbookTest(t,
		func(t *testing.T) interfaces.Workbook {
			return wb
		},
		func(t *testing.T) string {
			// Unique per subtest run; sheets in the test spreadsheet accumulate.
			return fmt.Sprintf("t%d", time.Now().UnixNano())
		},
	)
}
