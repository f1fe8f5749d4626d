package sheets

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Workbook is a Google Sheets backed tabular store. Each method issues fresh
// API calls; nothing is cached, so edits made directly in the spreadsheet are
// visible to the next operation.
type Workbook struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New creates a Sheets workbook for the given spreadsheet. An empty
// credentialsFile falls back to Application Default Credentials.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Workbook, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service")
	}

	return &Workbook{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (w *Workbook) Table(ctx context.Context, name string) (interfaces.Table, error) {
	ss, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get spreadsheet", goerr.V("spreadsheet_id", w.spreadsheetID))
	}

	for _, sheet := range ss.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return &table{wb: w, name: name}, nil
		}
	}
	return nil, goerr.Wrap(types.ErrTableMissing, "no such sheet", goerr.V(types.TableKey, name))
}

func (w *Workbook) CreateTable(ctx context.Context, name string, header []string) (interfaces.Table, error) {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return nil, goerr.Wrap(err, "failed to add sheet", goerr.V(types.TableKey, name))
	}

	t := &table{wb: w, name: name}
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := t.writeRange(ctx, 1, 1, [][]any{row}); err != nil {
		return nil, goerr.Wrap(err, "failed to write header row", goerr.V(types.TableKey, name))
	}
	return t, nil
}

type table struct {
	wb   *Workbook
	name string
}

func (t *table) Name() string {
	return t.name
}

func (t *table) Header(ctx context.Context) ([]string, error) {
	resp, err := t.wb.svc.Spreadsheets.Values.Get(t.wb.spreadsheetID, t.a1("1:1")).
		Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read header row", goerr.V(types.TableKey, t.name))
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}
	header := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		header[i] = fmt.Sprint(v)
	}
	return header, nil
}

func (t *table) Size(ctx context.Context) (int, int, error) {
	resp, err := t.wb.svc.Spreadsheets.Values.Get(t.wb.spreadsheetID, t.a1("")).
		Context(ctx).Do()
	if err != nil {
		return 0, 0, goerr.Wrap(err, "failed to read sheet", goerr.V(types.TableKey, t.name))
	}

	cols := 0
	for _, row := range resp.Values {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(resp.Values), cols, nil
}

func (t *table) ReadRange(ctx context.Context, row, col, numRows, numCols int) ([][]any, error) {
	rng := fmt.Sprintf("%s%d:%s%d", colName(col), row, colName(col+numCols-1), row+numRows-1)
	resp, err := t.wb.svc.Spreadsheets.Values.Get(t.wb.spreadsheetID, t.a1(rng)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read range",
			goerr.V(types.TableKey, t.name), goerr.V("range", rng))
	}

	// The API trims trailing empty cells and rows; pad back to the
	// requested rectangle so callers can index by column position.
	block := make([][]any, numRows)
	for r := range block {
		out := make([]any, numCols)
		if r < len(resp.Values) {
			copy(out, resp.Values[r])
		}
		block[r] = out
	}
	return block, nil
}

func (t *table) WriteCell(ctx context.Context, row, col int, value any) error {
	return t.writeRange(ctx, row, col, [][]any{{value}})
}

func (t *table) AppendRow(ctx context.Context, values []any) error {
	vr := &sheetsapi.ValueRange{Values: [][]any{normalizeRow(values)}}
	_, err := t.wb.svc.Spreadsheets.Values.Append(t.wb.spreadsheetID, t.a1("A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return goerr.Wrap(err, "failed to append row", goerr.V(types.TableKey, t.name))
	}
	return nil
}

func (t *table) writeRange(ctx context.Context, row, col int, values [][]any) error {
	rng := fmt.Sprintf("%s%d", colName(col), row)
	vr := &sheetsapi.ValueRange{Values: values}
	_, err := t.wb.svc.Spreadsheets.Values.Update(t.wb.spreadsheetID, t.a1(rng), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return goerr.Wrap(err, "failed to write range",
			goerr.V(types.TableKey, t.name), goerr.V("range", rng))
	}
	return nil
}

// a1 builds a quoted A1 reference scoped to this sheet.
func (t *table) a1(rng string) string {
	if rng == "" {
		return fmt.Sprintf("'%s'", t.name)
	}
	return fmt.Sprintf("'%s'!%s", t.name, rng)
}

// normalizeRow replaces nils with empty strings; the Values API skips nil
// cells instead of clearing them.
func normalizeRow(values []any) []any {
	row := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			row[i] = ""
			continue
		}
		row[i] = v
	}
	return row
}

// colName converts a 1-based column position to its A1 letter form.
func colName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
