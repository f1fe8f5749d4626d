package workbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/domain/types"
)

// CellString renders a cell value as a trimmed string. Nil becomes "".
func CellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// CellBool interprets a cell value as a boolean flag. Sheets checkboxes read
// back as bool; values edited by hand may be the strings "TRUE"/"FALSE".
func CellBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// ProjectAction converts one Actions row into a record. Strings are trimmed
// and the due date is normalized for display.
func ProjectAction(row []any, cm ColumnMap, loc *time.Location) *model.Action {
	cell := func(field string) any {
		pos := cm[field]
		if pos < 1 || pos > len(row) {
			return nil
		}
		return row[pos-1]
	}

	return &model.Action{
		ID:          types.ActionID(CellString(cell(ColActionID))),
		CreatedAt:   CellString(cell(ColCreatedAt)),
		UpdatedAt:   CellString(cell(ColUpdatedAt)),
		DueDate:     NormalizeDate(cell(ColDueDate), loc),
		CompanyName: CellString(cell(ColCompanyName)),
		StaffName:   CellString(cell(ColStaffName)),
		Category:    types.Category(CellString(cell(ColCategory))),
		Status:      types.Status(CellString(cell(ColStatus))),
		Note:        CellString(cell(ColNote)),
		CompletedAt: CellString(cell(ColCompletedAt)),
		IsDeleted:   CellBool(cell(ColIsDeleted)),
		DeletedAt:   CellString(cell(ColDeletedAt)),
	}
}
