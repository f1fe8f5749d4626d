package workbook

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/types"
)

// Table names in the backing workbook.
const (
	TableCompanies = "Companies"
	TableActions   = "Actions"
	TableLinks     = "LINK"
)

// Logical field names of the Actions table.
const (
	ColActionID    = "action_id"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
	ColDueDate     = "due_date"
	ColCompanyName = "company_name"
	ColStaffName   = "staff_name"
	ColCategory    = "category"
	ColStatus      = "status"
	ColNote        = "note"
	ColCompletedAt = "completed_at"
	ColIsDeleted   = "is_deleted"
	ColDeletedAt   = "deleted_at"
)

// Logical field names of the Companies table.
const (
	ColCompanyID              = "company_id"
	ColContactContractBilling = "contact_contract_billing"
	ColContactSalesTrouble    = "contact_sales_trouble"
	ColMemoCompany            = "memo_company"
)

// Logical field names of the LINK table.
const (
	ColLinkLabel   = "label"
	ColLinkURL     = "url"
	ColLinkOrder   = "order"
	ColLinkEnabled = "enabled"
)

// RequiredCompanyColumns lists the fields the Companies table must expose.
func RequiredCompanyColumns() []string {
	return []string{
		ColCompanyID,
		ColCompanyName,
		ColContactContractBilling,
		ColContactSalesTrouble,
		ColMemoCompany,
	}
}

// RequiredActionColumns lists the fields the Actions table must expose.
func RequiredActionColumns() []string {
	return []string{
		ColActionID,
		ColCreatedAt,
		ColUpdatedAt,
		ColDueDate,
		ColCompanyName,
		ColStaffName,
		ColCategory,
		ColStatus,
		ColNote,
		ColCompletedAt,
		ColIsDeleted,
		ColDeletedAt,
	}
}

// RequiredLinkColumns lists the fields the LINK table must expose. The link
// list degrades silently when they are absent, so these are only enforced by
// provisioning, not by the schema guard.
func RequiredLinkColumns() []string {
	return []string{
		ColLinkLabel,
		ColLinkURL,
		ColLinkOrder,
		ColLinkEnabled,
	}
}

// BoundTable is a table together with its resolved column map.
type BoundTable struct {
	Table   interfaces.Table
	Columns ColumnMap
}

// Col returns the 1-based position of a logical field. The schema guard has
// already verified the field exists.
func (b *BoundTable) Col(field string) int {
	return b.Columns[field]
}

// Schema is the validated binding of the two required tables. It is resolved
// fresh on every operation so schema drift in the backing store is detected
// immediately rather than only at process start.
type Schema struct {
	Companies *BoundTable
	Actions   *BoundTable
}

// Resolve runs the schema guard: both required tables must exist and expose
// all required fields. Idempotent and side-effect-free.
func Resolve(ctx context.Context, wb interfaces.Workbook) (*Schema, error) {
	companies, err := bind(ctx, wb, TableCompanies, RequiredCompanyColumns())
	if err != nil {
		return nil, err
	}
	actions, err := bind(ctx, wb, TableActions, RequiredActionColumns())
	if err != nil {
		return nil, err
	}
	return &Schema{Companies: companies, Actions: actions}, nil
}

func bind(ctx context.Context, wb interfaces.Workbook, name string, required []string) (*BoundTable, error) {
	tbl, err := wb.Table(ctx, name)
	if err != nil {
		return nil, err
	}

	header, err := tbl.Header(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read header row", goerr.V(types.TableKey, name))
	}

	cm, err := BuildColumnMap(header, name)
	if err != nil {
		return nil, err
	}

	for _, field := range required {
		if _, ok := cm[field]; !ok {
			return nil, goerr.Wrap(types.ErrColumnsMissing, "required column not in header",
				goerr.V(types.TableKey, name), goerr.V(types.ColumnKey, field))
		}
	}

	return &BoundTable{Table: tbl, Columns: cm}, nil
}
