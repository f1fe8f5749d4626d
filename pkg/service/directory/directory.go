package directory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/service/workbook"
)

// Service reads the Companies table. The directory is externally managed;
// this service never writes to it.
type Service struct {
	wb interfaces.Workbook
}

// New creates a company directory over the given workbook.
func New(wb interfaces.Workbook) *Service {
	return &Service{wb: wb}
}

// Names returns the distinct known company names, sorted.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	schema, err := workbook.Resolve(ctx, s.wb)
	if err != nil {
		return nil, err
	}

	tbl := schema.Companies
	rows, _, err := tbl.Table.Size(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to size Companies table")
	}
	if rows <= 1 {
		return []string{}, nil
	}

	col := tbl.Col(workbook.ColCompanyName)
	block, err := tbl.Table.ReadRange(ctx, 2, col, rows-1, 1)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read company names")
	}

	seen := make(map[string]bool, len(block))
	for _, row := range block {
		if name := workbook.CellString(row[0]); name != "" {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Contacts returns the two contact fields for the named company, or empty
// strings when the name is blank or unknown.
func (s *Service) Contacts(ctx context.Context, companyName string) (*model.CompanyContacts, error) {
	contacts := &model.CompanyContacts{}

	name := workbook.CellString(companyName)
	if name == "" {
		return contacts, nil
	}

	schema, err := workbook.Resolve(ctx, s.wb)
	if err != nil {
		return nil, err
	}

	tbl := schema.Companies
	rows, cols, err := tbl.Table.Size(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to size Companies table")
	}
	if rows <= 1 {
		return contacts, nil
	}

	block, err := tbl.Table.ReadRange(ctx, 2, 1, rows-1, cols)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read Companies rows")
	}

	for _, row := range block {
		if workbook.CellString(row[tbl.Col(workbook.ColCompanyName)-1]) != name {
			continue
		}
		contacts.ContractBilling = workbook.CellString(row[tbl.Col(workbook.ColContactContractBilling)-1])
		contacts.SalesTrouble = workbook.CellString(row[tbl.Col(workbook.ColContactSalesTrouble)-1])
		return contacts, nil
	}
	return contacts, nil
}
