package usecase

import (
	"context"

	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/service/workbook"
	"github.com/secmon-lab/horae/pkg/utils/clock"
)

// Page assembles everything the UI needs on load in one call: navigation
// links, company names, the category and status sets, the full listing and
// today's date in the store timezone.
func (uc *UseCases) Page(ctx context.Context) (*model.Page, error) {
	schema, err := workbook.Resolve(ctx, uc.wb)
	if err != nil {
		return nil, err
	}

	companies, err := uc.directory.Names(ctx)
	if err != nil {
		return nil, err
	}

	actions, err := uc.listActions(ctx, schema.Actions)
	if err != nil {
		return nil, err
	}

	return &model.Page{
		Links:      uc.links.Links(ctx),
		Companies:  companies,
		Categories: types.AllCategories(),
		Statuses:   types.AllStatuses(),
		Actions:    actions,
		Today:      clock.Now(ctx).In(uc.loc).Format(dateLayout),
	}, nil
}
