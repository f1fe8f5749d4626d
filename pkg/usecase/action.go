package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/service/workbook"
	"github.com/secmon-lab/horae/pkg/utils/clock"
)

// dueDateMax stands in for an empty due date so undated actions sort last.
const dueDateMax = "9999-12-31"

// ListActions returns all non-deleted actions ordered by due date ascending
// (undated last), tie-broken by creation time ascending.
func (uc *UseCases) ListActions(ctx context.Context) ([]*model.Action, error) {
	schema, err := workbook.Resolve(ctx, uc.wb)
	if err != nil {
		return nil, err
	}
	return uc.listActions(ctx, schema.Actions)
}

func (uc *UseCases) listActions(ctx context.Context, tbl *workbook.BoundTable) ([]*model.Action, error) {
	rows, cols, err := tbl.Table.Size(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to size Actions table")
	}

	actions := []*model.Action{}
	if rows <= 1 {
		return actions, nil
	}

	block, err := tbl.Table.ReadRange(ctx, 2, 1, rows-1, cols)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read Actions rows")
	}

	for _, row := range block {
		action := workbook.ProjectAction(row, tbl.Columns, uc.loc)
		if action.IsDeleted {
			continue
		}
		actions = append(actions, action)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		di, dj := actions[i].DueDate, actions[j].DueDate
		if di == "" {
			di = dueDateMax
		}
		if dj == "" {
			dj = dueDateMax
		}
		if di != dj {
			return di < dj
		}
		return actions[i].CreatedAt < actions[j].CreatedAt
	})

	return actions, nil
}

// CreateAction validates the payload, appends a new row and returns the
// refreshed listing.
func (uc *UseCases) CreateAction(ctx context.Context, input *model.CreateInput) ([]*model.Action, error) {
	schema, err := workbook.Resolve(ctx, uc.wb)
	if err != nil {
		return nil, err
	}

	fields, err := validateCreate(input, uc.loc)
	if err != nil {
		return nil, err
	}

	now := uc.now(ctx)
	completedAt := ""
	if fields.status.IsTerminal() {
		completedAt = now
	}

	tbl := schema.Actions
	_, cols, err := tbl.Table.Size(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to size Actions table")
	}

	row := make([]any, cols)
	for i := range row {
		row[i] = ""
	}
	set := func(field string, value any) {
		row[tbl.Col(field)-1] = value
	}

	set(workbook.ColActionID, types.NewActionID(clock.Now(ctx).In(uc.loc)).String())
	set(workbook.ColCreatedAt, now)
	set(workbook.ColUpdatedAt, now)
	set(workbook.ColDueDate, fields.dueDate)
	set(workbook.ColCompanyName, fields.companyName)
	set(workbook.ColStaffName, fields.staffName)
	set(workbook.ColCategory, fields.category.String())
	set(workbook.ColStatus, fields.status.String())
	set(workbook.ColNote, fields.note)
	set(workbook.ColCompletedAt, completedAt)
	set(workbook.ColIsDeleted, false)
	set(workbook.ColDeletedAt, "")

	if err := tbl.Table.AppendRow(ctx, row); err != nil {
		return nil, goerr.Wrap(err, "failed to append action row")
	}

	return uc.listActions(ctx, tbl)
}

// UpdateAction applies a partial patch to the identified action and returns
// the refreshed listing. The whole patch is validated against the pre-patch
// row before the first cell write; a failure inside the write loop itself can
// still leave the row partially updated, as the store has no transactions.
func (uc *UseCases) UpdateAction(ctx context.Context, actionID string, patch *model.Patch) ([]*model.Action, error) {
	id := strings.TrimSpace(actionID)
	if id == "" {
		return nil, goerr.Wrap(types.ErrMissingID, "update needs an action ID")
	}
	if patch.IsEmpty() {
		return nil, goerr.Wrap(types.ErrEmptyPatch, "update needs at least one field",
			goerr.V(types.ActionIDKey, id))
	}

	schema, err := workbook.Resolve(ctx, uc.wb)
	if err != nil {
		return nil, err
	}
	tbl := schema.Actions

	rowIndex, current, err := uc.findAction(ctx, tbl, id)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted {
		return nil, goerr.Wrap(types.ErrActionDeleted, "cannot update a deleted action",
			goerr.V(types.ActionIDKey, id))
	}

	writes, postStatus, err := validatePatch(patch, uc.loc)
	if err != nil {
		return nil, err
	}

	now := uc.now(ctx)

	// completed_at follows the pre-patch vs post-patch status transition:
	// into terminal sets it, out of terminal clears it, otherwise untouched.
	if postStatus != nil {
		pre := current.Status
		switch {
		case !pre.IsTerminal() && postStatus.IsTerminal():
			writes = append(writes, cellWrite{field: workbook.ColCompletedAt, value: now})
		case pre.IsTerminal() && !postStatus.IsTerminal():
			writes = append(writes, cellWrite{field: workbook.ColCompletedAt, value: ""})
		}
	}
	writes = append(writes, cellWrite{field: workbook.ColUpdatedAt, value: now})

	for _, w := range writes {
		if err := tbl.Table.WriteCell(ctx, rowIndex, tbl.Col(w.field), w.value); err != nil {
			return nil, goerr.Wrap(err, "failed to write cell",
				goerr.V(types.ActionIDKey, id), goerr.V(types.FieldKey, w.field))
		}
	}

	return uc.listActions(ctx, tbl)
}

// DeleteAction soft-deletes the identified action and returns the refreshed
// listing. Deleting an already-deleted action fails with ErrActionDeleted.
func (uc *UseCases) DeleteAction(ctx context.Context, actionID string) ([]*model.Action, error) {
	id := strings.TrimSpace(actionID)
	if id == "" {
		return nil, goerr.Wrap(types.ErrMissingID, "delete needs an action ID")
	}

	schema, err := workbook.Resolve(ctx, uc.wb)
	if err != nil {
		return nil, err
	}
	tbl := schema.Actions

	rowIndex, current, err := uc.findAction(ctx, tbl, id)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted {
		return nil, goerr.Wrap(types.ErrActionDeleted, "action is already deleted",
			goerr.V(types.ActionIDKey, id))
	}

	now := uc.now(ctx)
	writes := []cellWrite{
		{field: workbook.ColIsDeleted, value: true},
		{field: workbook.ColDeletedAt, value: now},
		{field: workbook.ColUpdatedAt, value: now},
	}
	for _, w := range writes {
		if err := tbl.Table.WriteCell(ctx, rowIndex, tbl.Col(w.field), w.value); err != nil {
			return nil, goerr.Wrap(err, "failed to write cell",
				goerr.V(types.ActionIDKey, id), goerr.V(types.FieldKey, w.field))
		}
	}

	return uc.listActions(ctx, tbl)
}

// findAction scans the action_id column for the given ID, soft-deleted rows
// included, and returns the 1-based row index with the projected record.
func (uc *UseCases) findAction(ctx context.Context, tbl *workbook.BoundTable, id string) (int, *model.Action, error) {
	rows, cols, err := tbl.Table.Size(ctx)
	if err != nil {
		return 0, nil, goerr.Wrap(err, "failed to size Actions table")
	}
	if rows <= 1 {
		return 0, nil, goerr.Wrap(types.ErrActionNotFound, "no action rows",
			goerr.V(types.ActionIDKey, id))
	}

	block, err := tbl.Table.ReadRange(ctx, 2, 1, rows-1, cols)
	if err != nil {
		return 0, nil, goerr.Wrap(err, "failed to read Actions rows")
	}

	idCol := tbl.Col(workbook.ColActionID)
	for i, row := range block {
		if workbook.CellString(row[idCol-1]) == id {
			return i + 2, workbook.ProjectAction(row, tbl.Columns, uc.loc), nil
		}
	}
	return 0, nil, goerr.Wrap(types.ErrActionNotFound, "no row with this action ID",
		goerr.V(types.ActionIDKey, id))
}
