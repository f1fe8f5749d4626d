package usecase

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/service/workbook"
)

const dateLayout = "2006-01-02"

// createFields is a validated, normalized create payload.
type createFields struct {
	companyName string
	staffName   string
	category    types.Category
	status      types.Status
	note        string
	dueDate     string // canonical YYYY-MM-DD
}

func validateCreate(input *model.CreateInput, loc *time.Location) (*createFields, error) {
	if input == nil {
		input = &model.CreateInput{}
	}

	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return nil, goerr.Wrap(types.ErrRequiredField, "company_name is required",
			goerr.V(types.FieldKey, workbook.ColCompanyName))
	}

	note := strings.TrimSpace(input.Note)
	if note == "" {
		return nil, goerr.Wrap(types.ErrRequiredField, "note is required",
			goerr.V(types.FieldKey, workbook.ColNote))
	}

	if strings.TrimSpace(input.DueDate) == "" {
		return nil, goerr.Wrap(types.ErrRequiredField, "due_date is required",
			goerr.V(types.FieldKey, workbook.ColDueDate))
	}
	due, err := workbook.ParseDate(input.DueDate, loc)
	if err != nil {
		return nil, err
	}

	category, err := types.ParseCategory(strings.TrimSpace(input.Category))
	if err != nil {
		return nil, err
	}

	status := types.StatusOpen
	if s := strings.TrimSpace(input.Status); s != "" {
		status, err = types.ParseStatus(s)
		if err != nil {
			return nil, err
		}
	}

	return &createFields{
		companyName: companyName,
		staffName:   strings.TrimSpace(input.StaffName),
		category:    category,
		status:      status,
		note:        note,
		dueDate:     due.Format(dateLayout),
	}, nil
}

// cellWrite is one pending cell mutation produced by patch validation.
type cellWrite struct {
	field string
	value any
}

// validatePatch checks every supplied patch field with the same rules as
// create and turns them into pending writes. Nothing is written here; the
// caller applies the writes only after the whole patch passed. The returned
// status is non-nil when the patch changes it.
func validatePatch(patch *model.Patch, loc *time.Location) ([]cellWrite, *types.Status, error) {
	var writes []cellWrite

	if patch.CompanyName != nil {
		v := strings.TrimSpace(*patch.CompanyName)
		if v == "" {
			return nil, nil, goerr.Wrap(types.ErrRequiredField, "company_name cannot be emptied",
				goerr.V(types.FieldKey, workbook.ColCompanyName))
		}
		writes = append(writes, cellWrite{field: workbook.ColCompanyName, value: v})
	}

	if patch.StaffName != nil {
		writes = append(writes, cellWrite{field: workbook.ColStaffName, value: strings.TrimSpace(*patch.StaffName)})
	}

	if patch.Category != nil {
		category, err := types.ParseCategory(strings.TrimSpace(*patch.Category))
		if err != nil {
			return nil, nil, err
		}
		writes = append(writes, cellWrite{field: workbook.ColCategory, value: category.String()})
	}

	if patch.DueDate != nil {
		if strings.TrimSpace(*patch.DueDate) == "" {
			return nil, nil, goerr.Wrap(types.ErrRequiredField, "due_date cannot be emptied",
				goerr.V(types.FieldKey, workbook.ColDueDate))
		}
		due, err := workbook.ParseDate(*patch.DueDate, loc)
		if err != nil {
			return nil, nil, err
		}
		writes = append(writes, cellWrite{field: workbook.ColDueDate, value: due.Format(dateLayout)})
	}

	if patch.Note != nil {
		v := strings.TrimSpace(*patch.Note)
		if v == "" {
			return nil, nil, goerr.Wrap(types.ErrRequiredField, "note cannot be emptied",
				goerr.V(types.FieldKey, workbook.ColNote))
		}
		writes = append(writes, cellWrite{field: workbook.ColNote, value: v})
	}

	var postStatus *types.Status
	if patch.Status != nil {
		status, err := types.ParseStatus(strings.TrimSpace(*patch.Status))
		if err != nil {
			return nil, nil, err
		}
		writes = append(writes, cellWrite{field: workbook.ColStatus, value: status.String()})
		postStatus = &status
	}

	return writes, postStatus, nil
}
