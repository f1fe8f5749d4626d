package model

import "github.com/secmon-lab/horae/pkg/domain/types"

// Action represents a follow-up task tied to a company. Timestamps are
// store-local strings ("2006-01-02T15:04:05-07:00"); DueDate is the canonical
// "2006-01-02" form. CompletedAt is non-empty iff Status is terminal.
type Action struct {
	ID          types.ActionID `json:"action_id"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	DueDate     string         `json:"due_date"`
	CompanyName string         `json:"company_name"`
	StaffName   string         `json:"staff_name"`
	Category    types.Category `json:"category"`
	Status      types.Status   `json:"status"`
	Note        string         `json:"note"`
	CompletedAt string         `json:"completed_at"`
	IsDeleted   bool           `json:"-"`
	DeletedAt   string         `json:"-"`
}

// CreateInput is the payload for creating an action. Status may be omitted
// and defaults to the initial status.
type CreateInput struct {
	CompanyName string `json:"company_name"`
	StaffName   string `json:"staff_name"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Note        string `json:"note"`
	DueDate     string `json:"due_date"`
}

// Patch is a partial update payload. Nil fields are left untouched.
type Patch struct {
	CompanyName *string `json:"company_name,omitempty"`
	StaffName   *string `json:"staff_name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
	Note        *string `json:"note,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// IsEmpty reports whether the patch names no fields.
func (p *Patch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.CompanyName == nil &&
		p.StaffName == nil &&
		p.Category == nil &&
		p.Status == nil &&
		p.Note == nil &&
		p.DueDate == nil
}
