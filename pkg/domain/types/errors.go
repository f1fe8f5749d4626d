package types

import "github.com/m-mizutani/goerr/v2"

// Schema-level errors. These abort the operation before any effect.
var (
	ErrTableMissing    = goerr.New("required table is missing")
	ErrColumnsMissing  = goerr.New("required column is missing")
	ErrDuplicateHeader = goerr.New("duplicate header label")
)

// Input validation errors. Raised before any write occurs.
var (
	ErrMissingID       = goerr.New("action ID is required")
	ErrEmptyPatch      = goerr.New("patch has no fields")
	ErrActionNotFound  = goerr.New("action not found")
	ErrActionDeleted   = goerr.New("action is deleted")
	ErrInvalidDate     = goerr.New("invalid date")
	ErrInvalidCategory = goerr.New("invalid category")
	ErrInvalidStatus   = goerr.New("invalid status")
	ErrRequiredField   = goerr.New("required field is empty")
)

// Context keys for error values
const (
	TableKey    = "table"
	ColumnKey   = "column"
	HeaderKey   = "header"
	FieldKey    = "field"
	ValueKey    = "value"
	ActionIDKey = "action_id"
)
