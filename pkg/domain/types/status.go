package types

import "github.com/m-mizutani/goerr/v2"

// Status represents the workflow state of an action.
// The set is closed; values come from the backing sheet verbatim.
type Status string

const (
	StatusOpen       Status = "未対応"
	StatusInProgress Status = "対応中"
	StatusDone       Status = "完了"
)

// AllStatuses returns all valid statuses in workflow order.
func AllStatuses() []Status {
	return []Status{
		StatusOpen,
		StatusInProgress,
		StatusDone,
	}
}

// IsValid checks if the status is a member of the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is the completed state.
// Only the terminal status carries a non-empty completed_at.
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrInvalidStatus, "unknown status", goerr.V(ValueKey, s))
	}
	return status, nil
}
