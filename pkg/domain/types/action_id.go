package types

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ActionID identifies an action record. Immutable once assigned, never reused.
type ActionID string

// String returns the string representation of the action ID.
func (x ActionID) String() string {
	return string(x)
}

// NewActionID builds an ID from the given local time and a random 4-digit
// suffix, e.g. "A_20250110_153012_0042". The timestamp prefix makes IDs sort
// lexicographically in creation order for records created more than one second
// apart. Collisions within the same second are accepted as negligible; there
// is no uniqueness re-check against existing rows.
func NewActionID(now time.Time) ActionID {
	return ActionID(fmt.Sprintf("A_%s_%04d", now.Format("20060102_150405"), rand.IntN(10000)))
}
