package workbook

import (
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/types"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// serialEpoch is day zero of spreadsheet date serial numbers.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// NormalizeDate converts a native cell value to the canonical "YYYY-MM-DD"
// form in the given timezone. Accepts time.Time, canonical strings and
// spreadsheet day serials. Anything else yields an empty string; it never
// fails. Used for display and listing.
func NormalizeDate(value any, loc *time.Location) string {
	switch v := value.(type) {
	case time.Time:
		return v.In(loc).Format(dateLayout)
	case float64:
		// Unformatted Sheets reads deliver dates as day serials.
		return serialEpoch.AddDate(0, 0, int(v)).Format(dateLayout)
	case string:
		s := strings.TrimSpace(v)
		if datePattern.MatchString(s) {
			return s
		}
		return ""
	default:
		return ""
	}
}

// ParseDate converts a caller-supplied value to a calendar date at local
// midnight. Strings must match YYYY-MM-DD exactly and denote a real calendar
// date; "2024-02-30" is rejected. Fails with ErrInvalidDate on malformed,
// out-of-range or empty input.
func ParseDate(value any, loc *time.Location) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		y, m, d := v.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	case string:
		s := strings.TrimSpace(v)
		m := datePattern.FindStringSubmatch(s)
		if m == nil {
			return time.Time{}, goerr.Wrap(types.ErrInvalidDate, "date must be YYYY-MM-DD",
				goerr.V(types.ValueKey, s))
		}

		// ParseInLocation rejects non-existent dates such as "2024-02-30".
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			return time.Time{}, goerr.Wrap(types.ErrInvalidDate, "not a real calendar date",
				goerr.V(types.ValueKey, s))
		}
		return t, nil
	default:
		return time.Time{}, goerr.Wrap(types.ErrInvalidDate, "unsupported date value",
			goerr.V(types.ValueKey, value))
	}
}
