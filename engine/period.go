package engine

import (
	"time"

	"github.com/teamvolt/binex/types"
)

// PeriodWindow returns the [from, to) capping window containing now,
// computed on tenant-local calendar boundaries.
func PeriodWindow(period types.CappingPeriod, loc *time.Location, now time.Time) (time.Time, time.Time) {
	local := now.In(loc)

	switch period {
	case types.PeriodWeek:
		weekday := int(local.Weekday())
		if weekday == 0 {
			weekday = 7 // week starts Monday
		}
		from := time.Date(local.Year(), local.Month(), local.Day()-(weekday-1), 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 7)
	case types.PeriodMonth:
		from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0)
	default:
		from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 1)
	}
}
