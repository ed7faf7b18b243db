/*
daywindow.go - Civil day boundaries in the canteen's timezone

PURPOSE:
  Computes the inclusive start/end instants of a calendar day in the
  canteen's civil timezone. Used by the duplicate-admission check and
  by report filtering, so both always agree on what "today" means.

FIXED OFFSET:
  The offset is a literal UTC-03:00, never the host's local timezone
  and never a tzdata lookup. The service may be deployed in any host
  timezone; the civil day boundaries must not drift with it.

SEE ALSO:
  - service.go: Duplicate-admission check
  - api/handlers.go: Report filtering
*/
package access

import (
	"fmt"
	"time"
)

// Timezone is the canteen's fixed civil timezone (UTC-03:00, no
// daylight-saving transitions observed).
var Timezone = time.FixedZone("-03:00", -3*60*60)

const dateLayout = "2006-01-02"

// DayWindow returns the inclusive boundaries of the given calendar date
// in the fixed civil timezone: local midnight through 23:59:59.999 of
// the same day.
func DayWindow(date string) (start, end time.Time, err error) {
	day, err := time.ParseInLocation(dateLayout, date, Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", date, err)
	}

	start = day
	end = day.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}

// Today returns the current calendar date as seen in the fixed civil
// timezone, in YYYY-MM-DD form.
func Today() string {
	return todayAt(time.Now())
}

func todayAt(now time.Time) string {
	return now.In(Timezone).Format(dateLayout)
}
