package analysis

import "time"

// Calendar date and clock layouts used for bucketing and display.
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// LocalDate returns the calendar date of an epoch-seconds timestamp in the
// target location's fixed UTC offset. The instant is shifted by the offset
// before extracting calendar fields; no timezone database is involved, so
// the result is independent of the host's clock settings.
func LocalDate(ts int64, offset time.Duration) string {
	return time.Unix(ts, 0).UTC().Add(offset).Format(dateLayout)
}

// LocalClock returns the HH:MM time of day of an epoch-seconds timestamp in
// the target location's fixed UTC offset.
func LocalClock(ts int64, offset time.Duration) string {
	return time.Unix(ts, 0).UTC().Add(offset).Format(clockLayout)
}

// ReferenceDates returns today's and tomorrow's local calendar dates for a
// reference instant. Tomorrow is today plus 24 hours.
func ReferenceDates(now time.Time, offset time.Duration) (today, tomorrow string) {
	local := now.UTC().Add(offset)
	return local.Format(dateLayout), local.Add(24 * time.Hour).Format(dateLayout)
}
