package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
}

// force timestamps to be in Pacific time regardless of where the
// scheduler runs, otherwise "today" flips over at the wrong hour and
// the rarity history records the wrong calendar day
func Now() time.Time {
	return time.Now().In(Location)
}

// the calendar day used by the rarity history, e.g. "2026-02-01"
func Day(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}

// the snapshot timestamp format, e.g. "2026-02-01T18:04:05 PT"
func Stamp(t time.Time) string {
	return t.In(Location).Format("2006-01-02T15:04:05 PT")
}
