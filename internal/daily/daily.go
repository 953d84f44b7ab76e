// internal/daily/daily.go
//
// Deterministic word-of-the-day selection. Every player sees the same
// word on the same calendar date: the index into the ordered daily list
// is the day offset from a fixed epoch.

package daily

import "time"

// Epoch is day zero of the daily mode; the first list entry belongs here.
var Epoch = time.Date(2022, time.January, 7, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns the daily-word index for a date: whole days since the
// epoch, wrapped around the list length so the mode keeps working after
// the list runs out. Dates before the epoch map to index 0.
func Index(date time.Time, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	days := int(date.UTC().Truncate(24*time.Hour).Sub(Epoch).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days % listLen
}
