package cache

import "time"

// Defaults for the cached day range, matching the reference deployment.
const (
	DefaultPastDays   = 60
	DefaultFutureDays = 90
)

// Window describes the inclusive day range kept in memory, as offsets from
// today.
type Window struct {
	PastDays   int
	FutureDays int
}

func DefaultWindow() Window {
	return Window{PastDays: DefaultPastDays, FutureDays: DefaultFutureDays}
}

// Bounds resolves the window against a reference time, returning inclusive
// "YYYY-MM-DD" bounds.
func (w Window) Bounds(now time.Time) (from, to string) {
	day := now.UTC()
	from = day.AddDate(0, 0, -w.PastDays).Format("2006-01-02")
	to = day.AddDate(0, 0, w.FutureDays).Format("2006-01-02")
	return from, to
}
