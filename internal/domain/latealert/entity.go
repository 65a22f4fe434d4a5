package latealert

import "time"

// Alert marks that a user was notified about being late on a calendar
// date. At most one alert exists per (user, date); the row itself is
// the dedup guard against repeated notifications.
type Alert struct {
	ID        string
	UserID    string
	CheckinID *string
	LateDate  string // "YYYY-MM-DD" calendar date
	CreatedAt time.Time
}

// DateOf formats the calendar date an instant falls on.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
