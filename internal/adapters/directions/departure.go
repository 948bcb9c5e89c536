package directions

import (
	"bus-electrification-service/internal/domain"
	"time"
)

// NextMondayDeparture projects a time of day onto the next school Monday:
// today when today is Monday and the time has not passed yet, otherwise the
// following Monday. The result is in now's location.
func NextMondayDeparture(now time.Time, at domain.TimeOfDay) time.Time {
	daysAhead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 && sinceMidnight(now) > at.Offset() {
		daysAhead = 7
	}
	return at.On(now.AddDate(0, 0, daysAhead))
}

func sinceMidnight(t time.Time) time.Duration {
	y, m, d := t.Date()
	return t.Sub(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}
