package domain

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Wall-clock time within a day, independent of date and zone.
// Arithmetic wraps around midnight.
type TimeOfDay struct {
	offset time.Duration
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("new time of day %02d:%02d: %w", hour, minute, ErrInvalidTimeOfDay)
	}
	return TimeOfDay{offset: time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute}, nil
}

// Parse a 24h "HH:MM" value such as "08:00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, ErrInvalidTimeOfDay)
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// Offset since midnight.
func (t TimeOfDay) Offset() time.Duration { return t.offset }

func (t TimeOfDay) Hour() int { return int(t.offset / time.Hour) }

func (t TimeOfDay) Minute() int { return int((t.offset % time.Hour) / time.Minute) }

// Add shifts the time by d, wrapping into [00:00, 24:00).
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	o := (t.offset + d) % day
	if o < 0 {
		o += day
	}
	return TimeOfDay{offset: o}
}

func (t TimeOfDay) Sub(d time.Duration) TimeOfDay { return t.Add(-d) }

// Truncate rounds the time down to a multiple of d.
func (t TimeOfDay) Truncate(d time.Duration) TimeOfDay {
	return TimeOfDay{offset: t.offset.Truncate(d)}
}

// On places the time of day on the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, d.Location()).Add(t.offset)
}

// String renders "HH:MM"; seconds are truncated.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
