package normalize

import (
	"fmt"
	"strings"
	"time"
)

const (
	displayDateLayout  = "01/02/2006"
	calendarDateLayout = "2006-01-02"
)

// FormatDate renders t as MM/DD/YYYY in its own location. Nil and zero
// times render as the empty string.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

// ParseCalendarDate accepts YYYY-MM-DD optionally followed by a "T"
// time-of-day, which is discarded. The result is midnight UTC.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(calendarDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// TruncateToDate drops the time-of-day, keeping the calendar date as seen
// in t's own location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// textual date layouts some drivers hand back instead of time.Time
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	calendarDateLayout,
}

func parseDriverDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
