package util

import (
	"fmt"
	"time"
)

// FormatClock renders seconds as MM:SS. Minutes are not wrapped into hours.
func FormatClock(seconds uint32) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatTotal renders a long duration as "2h 05m" or "45m".
func FormatTotal(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
