// Package format renders timestamps for terminal output using the
// display_date and display_time settings.
package format

import (
	"fmt"
	"time"

	"github.com/footprint-tools/recommit/internal/config"
)

// DateTime formats a time with both date and time according to config.
// Example output: "2024-01-23 15:04" or "01/23/2024 3:04 PM"
func DateTime(t time.Time) string {
	return Date(t) + " " + Time(t)
}

// Date formats only the date portion according to config.
// Example output: "2024-01-23" or "23/01/2024"
func Date(t time.Time) string {
	return t.Format(DateLayout(configValue("display_date")))
}

// Time formats only the time portion according to config.
// Example output: "15:04" or "3:04 PM"
func Time(t time.Time) string {
	return t.Format(TimeLayout(configValue("display_time"), false))
}

// Full formats with full date, time with seconds and the zone offset.
// Example output: "2024-01-23 15:04:05 +0100"
func Full(t time.Time) string {
	return Date(t) + " " + t.Format(TimeLayout(configValue("display_time"), true)) + " " + t.Format("-0700")
}

// Ago describes how long before now t happened, e.g. "3 hours ago".
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return "in the future"
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// DateLayout maps a display_date value to a Go layout.
func DateLayout(displayDate string) string {
	switch displayDate {
	case "", "yyyy-mm-dd":
		return "2006-01-02"
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// Assume it's a custom Go time format (e.g., "Jan 02")
		return displayDate
	}
}

// TimeLayout maps a display_time value to a Go layout.
func TimeLayout(displayTime string, seconds bool) string {
	switch displayTime {
	case "12h":
		if seconds {
			return "3:04:05 PM"
		}
		return "3:04 PM"
	default:
		if seconds {
			return "15:04:05"
		}
		return "15:04"
	}
}

func configValue(key string) string {
	v, _ := config.Get(key)
	return v
}
