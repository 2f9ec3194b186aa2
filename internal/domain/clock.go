package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock resolves user-entered boundary text to an instant on now's day.
// Accepted forms: "now", "n" or empty (meaning now), "18", "18:", "18:10".
func ParseClock(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "now" || text == "n" {
		return now, nil
	}

	var hourText, minText string
	if h, m, ok := strings.Cut(text, ":"); ok {
		hourText, minText = h, m
	} else {
		hourText = text
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", text, err)
	}
	min := 0
	if minText != "" {
		if min, err = strconv.Atoi(minText); err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", text, err)
		}
	}
	if hour > 23 || hour < 0 || min > 59 || min < 0 {
		return time.Time{}, fmt.Errorf("time %q out of range", text)
	}

	y, m, d := now.Date()
	return time.Date(y, m, d, hour, min, 0, 0, now.Location()), nil
}

// FormatClock renders an instant as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
