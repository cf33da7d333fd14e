// Package feedtime parses the relative and absolute timestamp strings that
// activity feeds attach to entries.
package feedtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	decorationExpr = regexp.MustCompile(`\s*•.*$`)
	relativeExpr   = regexp.MustCompile(`(?i)^(\d+)\s*(minute|min|m|hour|hr|h|day|d|week|w|month|mo|year|yr)s?(\s+ago)?$`)
)

// Absolute layouts tried in order after the relative forms.
var absoluteLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Yearless layouts resolve to the most recent past occurrence.
var yearlessLayouts = []string{
	"Jan 2",
	"2 Jan",
	"January 2",
}

// Parse converts a feed timestamp string into a UTC instant. Relative offsets
// ("3h", "2 weeks ago") are subtracted from now; absolute dates lacking a
// year resolve to the most recent past occurrence. Decorations such as a
// trailing "• Edited" and a "Liked" prefix are stripped before parsing.
func Parse(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	s = decorationExpr.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.TrimPrefix(s, "Liked"))
	now = now.UTC()

	if m := relativeExpr.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("relative offset %q: %w", raw, err)
		}
		return subtractOffset(now, n, strings.ToLower(m[2]))
	}

	for _, layout := range absoluteLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}

	for _, layout := range yearlessLayouts {
		ts, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		resolved := time.Date(now.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		if resolved.After(now) {
			resolved = resolved.AddDate(-1, 0, 0)
		}
		return resolved, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func subtractOffset(now time.Time, n int, unit string) (time.Time, error) {
	switch unit {
	case "m", "min", "minute":
		return now.Add(-time.Duration(n) * time.Minute), nil
	case "h", "hr", "hour":
		return now.Add(-time.Duration(n) * time.Hour), nil
	case "d", "day":
		return now.AddDate(0, 0, -n), nil
	case "w", "week":
		return now.AddDate(0, 0, -7*n), nil
	case "mo", "month":
		return now.AddDate(0, -n, 0), nil
	case "yr", "year":
		return now.AddDate(-n, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown offset unit %q", unit)
}
