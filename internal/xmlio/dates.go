package xmlio

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UN/CEFACT 2379 date format qualifiers
const (
	DateFormat102 = "102" // CCYYMMDD
	DateFormat610 = "610" // CCYYMM
	DateFormat616 = "616" // CCYYWW
)

// FormatDate102 renders t as CCYYMMDD
func FormatDate102(t time.Time) string {
	return t.Format("20060102")
}

// FormatISODate renders t as YYYY-MM-DD
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate reads a date value in the given format. An empty format tries
// 102 first and ISO second.
func ParseDate(format, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch format {
	case DateFormat102:
		return time.ParseInLocation("20060102", value, time.UTC)
	case DateFormat610:
		return time.ParseInLocation("200601", value, time.UTC)
	case DateFormat616:
		return parseWeek(value)
	case "":
		for _, layout := range []string{"20060102", "2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", value)
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", format)
}

// parseWeek returns the Monday of an ISO week given as CCYYWW
func parseWeek(value string) (time.Time, error) {
	if len(value) != 6 {
		return time.Time{}, fmt.Errorf("invalid week date %q", value)
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week date %q: %w", value, err)
	}
	week, err := strconv.Atoi(value[4:])
	if err != nil || week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("invalid week date %q", value)
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)
	return monday.AddDate(0, 0, (week-1)*7), nil
}
