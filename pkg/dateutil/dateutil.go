// Package dateutil resolves symbolic relative days and renders them with
// strftime-style format strings.
package dateutil

import (
	"fmt"
	"time"

	"pastectl/pkg/errors"

	"github.com/lestrrat-go/strftime"
)

// RelativeDays lists the accepted symbolic day names.
var RelativeDays = []string{"yesterday", "today", "tomorrow", "next-week"}

// Resolve computes the timestamp for a symbolic relative day. yesterday,
// today and tomorrow shift now in UTC by whole days; next-week is the next
// Monday relative to now as given (local time). When now is already a Monday,
// next-week is a full seven days ahead, never the current day.
func Resolve(day string, now time.Time) (time.Time, error) {
	switch day {
	case "yesterday":
		return now.UTC().AddDate(0, 0, -1), nil
	case "today":
		return now.UTC(), nil
	case "tomorrow":
		return now.UTC().AddDate(0, 0, 1), nil
	case "next-week":
		return nextMonday(now), nil
	default:
		return time.Time{}, errors.ValidationError(
			fmt.Sprintf("unknown relative day '%s' (expected yesterday, today, tomorrow or next-week)", day))
	}
}

func nextMonday(now time.Time) time.Time {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, 7-daysSinceMonday)
}

// Format renders t using a strftime format string such as "%d/%m/%y".
func Format(t time.Time, format string) (string, error) {
	out, err := strftime.Format(format, t)
	if err != nil {
		return "", errors.NewWithError(errors.ExitCodeValidation, "invalid date format", err)
	}
	return out, nil
}
