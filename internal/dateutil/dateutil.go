// Package dateutil resolves relative date expressions into the calendar fields,
// provider feed window, and speech-ready display phrase a weather turn needs.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Feature selects which provider data window to fetch.
type Feature int

const (
	FeatureCurrent Feature = iota
	FeatureForecast
	FeatureForecast10Day
)

// Token returns the provider's path segment for the feature.
func (f Feature) Token() string {
	switch f {
	case FeatureCurrent:
		return "conditions"
	case FeatureForecast:
		return "forecast"
	case FeatureForecast10Day:
		return "forecast10day"
	}
	return "conditions"
}

// Descriptor is the resolved form of a date expression. It is created once per
// turn and never mutated afterwards. Errors are carried in-band via Err.
type Descriptor struct {
	Today         bool
	Day           int
	Month         int
	Year          int
	Weekday       string
	Period        int // provider half-day period index, 2 * diffDays
	Feature       Feature
	DisplayPhrase string
	Err           string
}

const (
	errTooFarAhead = "I'm sorry, I cannot see more than 10 days into the future."
	errHistorical  = "I'm sorry, I cannot yet look at historical conditions."
)

var daysOfWeek = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var months = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Resolve maps a relative date expression onto a Descriptor, anchored at now.
// "current" asks for live conditions; "today", "tomorrow" and "yesterday" are
// relative; anything else is parsed as an absolute date. Unsupported windows
// (more than 9 days out, or any past date) come back with Err set.
func Resolve(expr string, now time.Time) Descriptor {
	if expr == "" || strings.EqualFold(expr, "current") {
		return Descriptor{
			Today:         true,
			Feature:       FeatureCurrent,
			DisplayPhrase: " is currently ",
		}
	}

	today := midnightUTC(now)

	var target time.Time
	switch strings.ToLower(expr) {
	case "today":
		target = today
	case "tomorrow":
		target = today.AddDate(0, 0, 1)
	case "yesterday":
		target = today.AddDate(0, 0, -1)
	default:
		parsed, ok := parseDate(expr, now)
		if !ok {
			// Unparseable expressions fall out of every forecast window.
			return Descriptor{Err: errHistorical}
		}
		target = midnightUTC(parsed)
	}

	diff := int(target.Sub(today).Hours() / 24)

	var feature Feature
	switch {
	case diff > 9:
		return Descriptor{Err: errTooFarAhead}
	case diff > 3:
		feature = FeatureForecast10Day
	case diff >= 0:
		feature = FeatureForecast
	default:
		return Descriptor{Err: errHistorical}
	}

	display := " today"
	if diff != 0 {
		display = " on " + FormattedDate(target, now)
	}

	return Descriptor{
		Today:         diff == 0,
		Day:           target.Day(),
		Month:         int(target.Month()),
		Year:          target.Year(),
		Weekday:       daysOfWeek[target.Weekday()],
		Period:        2 * diff,
		Feature:       feature,
		DisplayPhrase: display + " is forecast to be ",
	}
}

// FormattedDate renders a speech-ready date. The year is omitted when it
// matches the current year: "Friday June 12th" vs "Friday 6/5/2016".
func FormattedDate(target, now time.Time) string {
	target = target.UTC()
	weekday := daysOfWeek[target.Weekday()]
	if target.Year() == now.UTC().Year() {
		return fmt.Sprintf("%s %s %s", weekday, months[target.Month()-1], ordinal(target.Day()))
	}
	return fmt.Sprintf("%s %d/%d/%d", weekday, int(target.Month()), target.Day(), target.Year())
}

func ordinal(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate accepts the absolute forms the NLU and our own formatter produce:
// ISO dates, slashed dates, and the spoken "Friday June 12th" shape (with or
// without the weekday; year defaults to now's year).
func parseDate(expr string, now time.Time) (time.Time, bool) {
	expr = strings.TrimSpace(expr)

	for _, layout := range []string{"2006-01-02", "2006/01/02", time.RFC3339} {
		if t, err := time.Parse(layout, expr); err == nil {
			return t, true
		}
	}

	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return time.Time{}, false
	}

	// Drop a leading weekday.
	if isWeekday(fields[0]) {
		fields = fields[1:]
	}

	switch len(fields) {
	case 1:
		// "6/5/2016" or "6/5"
		if t, err := time.Parse("1/2/2006", fields[0]); err == nil {
			return t, true
		}
		if t, err := time.Parse("1/2", fields[0]); err == nil {
			return withYear(t, now.UTC().Year()), true
		}
	case 2, 3:
		month, ok := monthIndex(fields[0])
		if !ok {
			return time.Time{}, false
		}
		day, ok := parseOrdinalDay(fields[1])
		if !ok {
			return time.Time{}, false
		}
		year := now.UTC().Year()
		if len(fields) == 3 {
			if _, err := fmt.Sscanf(fields[2], "%d", &year); err != nil {
				return time.Time{}, false
			}
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

func isWeekday(s string) bool {
	for _, d := range daysOfWeek {
		if strings.EqualFold(s, d) {
			return true
		}
	}
	return false
}

func monthIndex(s string) (int, bool) {
	for i, m := range months {
		if strings.EqualFold(s, m) {
			return i + 1, true
		}
	}
	return 0, false
}

func parseOrdinalDay(s string) (int, bool) {
	s = strings.TrimRight(strings.TrimSuffix(s, ","), "stndrh")
	var day int
	if _, err := fmt.Sscanf(s, "%d", &day); err != nil {
		return 0, false
	}
	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func withYear(t time.Time, year int) time.Time {
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
