package filter

import (
	"regexp"
	"strconv"
	"time"
)

// first dd/mm/yy or dd/mm/yyyy in the text
var publishedRegex = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4}|\d{2})`)

// ParseDate extracts the first dd/mm/yy(yy) date found in text. Two digit
// years are taken as 20yy. ok is false when nothing matches or the match is
// not a real calendar date (32/13/2024).
func ParseDate(text string) (date time.Time, ok bool) {
	match := publishedRegex.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	if year < 100 {
		year += 2000
	}

	//time.Date normalizes overflow (32/01 -> 01/02), reject those
	date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, false
	}
	return date, true
}

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
