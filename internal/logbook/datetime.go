package logbook

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseDateTime converts "DD.MM.YYYY[ HH:MM]" into Unix milliseconds of the
// local wall-clock time. Empty or malformed dates yield 0, which sorts before
// every real date. The time part defaults to 00:00.
func ParseDateTime(s string) int64 {
	if s == "" {
		return 0
	}

	fields := strings.Split(s, " ")
	datePart := fields[0]
	timePart := "00:00"
	if len(fields) > 1 {
		timePart = fields[1]
	}

	dmy := strings.Split(datePart, ".")
	d, okDay := component(dmy, 0)
	m, okMonth := component(dmy, 1)
	y, okYear := component(dmy, 2)
	if !okDay || !okMonth || !okYear || d == 0 || m == 0 || y == 0 {
		return 0
	}

	hm := strings.Split(timePart, ":")
	hh, _ := component(hm, 0)
	mm, _ := component(hm, 1)

	return time.Date(y, time.Month(m), d, hh, mm, 0, 0, time.Local).UnixMilli()
}

// component parses parts[i] as a leading integer; missing parts are invalid
func component(parts []string, i int) (int, bool) {
	if i >= len(parts) {
		return 0, false
	}
	return leadingInt(parts[i])
}

// leadingInt reads an optionally signed run of digits at the start of s,
// ignoring leading whitespace and anything after the digits ("7x" is 7).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
