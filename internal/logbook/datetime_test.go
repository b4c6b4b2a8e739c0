package logbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	local := func(y int, m time.Month, d, hh, mm int) int64 {
		return time.Date(y, m, d, hh, mm, 0, 0, time.Local).UnixMilli()
	}

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"empty", "", 0},
		{"garbage", "not a date", 0},
		{"missing year", "05.03", 0},
		{"missing month and year", "05", 0},
		{"zero day", "00.03.2024 21:15", 0},
		{"zero month", "05.00.2024", 0},
		{"non-numeric year", "05.03.abcd", 0},
		{"iso format", "2024-03-05 21:15", 0},
		{"date and time", "05.03.2024 21:15", local(2024, time.March, 5, 21, 15)},
		{"date only defaults to midnight", "05.03.2024", local(2024, time.March, 5, 0, 0)},
		{"hour only", "05.03.2024 21", local(2024, time.March, 5, 21, 0)},
		{"non-numeric hour", "05.03.2024 xx:15", local(2024, time.March, 5, 0, 15)},
		{"double space drops time", "05.03.2024  21:15", local(2024, time.March, 5, 0, 0)},
		{"leading digits only", "7x.03.2024", local(2024, time.March, 7, 0, 0)},
		{"single digit parts", "1.1.2024 2:05", local(2024, time.January, 1, 2, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseDateTime(tt.input))
		})
	}
}

func TestParseDateTimeOrdering(t *testing.T) {
	older := ParseDateTime("12.05.2023 22:00")
	newer := ParseDateTime("01.01.2024 20:30")
	sameDayLater := ParseDateTime("01.01.2024 23:59")

	require.Greater(t, newer, older)
	require.Greater(t, sameDayLater, newer)
	require.Greater(t, older, ParseDateTime("garbage"))
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"05", 5, true},
		{"  12", 12, true},
		{"-3", -3, true},
		{"+4", 4, true},
		{"2024abc", 2024, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := leadingInt(tt.input)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
