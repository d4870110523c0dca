package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{
			name:     "with comma and seconds",
			raw:      "01/06/2024, 08:15:30",
			expected: time.Date(2024, 6, 1, 8, 15, 30, 0, time.Local),
		},
		{
			name:     "without comma",
			raw:      "01/06/2024 08:15:30",
			expected: time.Date(2024, 6, 1, 8, 15, 30, 0, time.Local),
		},
		{
			name:     "without seconds",
			raw:      "24/12/2023, 17:05",
			expected: time.Date(2023, 12, 24, 17, 5, 0, 0, time.Local),
		},
		{
			name:     "empty",
			raw:      "",
			expected: time.Time{},
		},
		{
			name:     "date only",
			raw:      "01/06/2024",
			expected: time.Time{},
		},
		{
			name:     "garbage",
			raw:      "not a timestamp",
			expected: time.Time{},
		},
		{
			name:     "non numeric date",
			raw:      "ab/cd/efgh 08:00",
			expected: time.Time{},
		},
		{
			name:     "month out of range",
			raw:      "01/13/2024 08:00",
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTimestamp(tt.raw))
		})
	}
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2024-06-01", DayKey("01/06/2024, 08:00:00"))
	assert.Equal(t, "2024-06-01", DayKey("1/6/2024 23:59"))
	assert.Equal(t, "", DayKey("bogus"))
}

func TestWeekAnchorIsAlwaysSunday(t *testing.T) {
	// 2024-06-02 is a Sunday
	days := []string{"2024-06-02", "2024-06-03", "2024-06-05", "2024-06-08"}
	for _, d := range days {
		anchor := WeekAnchor(d)
		assert.Equal(t, "2024-06-02", anchor, "anchor of %s", d)

		parsed, err := time.ParseInLocation("2006-01-02", anchor, time.Local)
		assert.NoError(t, err)
		assert.Equal(t, time.Sunday, parsed.Weekday())
	}
}

func TestWeekAnchorShiftsByWholeWeeks(t *testing.T) {
	dates := []string{"2024-06-01", "2024-03-10", "2023-12-31", "2024-11-03"}
	for _, d := range dates {
		base, err := time.ParseInLocation("2006-01-02", d, time.Local)
		assert.NoError(t, err)
		next := base.AddDate(0, 0, 7).Format("2006-01-02")

		a1, err := time.ParseInLocation("2006-01-02", WeekAnchor(d), time.Local)
		assert.NoError(t, err)
		assert.Equal(t, a1.AddDate(0, 0, 7).Format("2006-01-02"), WeekAnchor(next))
	}
}

func TestFormatWeekRange(t *testing.T) {
	assert.Equal(t, "DU 2 JUIN AU 8 JUIN 2024", FormatWeekRange("2024-06-02"))
	assert.Equal(t, "DU 29 DÉC. AU 4 JANV. 2025", FormatWeekRange("2024-12-29"))
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "3h 30m", FormatMs(12_600_000))
	assert.Equal(t, "0h 00m", FormatMs(0))
	assert.Equal(t, "0h 00m", FormatMs(-500))
	assert.Equal(t, "8h 05m", FormatMs(8*3_600_000+5*60_000))
}

func TestParseClock(t *testing.T) {
	ms, err := ParseClock("08:30")
	assert.NoError(t, err)
	assert.Equal(t, int64(8*3_600_000+30*60_000), ms)

	for _, bad := range []string{"", "8", "25:00", "08:60", "aa:bb"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "clock %q", bad)
	}
}
