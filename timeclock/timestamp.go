package timeclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The mobile clients write punch timestamps with the fr-FR locale:
// "DD/MM/YYYY, HH:MM:SS" (the comma and the seconds are optional). Parsing
// fails soft: a malformed value yields the zero instant so a bad record
// sorts first and contributes nothing instead of poisoning aggregation.

const dayKeyLayout = "2006-01-02"

// ParseTimestamp parses a locale punch timestamp into a local instant.
// Returns the zero time for anything it cannot read.
func ParseTimestamp(raw string) time.Time {
	clean := strings.TrimSpace(strings.ReplaceAll(raw, ",", " "))
	parts := strings.Fields(clean)
	if len(parts) < 2 {
		return time.Time{}
	}

	dateParts := strings.Split(parts[0], "/")
	if len(dateParts) != 3 {
		return time.Time{}
	}
	day, err1 := strconv.Atoi(dateParts[0])
	month, err2 := strconv.Atoi(dateParts[1])
	year, err3 := strconv.Atoi(dateParts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}

	timeParts := strings.Split(parts[1], ":")
	if len(timeParts) < 2 {
		return time.Time{}
	}
	hour, err4 := strconv.Atoi(timeParts[0])
	minute, err5 := strconv.Atoi(timeParts[1])
	if err4 != nil || err5 != nil {
		return time.Time{}
	}
	second := 0
	if len(timeParts) > 2 {
		second, _ = strconv.Atoi(timeParts[2])
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
}

// DayKey extracts the date portion of a locale timestamp as an ISO
// "YYYY-MM-DD" grouping key, "" for malformed input.
func DayKey(raw string) string {
	t := ParseTimestamp(raw)
	if t.IsZero() {
		return ""
	}
	return t.Format(dayKeyLayout)
}

// DayKeyOf formats an instant as an ISO day key.
func DayKeyOf(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ClockOf formats an instant as "HH:MM" for display and approval editing.
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}

// WeekAnchor returns the Sunday of the calendar week containing the given
// ISO day key, itself as an ISO day key. The computation runs at local noon
// so DST transitions cannot shift the anchor across midnight. Returns "" for
// input it cannot parse.
func WeekAnchor(dayKey string) string {
	d, err := time.ParseInLocation(dayKeyLayout, dayKey, time.Local)
	if err != nil {
		return ""
	}
	noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.Local)
	sunday := noon.AddDate(0, 0, -int(noon.Weekday()))
	return sunday.Format(dayKeyLayout)
}

var frShortMonths = [...]string{
	"JANV.", "FÉVR.", "MARS", "AVR.", "MAI", "JUIN",
	"JUIL.", "AOÛT", "SEPT.", "OCT.", "NOV.", "DÉC.",
}

// FormatWeekRange renders a week anchor as the human reporting range
// "DU <d> <mois> AU <d> <mois> <yyyy>" spanning Sunday..Saturday.
// Display-only.
func FormatWeekRange(anchor string) string {
	sun, err := time.ParseInLocation(dayKeyLayout, anchor, time.Local)
	if err != nil {
		return anchor
	}
	sat := sun.AddDate(0, 0, 6)
	return fmt.Sprintf("DU %d %s AU %d %s %d",
		sun.Day(), frShortMonths[sun.Month()-1],
		sat.Day(), frShortMonths[sat.Month()-1],
		sat.Year())
}

// FormatMs renders a millisecond total as "3h 30m" for reports; negative
// input reads as zero.
func FormatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

// ParseClock converts an approver-edited "HH:MM" clock value to a
// millisecond offset from midnight.
func ParseClock(clock string) (int64, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	return int64(h)*3_600_000 + int64(m)*60_000, nil
}
