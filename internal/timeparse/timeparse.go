// Package timeparse canonicalizes the date and clock-time values found
// in dimensioning files: ISO dates, day-first and month-first locale
// dates, Excel serial numbers and weekday free text, plus the handful
// of clock formats the source workbooks use.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

const (
	canonicalDateLayout = "2006-01-02"
	minutesPerDay       = 24 * 60
)

var (
	isoDateRe    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	localeDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	serialDateRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	// Weekday name followed by a day/month pair, optionally a year.
	// Covers both "Lunes 5/8" and "monday 05/08/2025".
	freeTextDateRe = regexp.MustCompile(`(?i)(lunes|martes|miercoles|miércoles|jueves|viernes|sabado|sábado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday)[\s,]+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)

	clockRe   = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})(?::(\d{2}))?$`)
	clockHRe  = regexp.MustCompile(`(?i)^(\d{1,2})h(\d{2})$`)
	clockAPRe = regexp.MustCompile(`(?i)^(\d{1,2})[:.](\d{2})\s*(am|pm)$`)
)

// NormalizeDate canonicalizes input to YYYY-MM-DD. Formats are tried in
// a fixed priority order (ISO, locale day-first, Excel serial, weekday
// free text) and the first successful parse wins. Failure returns a
// *domain.ClassificationError; callers skip the row, not the batch.
func NormalizeDate(input string) (string, error) {
	return NormalizeDateWithYear(input, time.Now().Year())
}

// NormalizeDateWithYear is NormalizeDate with an explicit year for
// inputs that carry none (weekday free text). The extractor passes the
// target period's year.
func NormalizeDateWithYear(input string, year int) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", &domain.ClassificationError{Field: "date", Raw: input}
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if d, ok := buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, nil
		}
		return "", &domain.ClassificationError{Field: "date", Raw: input}
	}

	if m := localeDateRe.FindStringSubmatch(s); m != nil {
		day, month, yr := atoi(m[1]), atoi(m[2]), resolveYear(m[3])
		if d, ok := buildDate(yr, month, day); ok {
			return d, nil
		}
		// Month-first files exist too; retry with the pair swapped.
		if d, ok := buildDate(yr, day, month); ok {
			return d, nil
		}
		return "", &domain.ClassificationError{Field: "date", Raw: input}
	}

	if serialDateRe.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err == nil && serial >= 1 && serial < 300000 {
			return SerialToDate(int(serial)), nil
		}
		return "", &domain.ClassificationError{Field: "date", Raw: input}
	}

	if m := freeTextDateRe.FindStringSubmatch(s); m != nil {
		day, month := atoi(m[2]), atoi(m[3])
		yr := year
		if m[4] != "" {
			yr = resolveYear(m[4])
		}
		if d, ok := buildDate(yr, month, day); ok {
			return d, nil
		}
	}

	return "", &domain.ClassificationError{Field: "date", Raw: input}
}

// SerialToDate converts a spreadsheet serial number (days since
// 1899-12-30) to a canonical date. The serial stream in these files is
// not the classic Lotus one: serials below 60 run one day ahead of the
// epoch (serial 1 is 1900-01-01), serial 60 is the phantom 1900-02-29
// clamped to the real end of February, and serials past it run three
// days ahead (serial 45782 is 2025-05-08). Both anchors are load
// bearing for historical files; do not re-derive the offsets from the
// standard Excel mapping.
func SerialToDate(serial int) string {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	switch {
	case serial < 60:
		return epoch.AddDate(0, 0, serial+1).Format(canonicalDateLayout)
	case serial == 60:
		return "1900-02-28"
	default:
		return epoch.AddDate(0, 0, serial+3).Format(canonicalDateLayout)
	}
}

// NormalizeTime canonicalizes input to HH:MM (24h). Accepted forms:
// H:MM/HH:MM with optional seconds, HH.MM, HHhMM and HH:MM am/pm.
// Idempotent on canonical input.
func NormalizeTime(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", &domain.ClassificationError{Field: "time", Raw: input}
	}

	if m := clockAPRe.FindStringSubmatch(s); m != nil {
		hour, minute := atoi(m[1]), atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return "", &domain.ClassificationError{Field: "time", Raw: input}
		}
		if hour == 12 {
			hour = 0
		}
		if strings.EqualFold(m[3], "pm") {
			hour += 12
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	var hour, minute int
	switch {
	case clockRe.MatchString(s):
		m := clockRe.FindStringSubmatch(s)
		hour, minute = atoi(m[1]), atoi(m[2])
	case clockHRe.MatchString(s):
		m := clockHRe.FindStringSubmatch(s)
		hour, minute = atoi(m[1]), atoi(m[2])
	default:
		return "", &domain.ClassificationError{Field: "time", Raw: input}
	}

	if hour > 23 || minute > 59 {
		return "", &domain.ClassificationError{Field: "time", Raw: input}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ToMinutes converts a canonical HH:MM to minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(hhmm))
	if m == nil {
		return 0, &domain.ClassificationError{Field: "time", Raw: hhmm}
	}
	hour, minute := atoi(m[1]), atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, &domain.ClassificationError{Field: "time", Raw: hhmm}
	}
	return hour*60 + minute, nil
}

// FromMinutes formats minutes-since-midnight as HH:MM, wrapping values
// past midnight via modulo.
func FromMinutes(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// resolveYear expands two-digit years: >=50 lands in the 1900s, the
// rest in the 2000s.
func resolveYear(s string) int {
	year := atoi(s)
	if len(s) > 2 {
		return year
	}
	if year >= 50 {
		return 1900 + year
	}
	return 2000 + year
}

func buildDate(year, month, day int) (string, bool) {
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30), which we must reject.
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return "", false
	}
	return d.Format(canonicalDateLayout), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
