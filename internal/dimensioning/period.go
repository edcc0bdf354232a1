package dimensioning

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

var monthNames = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5,
	"junio": 6, "julio": 7, "agosto": 8, "septiembre": 9, "setiembre": 9,
	"octubre": 10, "noviembre": 11, "diciembre": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
	"june": 6, "july": 7, "august": 8, "september": 9,
	"october": 10, "november": 11, "december": 12,
}

var (
	yearTokenRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	// \b would reject an underscore before the month (underscore is a
	// word character), so the boundaries are spelled out as non-digits.
	numericPeriod  = regexp.MustCompile(`(?:^|[^0-9])(\d{1,2})[-_/]((?:19|20)\d{2})(?:[^0-9]|$)`)
	wordSplitterRe = regexp.MustCompile(`[\s_\-.]+`)
)

// PeriodFromFilename infers the month a dimensioning file covers from
// its name: a month-name token plus a 4-digit year, or a numeric
// MM-YYYY pair. Reports false when the filename carries neither.
func PeriodFromFilename(filename string) (domain.Period, bool) {
	lowered := strings.ToLower(filename)

	if m := numericPeriod.FindStringSubmatch(lowered); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return domain.Period{Year: year, Month: month}, true
		}
	}

	var month int
	for _, word := range wordSplitterRe.Split(lowered, -1) {
		if m, ok := monthNames[word]; ok {
			month = m
			break
		}
	}
	if month == 0 {
		return domain.Period{}, false
	}

	yearToken := yearTokenRe.FindString(lowered)
	if yearToken == "" {
		return domain.Period{}, false
	}
	year, _ := strconv.Atoi(yearToken)

	return domain.Period{Year: year, Month: month}, true
}

// CurrentPeriod is the fallback when the filename gives nothing away.
func CurrentPeriod(now time.Time) domain.Period {
	return domain.Period{Year: now.Year(), Month: int(now.Month())}
}
