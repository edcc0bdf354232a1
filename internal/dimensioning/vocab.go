package dimensioning

import (
	"strings"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

// sheetNameVocabulary fuzzy-matches the worksheets worth reading:
// working-days and non-working-days sheets in either language.
var sheetNameVocabulary = []string{
	"laborable", "no laborable", "habiles", "hábiles", "feriado",
	"working days", "non-working days", "dimension",
}

func sheetNameMatches(name string) bool {
	lowered := strings.ToLower(name)
	for _, token := range sheetNameVocabulary {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

var normalMotiveVocabulary = []string{
	"jornada normal", "turno normal", "normal shift", "normal",
}

// NormalizeMotive canonicalizes the free-text motive column. Only
// records normalized to MotiveNormalShift are scheduled; everything
// else is kept verbatim (lowercased) for reporting.
func NormalizeMotive(raw string) string {
	motive := strings.ToLower(strings.TrimSpace(raw))
	for _, token := range normalMotiveVocabulary {
		if motive == token {
			return domain.MotiveNormalShift
		}
	}
	return motive
}

// NormalizeDayKind maps the day-type column onto the domain's day
// categories. Working/business-day vocabulary maps to the holiday
// category; see domain.DayKindHoliday for why that is deliberate.
// An empty or unrecognized value falls back to the date's weekday.
func NormalizeDayKind(raw, date string) domain.DayKind {
	kind := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case kind == "":
		return dayKindFromDate(date)
	case strings.Contains(kind, "laborable"), strings.Contains(kind, "habil"),
		strings.Contains(kind, "hábil"), strings.Contains(kind, "business"),
		strings.Contains(kind, "working"):
		return domain.DayKindHoliday
	case strings.Contains(kind, "sabado"), strings.Contains(kind, "sábado"),
		strings.Contains(kind, "saturday"):
		return domain.DayKindSaturday
	case strings.Contains(kind, "domingo"), strings.Contains(kind, "sunday"):
		return domain.DayKindSunday
	default:
		return dayKindFromDate(date)
	}
}

func dayKindFromDate(date string) domain.DayKind {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.DayKindRegular
	}
	switch d.Weekday() {
	case time.Saturday:
		return domain.DayKindSaturday
	case time.Sunday:
		return domain.DayKindSunday
	default:
		return domain.DayKindRegular
	}
}
