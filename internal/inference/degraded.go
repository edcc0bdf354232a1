package inference

import (
	"regexp"
	"strings"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/timeparse"
)

var (
	headerDateRe    = regexp.MustCompile(`(?i)fecha|date`)
	headerWeekdayRe = regexp.MustCompile(`(?i)lunes|martes|miercoles|miércoles|jueves|viernes|sabado|sábado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday`)
	headerAgentRe   = regexp.MustCompile(`(?i)agente|asesor|nombre|agent`)
	headerStartRe   = regexp.MustCompile(`(?i)inicio|ingreso|entrada|start`)
	headerEndRe     = regexp.MustCompile(`(?i)fin|egreso|salida|end`)
	headerMotiveRe  = regexp.MustCompile(`(?i)motivo|novedad|motive`)
)

// DegradedExtract is the local, best-effort extractor used when the
// inference service is over quota or returned an unrepairable
// response. It locates columns by regex over headers (falling back to
// the inferred column types) and reconstructs minimal shift records
// from row positions. The result is always flagged degraded so
// consumers can tell best-effort data from authoritative data.
func DegradedExtract(desc FileDescription) *domain.StructuredExtraction {
	agentCol := findColumn(desc, headerAgentRe, "text")
	dateCol := findDateColumn(desc)
	startCol := findColumn(desc, headerStartRe, "time")
	endCol := findColumnAfter(desc, headerEndRe, "time", startCol)
	motiveCol := findColumn(desc, headerMotiveRe, "")

	ex := &domain.StructuredExtraction{Degraded: true}
	ex.Statistics.TotalRows = desc.RowCount

	coveredDates := make(map[string]bool)
	for _, row := range desc.rows {
		agent := cellAt(row, agentCol)
		if agent == "" {
			continue
		}

		shift := domain.ExtractedShift{
			AgentName: agent,
			Date:      cellAt(row, dateCol),
			StartTime: cellAt(row, startCol),
			EndTime:   cellAt(row, endCol),
			Motive:    cellAt(row, motiveCol),
		}
		ex.Shifts = append(ex.Shifts, shift)

		if date, err := timeparse.NormalizeDate(shift.Date); err == nil {
			coveredDates[date] = true
		}
	}

	for date := range coveredDates {
		ex.CoveredDates = append(ex.CoveredDates, date)
		if p, ok := periodOfDate(date); ok && !containsPeriod(ex.Periods, p) {
			ex.Periods = append(ex.Periods, p)
		}
	}

	return EnsureShape(ex)
}

// findDateColumn prefers an explicit date header, then a weekday-named
// header, then the first column the sampler typed as a date.
func findDateColumn(desc FileDescription) int {
	if col := matchHeader(desc.Headers, headerDateRe); col >= 0 {
		return col
	}
	if col := matchHeader(desc.Headers, headerWeekdayRe); col >= 0 {
		return col
	}
	return matchType(desc.ColumnTypes, "date", -1)
}

func findColumn(desc FileDescription, re *regexp.Regexp, typ string) int {
	if col := matchHeader(desc.Headers, re); col >= 0 {
		return col
	}
	if typ == "" {
		return -1
	}
	return matchType(desc.ColumnTypes, typ, -1)
}

// findColumnAfter is findColumn but skips a previously claimed column
// when falling back to types, so start and end never collide.
func findColumnAfter(desc FileDescription, re *regexp.Regexp, typ string, taken int) int {
	if col := matchHeader(desc.Headers, re); col >= 0 && col != taken {
		return col
	}
	return matchType(desc.ColumnTypes, typ, taken)
}

func matchHeader(headers []string, re *regexp.Regexp) int {
	for i, h := range headers {
		if re.MatchString(h) {
			return i
		}
	}
	return -1
}

func matchType(types []string, want string, skip int) int {
	for i, t := range types {
		if t == want && i != skip {
			return i
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func periodOfDate(date string) (domain.Period, bool) {
	// canonical YYYY-MM-DD
	if len(date) != 10 {
		return domain.Period{}, false
	}
	year := atoi(date[:4])
	month := atoi(date[5:7])
	if year == 0 || month == 0 {
		return domain.Period{}, false
	}
	return domain.Period{Year: year, Month: month}, true
}

func containsPeriod(periods []domain.Period, p domain.Period) bool {
	for _, q := range periods {
		if q == p {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
