package dimensioning

import "strings"

// Column names the eight semantic columns a dimensioning sheet can
// carry. The values double as the field keys of keyed rows.
type Column string

const (
	ColAgent      Column = "agentName"
	ColSupervisor Column = "supervisor"
	ColSkill      Column = "skill"
	ColDate       Column = "date"
	ColDayKind    Column = "dayKind"
	ColStart      Column = "startTime"
	ColEnd        Column = "endTime"
	ColMotive     Column = "motive"
)

// requiredColumns must all be detected for a sheet to be usable;
// a sheet missing any of them is skipped and reported.
var requiredColumns = []Column{ColAgent, ColDate, ColStart, ColEnd, ColMotive}

// headerVocabulary maps each semantic column to the case-insensitive
// substrings seen in real file headers (Spanish first, English files
// show up occasionally).
var headerVocabulary = map[Column][]string{
	ColAgent:      {"agente", "asesor", "nombre", "agent"},
	ColSupervisor: {"supervisor", "lider", "líder"},
	ColSkill:      {"skill", "habilidad", "campaña", "campana"},
	ColDate:       {"fecha", "date"},
	ColDayKind:    {"tipo", "day type", "daytype"},
	ColStart:      {"inicio", "ingreso", "entrada", "start"},
	ColEnd:        {"fin", "egreso", "salida", "end"},
	ColMotive:     {"motivo", "novedad", "motive"},
}

// Detection order matters: "fecha fin" must land on the end column,
// not the date column, so the more specific columns go first.
var detectionOrder = []Column{
	ColStart, ColEnd, ColDayKind, ColMotive, ColSupervisor, ColSkill, ColAgent, ColDate,
}

// detectColumns locates the semantic columns of a positional sheet by
// case-insensitive substring match against its header cells. Returns
// the canonical names still missing after the scan.
func detectColumns(sheet *Sheet) []string {
	sheet.columns = make(map[Column]int)
	used := make(map[int]bool)

	for _, col := range detectionOrder {
		for idx, cell := range sheet.Header {
			if used[idx] {
				continue
			}
			header := strings.ToLower(strings.TrimSpace(cell))
			if header == "" {
				continue
			}
			if matchesVocabulary(header, headerVocabulary[col]) {
				sheet.columns[col] = idx
				used[idx] = true
				break
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := sheet.columns[col]; !ok {
			missing = append(missing, string(col))
		}
	}
	return missing
}

func matchesVocabulary(header string, vocabulary []string) bool {
	for _, token := range vocabulary {
		if strings.Contains(header, token) {
			return true
		}
	}
	return false
}
