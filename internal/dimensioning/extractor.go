package dimensioning

import (
	"log/slog"
	"strconv"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/timeparse"
)

// CutoffDay protects against partial first-week data: rows before the
// 5th calendar day of the month are dropped and counted.
const CutoffDay = 5

// Extract turns a workbook into shift records plus a row-accounting
// report. Per-row and per-sheet problems never abort the run; the only
// hard failure is a file that yields zero records.
func Extract(wb *Workbook, period domain.Period) ([]domain.ShiftRecord, *domain.ExtractionReport, error) {
	report := &domain.ExtractionReport{}
	var records []domain.ShiftRecord

	for _, sheet := range candidateSheets(wb) {
		if structErr := extractSheet(sheet, period, &records, report); structErr != nil {
			// Structural failure: local to this sheet, not the run.
			slog.Warn("hoja omitida por estructura", "error", structErr)
			report.SkippedSheets = append(report.SkippedSheets, structErr.Sheet)
		}
	}

	if len(records) == 0 {
		return nil, report, domain.ErrEmptyExtraction
	}
	return records, report, nil
}

// candidateSheets picks the worksheets whose names match the
// working-days vocabulary, falling back to the first sheet when none
// do.
func candidateSheets(wb *Workbook) []*Sheet {
	var matched []*Sheet
	for i := range wb.Sheets {
		if sheetNameMatches(wb.Sheets[i].Name) {
			matched = append(matched, &wb.Sheets[i])
		}
	}
	if len(matched) == 0 && len(wb.Sheets) > 0 {
		matched = append(matched, &wb.Sheets[0])
	}
	return matched
}

func extractSheet(sheet *Sheet, period domain.Period, records *[]domain.ShiftRecord, report *domain.ExtractionReport) *domain.StructuralError {
	if sheet.Shape == Positional {
		if missing := detectColumns(sheet); len(missing) > 0 {
			return &domain.StructuralError{Sheet: sheet.Name, Missing: missing}
		}
	}

	for _, row := range sheet.Rows {
		if rowIsBlank(sheet, row) {
			continue
		}
		report.RowsSeen++

		agent := sheet.Cell(row, ColAgent)
		if agent == "" {
			report.SkippedMissingColumn++
			continue
		}

		date, err := timeparse.NormalizeDateWithYear(sheet.Cell(row, ColDate), period.Year)
		if err != nil {
			// An unclassifiable date leaves the row unplaceable; it
			// lands in the same bucket as a missing cell.
			report.SkippedMissingColumn++
			continue
		}

		start, startErr := timeparse.NormalizeTime(sheet.Cell(row, ColStart))
		end, endErr := timeparse.NormalizeTime(sheet.Cell(row, ColEnd))
		if startErr != nil || endErr != nil {
			report.SkippedMissingTime++
			continue
		}

		if dayOfMonth(date) < CutoffDay {
			report.SkippedBeforeCutoff++
			continue
		}

		*records = append(*records, domain.ShiftRecord{
			AgentName:  agent,
			Supervisor: sheet.Cell(row, ColSupervisor),
			Skill:      sheet.Cell(row, ColSkill),
			Date:       date,
			DayKind:    NormalizeDayKind(sheet.Cell(row, ColDayKind), date),
			StartTime:  start,
			EndTime:    end,
			Motive:     NormalizeMotive(sheet.Cell(row, ColMotive)),
		})
		report.Retained++
	}

	return nil
}

func rowIsBlank(sheet *Sheet, row Row) bool {
	if sheet.Shape == Keyed {
		for _, v := range row.Fields {
			if v != "" {
				return false
			}
		}
		return true
	}
	for _, v := range row.Values {
		if v != "" {
			return false
		}
	}
	return true
}

func dayOfMonth(date string) int {
	// date is canonical YYYY-MM-DD by the time we get here.
	day, _ := strconv.Atoi(date[8:])
	return day
}

// WorkbookFromExtraction wraps an inference extraction as a keyed-row
// workbook so it re-enters the exact same normalize/schedule/validate
// chain as a directly parsed file.
func WorkbookFromExtraction(ex *domain.StructuredExtraction, filename string) *Workbook {
	sheet := Sheet{
		Name:   "inference",
		Shape:  Keyed,
		Header: []string{string(ColAgent), string(ColDate), string(ColStart), string(ColEnd), string(ColMotive)},
	}

	for _, s := range ex.Shifts {
		sheet.Rows = append(sheet.Rows, Row{Fields: map[string]string{
			string(ColAgent):  s.AgentName,
			string(ColDate):   s.Date,
			string(ColStart):  s.StartTime,
			string(ColEnd):    s.EndTime,
			string(ColMotive): s.Motive,
		}})
	}

	return &Workbook{Filename: filename, Sheets: []Sheet{sheet}}
}
