package inference

import (
	"regexp"
	"strings"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/dimensioning"
)

const maxSampleRows = 20

// FileDescription is the structured summary of a workbook embedded in
// the inference request: headers, sizes, sampled rows and a rough type
// per column. The full row set stays local for the degraded path and
// is never sent.
type FileDescription struct {
	Filename    string     `json:"filename"`
	SheetName   string     `json:"sheetName"`
	Headers     []string   `json:"headers"`
	RowCount    int        `json:"rowCount"`
	ColumnCount int        `json:"columnCount"`
	ColumnTypes []string   `json:"columnTypes"`
	SampleRows  [][]string `json:"sampleRows"`

	rows [][]string
}

var (
	dateCellRe = regexp.MustCompile(`^\d{1,4}[-/]\d{1,2}[-/]\d{1,4}$`)
	timeCellRe = regexp.MustCompile(`^\d{1,2}[:.h]\d{2}(:\d{2})?$`)
	numCellRe  = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// DescribeWorkbook summarizes the first sheet of a workbook for the
// inference request.
func DescribeWorkbook(wb *dimensioning.Workbook) FileDescription {
	desc := FileDescription{Filename: wb.Filename}
	if len(wb.Sheets) == 0 {
		return desc
	}

	sheet := wb.Sheets[0]
	desc.SheetName = sheet.Name
	desc.Headers = sheet.Header
	desc.ColumnCount = len(sheet.Header)
	desc.RowCount = len(sheet.Rows)

	for _, row := range sheet.Rows {
		desc.rows = append(desc.rows, row.Values)
	}

	sample := len(desc.rows)
	if sample > maxSampleRows {
		sample = maxSampleRows
	}
	desc.SampleRows = desc.rows[:sample]

	desc.ColumnTypes = inferColumnTypes(desc.Headers, desc.SampleRows)
	return desc
}

// inferColumnTypes classifies each column as date, time, number or
// text by majority vote over the sampled cells.
func inferColumnTypes(headers []string, rows [][]string) []string {
	types := make([]string, len(headers))
	for col := range headers {
		var dates, times, numbers, texts int
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			switch {
			case cell == "":
			case dateCellRe.MatchString(cell):
				dates++
			case timeCellRe.MatchString(cell):
				times++
			case numCellRe.MatchString(cell):
				numbers++
			default:
				texts++
			}
		}

		switch {
		case dates >= times && dates >= numbers && dates >= texts && dates > 0:
			types[col] = "date"
		case times >= numbers && times >= texts && times > 0:
			types[col] = "time"
		case numbers >= texts && numbers > 0:
			types[col] = "number"
		default:
			types[col] = "text"
		}
	}
	return types
}
