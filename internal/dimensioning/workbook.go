// Package dimensioning reads dimensioning workbooks: it locates the
// relevant sheets, detects the semantic columns behind their loosely
// standardized headers and turns data rows into shift records, applying
// the business filters (motive, month cutoff) along the way.
package dimensioning

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowShape tells how a sheet's rows carry their cells. It is resolved
// once when the sheet is built, never re-sniffed per row.
type RowShape int

const (
	// Positional rows index cells by column position (workbook files).
	Positional RowShape = iota
	// Keyed rows index cells by field name (inference extractions).
	Keyed
)

type Row struct {
	Values []string
	Fields map[string]string
}

type Sheet struct {
	Name   string
	Shape  RowShape
	Header []string
	Rows   []Row

	// filled by detectColumns for positional sheets
	columns map[Column]int
}

// Cell returns the cell for a detected column, honoring the sheet's
// row shape.
func (s *Sheet) Cell(row Row, col Column) string {
	switch s.Shape {
	case Keyed:
		return strings.TrimSpace(row.Fields[string(col)])
	default:
		idx, ok := s.columns[col]
		if !ok || idx >= len(row.Values) {
			return ""
		}
		return strings.TrimSpace(row.Values[idx])
	}
}

type Workbook struct {
	Filename string
	Sheets   []Sheet
}

// LoadWorkbook parses an xlsx stream into the in-memory model. The
// first row of every sheet is taken as its header row.
func LoadWorkbook(r io.Reader, filename string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &Workbook{Filename: filename}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}

		sheet := Sheet{Name: name, Shape: Positional}
		if len(rows) > 0 {
			sheet.Header = rows[0]
			for _, values := range rows[1:] {
				sheet.Rows = append(sheet.Rows, Row{Values: values})
			}
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}
