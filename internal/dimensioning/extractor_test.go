package dimensioning

import (
	"testing"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mayPeriod = domain.Period{Year: 2025, Month: 5}

func laborableSheet(rows ...[]string) Sheet {
	return Sheet{
		Name:   "Días Laborables",
		Shape:  Positional,
		Header: []string{"Agente", "Supervisor", "Skill", "Fecha", "Tipo de día", "Hora Inicio", "Hora Fin", "Motivo"},
		Rows:   toRows(rows),
	}
}

func toRows(rows [][]string) []Row {
	out := make([]Row, 0, len(rows))
	for _, values := range rows {
		out = append(out, Row{Values: values})
	}
	return out
}

func TestExtractRetainsNormalRows(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{laborableSheet(
		[]string{"Gomez, Ana", "Ruiz", "Ventas", "08/05/2025", "Laborable", "8:00", "16:00", "Jornada Normal"},
		[]string{"Diaz, Luis", "Ruiz", "Ventas", "09/05/2025", "Sábado", "23:30", "07:30", "Jornada Normal"},
	)}}

	records, report, err := Extract(wb, mayPeriod)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Gomez, Ana", records[0].AgentName)
	assert.Equal(t, "2025-05-08", records[0].Date)
	assert.Equal(t, "08:00", records[0].StartTime)
	assert.Equal(t, "16:00", records[0].EndTime)
	assert.Equal(t, domain.MotiveNormalShift, records[0].Motive)
	// Working-day vocabulary intentionally lands on the holiday kind.
	assert.Equal(t, domain.DayKindHoliday, records[0].DayKind)
	assert.Equal(t, domain.DayKindSaturday, records[1].DayKind)

	assert.Equal(t, 2, report.RowsSeen)
	assert.Equal(t, 2, report.Retained)
}

func TestExtractRowPolicy(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{laborableSheet(
		[]string{"", "", "", "", "", "", "", ""},                                             // blank: ignored entirely
		[]string{"", "Ruiz", "Ventas", "08/05/2025", "", "8:00", "16:00", "Jornada Normal"},  // missing agent
		[]string{"Gomez", "Ruiz", "Ventas", "08/05/2025", "", "", "16:00", "Jornada Normal"}, // missing start
		[]string{"Diaz", "Ruiz", "Ventas", "02/05/2025", "", "8:00", "16:00", "Jornada Normal"}, // before cutoff
		[]string{"Lopez", "Ruiz", "Ventas", "08/05/2025", "", "8:00", "16:00", "Vacaciones"}, // retained, not schedulable
		[]string{"Perez", "Ruiz", "Ventas", "08/05/2025", "", "8:00", "16:00", "Jornada Normal"},
	)}}

	records, report, err := Extract(wb, mayPeriod)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 5, report.RowsSeen)
	assert.Equal(t, 1, report.SkippedMissingColumn)
	assert.Equal(t, 1, report.SkippedMissingTime)
	assert.Equal(t, 1, report.SkippedBeforeCutoff)
	assert.Equal(t, 2, report.Retained)

	assert.False(t, records[0].Schedulable()) // vacaciones
	assert.True(t, records[1].Schedulable())
}

func TestExtractSkipsSheetMissingColumns(t *testing.T) {
	broken := Sheet{
		Name:   "Días Laborables",
		Shape:  Positional,
		Header: []string{"Agente", "Fecha"}, // no times, no motive
		Rows:   toRows([][]string{{"Gomez", "08/05/2025"}}),
	}
	good := laborableSheet(
		[]string{"Perez", "Ruiz", "Ventas", "08/05/2025", "", "8:00", "16:00", "Jornada Normal"},
	)
	good.Name = "No Laborables"

	records, report, err := Extract(&Workbook{Sheets: []Sheet{broken, good}}, mayPeriod)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Días Laborables"}, report.SkippedSheets)
}

func TestExtractSheetReportsMissingColumns(t *testing.T) {
	sheet := Sheet{
		Name:   "Días Laborables",
		Shape:  Positional,
		Header: []string{"Agente", "Fecha"},
		Rows:   toRows([][]string{{"Gomez", "08/05/2025"}}),
	}

	report := &domain.ExtractionReport{}
	var records []domain.ShiftRecord

	structErr := extractSheet(&sheet, mayPeriod, &records, report)
	require.NotNil(t, structErr)
	assert.Equal(t, "Días Laborables", structErr.Sheet)
	assert.ElementsMatch(t, []string{"startTime", "endTime", "motive"}, structErr.Missing)
	assert.Empty(t, records)
}

func TestExtractFallsBackToFirstSheet(t *testing.T) {
	sheet := laborableSheet(
		[]string{"Perez", "Ruiz", "Ventas", "08/05/2025", "", "8:00", "16:00", "Jornada Normal"},
	)
	sheet.Name = "Hoja1"

	records, _, err := Extract(&Workbook{Sheets: []Sheet{sheet}}, mayPeriod)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExtractEmptyFileIsHardFailure(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{laborableSheet()}}

	_, report, err := Extract(wb, mayPeriod)
	require.ErrorIs(t, err, domain.ErrEmptyExtraction)
	assert.Equal(t, 0, report.Retained)
}

func TestExtractKeyedRows(t *testing.T) {
	ex := &domain.StructuredExtraction{
		Shifts: []domain.ExtractedShift{
			{AgentName: "Gomez", Date: "2025-05-08", StartTime: "08:00", EndTime: "16:00", Motive: "normal shift"},
		},
	}

	wb := WorkbookFromExtraction(ex, "dimensionado.xlsx")
	records, report, err := Extract(wb, mayPeriod)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.MotiveNormalShift, records[0].Motive)
	assert.Equal(t, 1, report.Retained)
}

func TestPeriodFromFilename(t *testing.T) {
	p, ok := PeriodFromFilename("Dimensionamiento Mayo 2025.xlsx")
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 2025, Month: 5}, p)

	p, ok = PeriodFromFilename("dimensionado_05-2025.xlsx")
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 2025, Month: 5}, p)

	// Underscores on both sides of the numeric pair.
	p, ok = PeriodFromFilename("refris_7_2024_final.xlsx")
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 2024, Month: 7}, p)

	p, ok = PeriodFromFilename("12/2025 dimensionado.xlsx")
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 2025, Month: 12}, p)

	_, ok = PeriodFromFilename("turnos.xlsx")
	assert.False(t, ok)
}

func TestNormalizeMotive(t *testing.T) {
	assert.Equal(t, domain.MotiveNormalShift, NormalizeMotive("  Jornada Normal "))
	assert.Equal(t, domain.MotiveNormalShift, NormalizeMotive("NORMAL SHIFT"))
	assert.Equal(t, "vacaciones", NormalizeMotive("Vacaciones"))
}
