package inference

import (
	"testing"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/dimensioning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureShapeFillsDefaults(t *testing.T) {
	ex := EnsureShape(nil)
	require.NotNil(t, ex)
	assert.NotNil(t, ex.Periods)
	assert.NotNil(t, ex.Shifts)
	assert.NotNil(t, ex.CoveredDates)

	ex = EnsureShape(&domain.StructuredExtraction{
		Shifts: []domain.ExtractedShift{
			{AgentName: "Gomez"},
			{AgentName: "Gomez"},
			{AgentName: "Diaz"},
		},
	})
	assert.Equal(t, 3, ex.Statistics.ParsedShifts)
	assert.Equal(t, 2, ex.Statistics.DistinctAgents)
}

func TestDescribeWorkbook(t *testing.T) {
	sheet := dimensioning.Sheet{
		Name:   "Días Laborables",
		Shape:  dimensioning.Positional,
		Header: []string{"Agente", "Fecha", "Inicio", "Fin"},
	}
	for i := 0; i < 30; i++ {
		sheet.Rows = append(sheet.Rows, dimensioning.Row{
			Values: []string{"Gomez", "08/05/2025", "8:00", "16:00"},
		})
	}

	desc := DescribeWorkbook(&dimensioning.Workbook{
		Filename: "mayo 2025.xlsx",
		Sheets:   []dimensioning.Sheet{sheet},
	})

	assert.Equal(t, 30, desc.RowCount)
	assert.Equal(t, 4, desc.ColumnCount)
	assert.Len(t, desc.SampleRows, maxSampleRows)
	assert.Equal(t, []string{"text", "date", "time", "time"}, desc.ColumnTypes)
}
