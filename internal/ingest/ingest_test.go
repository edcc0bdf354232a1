package ingest

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/config"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/inference"
)

type memoryStore struct {
	snapshots []*domain.WorkforceSnapshot
}

func (m *memoryStore) ReplaceSnapshot(snapshot *domain.WorkforceSnapshot) error {
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

type stubExtractor struct {
	extraction *domain.StructuredExtraction
	called     bool
}

func (s *stubExtractor) ExtractViaInference(_ context.Context, _ inference.FileDescription) (*domain.StructuredExtraction, error) {
	s.called = true
	return s.extraction, nil
}

func workbookBytes(t *testing.T, sheet string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheet, name, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestIngestFileDirectPath(t *testing.T) {
	content := workbookBytes(t, "Días Laborables", [][]string{
		{"Agente", "Fecha", "Inicio", "Fin", "Motivo"},
		{"Gomez", "08/05/2025", "8:00", "16:00", "Jornada Normal"},
		{"Diaz", "08/05/2025", "9:00", "13:00", "Jornada Normal"},
		{"Perez", "09/05/2025", "10:00", "18:00", "Licencia"},
	})

	store := &memoryStore{}
	extractor := &stubExtractor{}
	svc := NewService(&config.Config{}, store, extractor, nil, nil)

	result, err := svc.IngestFile(context.Background(), "mayo 2025.xlsx", bytes.NewReader(content))
	require.NoError(t, err)
	assert.False(t, extractor.called, "direct extraction must not reach inference")

	assert.Equal(t, domain.Period{Year: 2025, Month: 5}, result.Period)
	assert.Equal(t, 3, result.Report.Retained)
	assert.False(t, result.Degraded)

	require.Len(t, store.snapshots, 2)
	first := store.snapshots[0]
	assert.Equal(t, "2025-05-08", first.Date)
	assert.Equal(t, 2, first.WorkforceSize)
	// Gomez works 8 hours: two breaks. Diaz works 4: one.
	assert.Len(t, first.Breaks, 3)

	second := store.snapshots[1]
	assert.Equal(t, "2025-05-09", second.Date)
	// Non-normal motive is retained but never scheduled.
	assert.Len(t, second.Records, 1)
	assert.Empty(t, second.Breaks)

	require.Len(t, result.Reports, 2)
	assert.True(t, result.Reports[0].Verdict.Valid)
}

func TestIngestFileFallsBackToInference(t *testing.T) {
	// Headers nobody recognizes and no parseable rows.
	content := workbookBytes(t, "Hoja1", [][]string{
		{"col_a", "col_b"},
		{"x", "y"},
	})

	store := &memoryStore{}
	extractor := &stubExtractor{extraction: &domain.StructuredExtraction{
		Shifts: []domain.ExtractedShift{
			{AgentName: "Gomez", Date: "2025-05-08", StartTime: "08:00", EndTime: "16:00", Motive: "jornada normal"},
		},
		Degraded: true,
	}}
	svc := NewService(&config.Config{}, store, extractor, nil, nil)

	result, err := svc.IngestFile(context.Background(), "mayo 2025.xlsx", bytes.NewReader(content))
	require.NoError(t, err)
	assert.True(t, extractor.called)
	assert.True(t, result.Degraded)

	require.Len(t, store.snapshots, 1)
	assert.True(t, store.snapshots[0].Degraded)
	assert.Len(t, store.snapshots[0].Breaks, 2)
}

func TestIngestFileCancelledBeforePersist(t *testing.T) {
	content := workbookBytes(t, "Días Laborables", [][]string{
		{"Agente", "Fecha", "Inicio", "Fin", "Motivo"},
		{"Gomez", "08/05/2025", "8:00", "16:00", "Jornada Normal"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &memoryStore{}
	svc := NewService(&config.Config{}, store, &stubExtractor{}, nil, nil)

	_, err := svc.IngestFile(ctx, "mayo 2025.xlsx", bytes.NewReader(content))
	require.Error(t, err)
	assert.Empty(t, store.snapshots, "a cancelled ingestion must not persist anything")
}
