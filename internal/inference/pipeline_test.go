package inference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls   int
	results []stubResult
}

type stubResult struct {
	response string
	err      error
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	res := s.results[s.calls]
	s.calls++
	return res.response, res.err
}

func transientErr() error {
	return &domain.InferenceError{Kind: domain.InferenceTransient, Err: errors.New("timeout")}
}

func testDescription() FileDescription {
	return FileDescription{
		Filename:    "dimensionado_05-2025.xlsx",
		Headers:     []string{"Agente", "Fecha", "Inicio", "Fin", "Motivo"},
		ColumnTypes: []string{"text", "date", "time", "time", "text"},
		RowCount:    2,
		rows: [][]string{
			{"Gomez", "08/05/2025", "8:00", "16:00", "Jornada Normal"},
			{"Diaz", "09/05/2025", "9:00", "17:00", "Jornada Normal"},
		},
	}
}

func newTestPipeline(client Client) (*Pipeline, *[]time.Duration) {
	p := NewPipeline(client, PipelineConfig{})
	var sleeps []time.Duration
	p.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return p, &sleeps
}

func TestPipelineSuccess(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{response: "```json\n{\"periods\":[{\"year\":2025,\"month\":5}],\"shifts\":[{\"agentName\":\"Gomez\",\"date\":\"2025-05-08\",\"startTime\":\"08:00\",\"endTime\":\"16:00\",\"motive\":\"normal shift\"}],\"coveredDates\":[\"2025-05-08\"],\"statistics\":{\"totalRows\":1}}\n```"},
	}}

	p, sleeps := newTestPipeline(client)
	ex, err := p.ExtractViaInference(context.Background(), testDescription())
	require.NoError(t, err)
	assert.False(t, ex.Degraded)
	assert.Len(t, ex.Shifts, 1)
	assert.Empty(t, *sleeps)
	assert.Equal(t, 1, client.calls)
}

func TestPipelineRetriesTransientWithBackoff(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: transientErr()},
		{err: transientErr()},
		{err: transientErr()},
	}}

	p, sleeps := newTestPipeline(client)
	_, err := p.ExtractViaInference(context.Background(), testDescription())
	require.Error(t, err)

	var infErr *domain.InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, domain.InferenceTransient, infErr.Kind)

	// Exactly two waits before the 2nd and 3rd attempts: 2s then 4s.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps)
	assert.Equal(t, 3, client.calls)
}

func TestPipelineRecoversOnSecondAttempt(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: transientErr()},
		{response: "```json\n{\"shifts\":[],\"periods\":[],\"coveredDates\":[],\"statistics\":{}}\n```"},
	}}

	p, sleeps := newTestPipeline(client)
	ex, err := p.ExtractViaInference(context.Background(), testDescription())
	require.NoError(t, err)
	assert.False(t, ex.Degraded)
	assert.Equal(t, []time.Duration{2 * time.Second}, *sleeps)
}

func TestPipelineQuotaDegradesImmediately(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: &domain.InferenceError{Kind: domain.InferenceQuota, Err: errors.New("429")}},
	}}

	p, sleeps := newTestPipeline(client)
	ex, err := p.ExtractViaInference(context.Background(), testDescription())
	require.NoError(t, err)
	assert.True(t, ex.Degraded)
	assert.Empty(t, *sleeps)
	assert.Equal(t, 1, client.calls)

	// The local heuristic still reconstructed the rows.
	require.Len(t, ex.Shifts, 2)
	assert.Equal(t, "Gomez", ex.Shifts[0].AgentName)
	assert.Equal(t, "8:00", ex.Shifts[0].StartTime)
}

func TestPipelineTerminalFailsFirstAttempt(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: &domain.InferenceError{Kind: domain.InferenceTerminal, Err: errors.New("401")}},
	}}

	p, sleeps := newTestPipeline(client)
	_, err := p.ExtractViaInference(context.Background(), testDescription())
	require.Error(t, err)

	var infErr *domain.InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, domain.InferenceTerminal, infErr.Kind)
	assert.Empty(t, *sleeps)
	assert.Equal(t, 1, client.calls)
}

func TestPipelineUnrepairableResponseDegrades(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{response: "no hay JSON acá"},
	}}

	p, _ := newTestPipeline(client)
	ex, err := p.ExtractViaInference(context.Background(), testDescription())
	require.NoError(t, err)
	assert.True(t, ex.Degraded)
}

func TestPipelineRepairsDriftingResponse(t *testing.T) {
	// Single quotes, unquoted keys, trailing comma, undefined.
	client := &stubClient{results: []stubResult{
		{response: "```json\n{shifts: [{agentName: 'Gomez', date: '2025-05-08', startTime: '08:00', endTime: '16:00', motive: undefined,}],}\n```"},
	}}

	p, _ := newTestPipeline(client)
	ex, err := p.ExtractViaInference(context.Background(), testDescription())
	require.NoError(t, err)
	assert.False(t, ex.Degraded)
	require.Len(t, ex.Shifts, 1)
	assert.Equal(t, "Gomez", ex.Shifts[0].AgentName)
	// Shape validator filled the omitted fields.
	assert.NotNil(t, ex.CoveredDates)
	assert.NotNil(t, ex.Periods)
	assert.Equal(t, 1, ex.Statistics.ParsedShifts)
}
