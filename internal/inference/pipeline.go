package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

type PipelineConfig struct {
	MaxAttempts    int
	BackoffBase    time.Duration
	AttemptTimeout time.Duration
}

// Pipeline drives the fallback extraction state machine:
// Idle -> Attempting(n) -> Success | Retrying(n+1) | DegradedFallback | Failed.
// Transient failures retry with exponential backoff, quota failures
// degrade immediately, terminal failures abort on the spot.
type Pipeline struct {
	client Client
	cfg    PipelineConfig

	// sleep is swappable so tests can observe backoff without waiting.
	sleep func(time.Duration)
}

func NewPipeline(client Client, cfg PipelineConfig) *Pipeline {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = 2 * time.Second
	}
	if cfg.AttemptTimeout == 0 {
		cfg.AttemptTimeout = 60 * time.Second
	}

	return &Pipeline{
		client: client,
		cfg:    cfg,
		sleep:  time.Sleep,
	}
}

// ExtractViaInference describes the file to the inference service and
// returns its structured extraction. A degraded (local, best-effort)
// extraction is a soft success, never an error; the caller checks the
// Degraded flag. An error return means the extraction failed for good.
func (p *Pipeline) ExtractViaInference(ctx context.Context, desc FileDescription) (*domain.StructuredExtraction, error) {
	prompt := buildPrompt(desc)

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			// base * 2^(attempt-2): 2s before the 2nd try, 4s before the 3rd.
			p.sleep(p.cfg.BackoffBase << (attempt - 2))
		}
		if err := ctx.Err(); err != nil {
			return nil, &domain.InferenceError{Kind: domain.InferenceTerminal, Err: err}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
		response, err := p.client.Generate(attemptCtx, prompt)
		cancel()

		if err != nil {
			var infErr *domain.InferenceError
			if !errors.As(err, &infErr) {
				return nil, &domain.InferenceError{Kind: domain.InferenceTerminal, Err: err}
			}

			switch infErr.Kind {
			case domain.InferenceQuota:
				// Quota is not retried: resolve locally, flag degraded.
				slog.Warn("cuota de inferencia excedida, extracción degradada", "file", desc.Filename)
				return DegradedExtract(desc), nil
			case domain.InferenceTransient:
				slog.Warn("fallo transitorio de inferencia", "file", desc.Filename, "attempt", attempt, "error", err)
				lastErr = err
				continue
			default:
				return nil, err
			}
		}

		ex, ok := parseResponse(response)
		if !ok {
			// An unrepairable response is treated like quota: degrade,
			// do not propagate a parse failure.
			slog.Warn("respuesta de inferencia irreparable, extracción degradada", "file", desc.Filename)
			return DegradedExtract(desc), nil
		}
		return EnsureShape(ex), nil
	}

	return nil, lastErr
}

// parseResponse extracts the fenced JSON block and parses it, running
// the recovery rules once if the first parse fails.
func parseResponse(response string) (*domain.StructuredExtraction, bool) {
	block, ok := ExtractFencedJSON(response)
	if !ok {
		return nil, false
	}

	var ex domain.StructuredExtraction
	if err := json.Unmarshal([]byte(block), &ex); err == nil {
		return &ex, true
	}

	if err := json.Unmarshal([]byte(Repair(block)), &ex); err == nil {
		return &ex, true
	}
	return nil, false
}

func buildPrompt(desc FileDescription) string {
	summary, _ := json.MarshalIndent(desc, "", "  ")
	return fmt.Sprintf(`Sos un asistente que extrae turnos de archivos de dimensionamiento de un call center.

Descripción del archivo:
%s

Devolvé un único bloque JSON cercado (`+"```json"+`) con esta forma exacta:
{
  "periods": [{"year": 2025, "month": 5}],
  "shifts": [{"agentName": "...", "date": "YYYY-MM-DD", "startTime": "HH:MM", "endTime": "HH:MM", "motive": "..."}],
  "coveredDates": ["YYYY-MM-DD"],
  "statistics": {"totalRows": 0, "parsedShifts": 0, "distinctAgents": 0}
}

No agregues texto fuera del bloque JSON.`, summary)
}
