package inference

import "github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"

// EnsureShape guarantees the required top-level fields of an
// extraction exist with safe defaults, so downstream consumers never
// observe a missing field regardless of what the service returned.
func EnsureShape(ex *domain.StructuredExtraction) *domain.StructuredExtraction {
	if ex == nil {
		ex = &domain.StructuredExtraction{}
	}
	if ex.Periods == nil {
		ex.Periods = []domain.Period{}
	}
	if ex.Shifts == nil {
		ex.Shifts = []domain.ExtractedShift{}
	}
	if ex.CoveredDates == nil {
		ex.CoveredDates = []string{}
	}
	if ex.Statistics.ParsedShifts == 0 {
		ex.Statistics.ParsedShifts = len(ex.Shifts)
	}
	if ex.Statistics.DistinctAgents == 0 {
		agents := make(map[string]bool)
		for _, s := range ex.Shifts {
			if s.AgentName != "" {
				agents[s.AgentName] = true
			}
		}
		ex.Statistics.DistinctAgents = len(agents)
	}
	return ex
}
