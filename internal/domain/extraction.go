package domain

import "fmt"

// Period is the month a dimensioning file covers, inferred from its
// filename or defaulted to the current date.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ExtractionReport counts what happened to every row of an ingestion
// run. Per-row skips are normal filtering outcomes, not errors.
type ExtractionReport struct {
	RowsSeen             int      `json:"rowsSeen"`
	SkippedMissingColumn int      `json:"skippedMissingColumn"`
	SkippedMissingTime   int      `json:"skippedMissingTime"`
	SkippedBeforeCutoff  int      `json:"skippedBeforeCutoff"`
	Retained             int      `json:"retained"`
	SkippedSheets        []string `json:"skippedSheets"`
}

// StructuredExtraction is the JSON contract exchanged with the
// inference service, also produced by the degraded local extractor.
// The shape validator guarantees every field is non-nil downstream.
type StructuredExtraction struct {
	Periods      []Period             `json:"periods"`
	Shifts       []ExtractedShift     `json:"shifts"`
	CoveredDates []string             `json:"coveredDates"`
	Statistics   ExtractionStatistics `json:"statistics"`
	Degraded     bool                 `json:"degraded"`
}

type ExtractedShift struct {
	AgentName string `json:"agentName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Motive    string `json:"motive"`
}

type ExtractionStatistics struct {
	TotalRows      int `json:"totalRows"`
	ParsedShifts   int `json:"parsedShifts"`
	DistinctAgents int `json:"distinctAgents"`
}
