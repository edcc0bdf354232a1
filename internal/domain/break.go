package domain

type BreakKind string

const (
	BreakFirst  BreakKind = "first"
	BreakSecond BreakKind = "second"
)

// BreakAssignment belongs to exactly one ShiftRecord. Start may fall
// past midnight relative to the shift's date when the shift crosses the
// day boundary. Overridden marks a manual edit from the dashboard; the
// override supersedes the computed time but not the computation rule.
type BreakAssignment struct {
	ID              int64     `json:"id"`
	ShiftRecordID   int64     `json:"shiftRecordID"`
	AgentName       string    `json:"agentName"`
	Date            string    `json:"date"`
	Kind            BreakKind `json:"kind"`
	Start           string    `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
	Overridden      bool      `json:"overridden"`
}
