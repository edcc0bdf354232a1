package domain

import "time"

type DayKind string

const (
	// Working-day rows are categorized as "feriado" on purpose: the
	// dimensioning files we receive use the column that way and every
	// downstream report depends on it. Do not "fix" this mapping.
	DayKindHoliday  DayKind = "feriado"
	DayKindSaturday DayKind = "sabado"
	DayKindSunday   DayKind = "domingo"
	DayKindRegular  DayKind = "habil"
)

// Motive values are normalized by the extractor; only normal shifts
// receive break assignments.
const MotiveNormalShift = "jornada normal"

// ShiftRecord is one agent's working interval for one calendar date.
// Date is canonical YYYY-MM-DD, StartTime/EndTime canonical HH:MM.
// A record with an empty StartTime or EndTime was retained for
// reporting but is not eligible for break scheduling.
type ShiftRecord struct {
	ID         int64     `json:"id"`
	AgentName  string    `json:"agentName"`
	Supervisor string    `json:"supervisor"`
	Skill      string    `json:"skill"`
	Date       string    `json:"date"`
	DayKind    DayKind   `json:"dayKind"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Motive     string    `json:"motive"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

// Schedulable reports whether the record may receive break assignments.
func (r *ShiftRecord) Schedulable() bool {
	return r.StartTime != "" && r.EndTime != "" && r.Motive == MotiveNormalShift
}

// WorkforceSnapshot is the unit of validation: every record and break
// assignment for one calendar date. A re-ingestion of the same date
// replaces the snapshot wholesale, it never patches one.
type WorkforceSnapshot struct {
	Date          string            `json:"date"`
	Records       []ShiftRecord     `json:"records"`
	Breaks        []BreakAssignment `json:"breaks"`
	WorkforceSize int               `json:"workforceSize"`
	Degraded      bool              `json:"degraded"`
}
