package domain

// ValidationVerdict is produced fresh on every distribution check and
// only persisted as metadata attached to an ingestion result.
type ValidationVerdict struct {
	Valid           bool    `json:"valid"`
	ViolatingMinute *string `json:"violatingMinute"` // HH:MM, nil when valid
	Occupancy       int     `json:"occupancy"`
	Cap             int     `json:"cap"`
}
