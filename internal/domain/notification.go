package domain

const (
	NotificationDegradedExtraction    = "degraded_extraction"
	NotificationDistributionViolation = "distribution_violation"
)

// NotificationMessage travels through the notification queue to the
// notifier worker, which emails supervisors.
type NotificationMessage struct {
	Type     string `json:"type"`
	Date     string `json:"date"`
	Filename string `json:"filename"`
	Detail   string `json:"detail"`
}
