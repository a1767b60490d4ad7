// internal/model/event.go
package model

// Urgency tiers for upcoming events.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Event is one calendar entry (festival, national day, exam season) used to
// contextualize generated campaigns. DaysUntil and Urgency are computed when
// the calendar is filtered against a reference date.
type Event struct {
	Name      string   `json:"name" yaml:"name"`
	Date      string   `json:"date" yaml:"date"` // ISO yyyy-mm-dd
	Tags      []string `json:"tags" yaml:"tags"`
	DaysUntil int      `json:"days_until" yaml:"-"`
	Urgency   string   `json:"urgency" yaml:"-"`
}
