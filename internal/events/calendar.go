// internal/events/calendar.go
package events

import (
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeshai/marcom-backend/internal/model"
)

// DefaultHorizonDays bounds how far ahead the pipeline looks for events.
const DefaultHorizonDays = 45

// Calendar holds the static festival/national-day/exam-season entries used to
// contextualize generated campaigns.
type Calendar struct {
	entries []model.Event
}

// Default returns the built-in Indian marketing calendar.
func Default() *Calendar {
	return &Calendar{entries: defaultEntries}
}

// Load reads a calendar from a YAML file of {name, date, tags} entries.
func Load(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []model.Event
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Calendar{entries: entries}, nil
}

// Upcoming returns events falling within horizonDays of today, soonest first,
// with DaysUntil and Urgency filled in. Past events and events beyond the
// horizon are excluded. horizonDays <= 0 uses the default horizon.
func (c *Calendar) Upcoming(today time.Time, horizonDays int) []model.Event {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	day := today.Truncate(24 * time.Hour)

	var upcoming []model.Event
	for _, e := range c.entries {
		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		days := int(date.Sub(day).Hours() / 24)
		if days < 0 || days > horizonDays {
			continue
		}
		e.DaysUntil = days
		e.Urgency = urgency(days)
		upcoming = append(upcoming, e)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	return upcoming
}

func urgency(daysUntil int) string {
	switch {
	case daysUntil <= 7:
		return model.UrgencyHigh
	case daysUntil <= 21:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

var defaultEntries = []model.Event{
	{Name: "Children's Day", Date: "2025-11-14", Tags: []string{"festive", "student"}},
	{Name: "Jharkhand Foundation Day", Date: "2025-11-15", Tags: []string{"state", "regional"}},
	{Name: "World AIDS Day", Date: "2025-12-01", Tags: []string{"awareness"}},
	{Name: "Christmas", Date: "2025-12-25", Tags: []string{"festive", "holiday"}},
	{Name: "New Year Eve", Date: "2025-12-31", Tags: []string{"festive", "sale"}},
	{Name: "New Year", Date: "2026-01-01", Tags: []string{"festive", "new_start"}},
	{Name: "Makar Sankranti", Date: "2026-01-15", Tags: []string{"festive"}},
	{Name: "Republic Day", Date: "2026-01-26", Tags: []string{"national", "patriotic"}},
	{Name: "Valentine's Day", Date: "2026-02-14", Tags: []string{"festive"}},
	{Name: "International Women's Day", Date: "2026-03-08", Tags: []string{"special", "women"}},
	{Name: "Holi", Date: "2026-03-14", Tags: []string{"festive", "colorful"}},
	{Name: "Ambedkar Jayanti", Date: "2026-04-14", Tags: []string{"national"}},
	{Name: "Labour Day", Date: "2026-05-01", Tags: []string{"national"}},
	{Name: "Independence Day", Date: "2026-08-15", Tags: []string{"national", "patriotic"}},
	{Name: "Janmashtami", Date: "2026-08-26", Tags: []string{"festive"}},
	{Name: "Teachers' Day", Date: "2026-09-05", Tags: []string{"education", "teachers"}},
	{Name: "Gandhi Jayanti", Date: "2026-10-02", Tags: []string{"national"}},
	{Name: "Dussehra", Date: "2026-10-24", Tags: []string{"festive"}},
	{Name: "Diwali", Date: "2026-11-13", Tags: []string{"festive", "sale", "biggest"}},

	{Name: "SSC CGL Exam Season", Date: "2025-12-01", Tags: []string{"exam", "ssc"}},
	{Name: "Banking Exam Season", Date: "2026-01-01", Tags: []string{"exam", "banking"}},
	{Name: "CTET Exam Season", Date: "2026-02-01", Tags: []string{"exam", "teaching"}},
	{Name: "Railway Exam Season", Date: "2026-03-01", Tags: []string{"exam", "railway"}},
	{Name: "State PSC Season", Date: "2026-04-01", Tags: []string{"exam", "state"}},
}
