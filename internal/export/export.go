// internal/export/export.go
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/sandeshai/marcom-backend/internal/model"
)

const (
	ProfilesFile   = "patterns_by_vertical.json"
	EventsFile     = "upcoming_events.json"
	CampaignsFile  = "ai_generated_campaigns.json"
	CalendarFile   = "campaign_calendar.json"
	TonalitiesFile = "sample_pushes_training.json"
)

// Writer persists run artifacts as pretty-printed JSON under a single
// output directory.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// CalendarEntry is one row of the flat campaign calendar artifact: a
// generated campaign keyed by the event date it should ship on.
type CalendarEntry struct {
	Date      string `json:"date"`
	Event     string `json:"event"`
	Vertical  string `json:"vertical"`
	Hook      string `json:"hook"`
	CTA       string `json:"cta"`
	DaysUntil int    `json:"days_until"`
	Urgency   string `json:"urgency,omitempty"`
}

func (w *Writer) WriteProfiles(profiles map[string]*model.SegmentProfile) error {
	return w.writeJSON(ProfilesFile, profiles)
}

func (w *Writer) WriteEvents(events []model.Event) error {
	return w.writeJSON(EventsFile, events)
}

func (w *Writer) WriteCampaigns(campaigns []*model.GeneratedCampaign) error {
	return w.writeJSON(CampaignsFile, campaigns)
}

func (w *Writer) WriteTonalities(profiles map[string]*model.TonalityProfile) error {
	return w.writeJSON(TonalitiesFile, profiles)
}

// WriteCalendar flattens generated campaigns into a date-sorted shipping
// calendar. Campaigns without an event date are skipped.
func (w *Writer) WriteCalendar(campaigns []*model.GeneratedCampaign, urgencyByEvent map[string]string) error {
	entries := []CalendarEntry{}
	for _, gc := range campaigns {
		if gc.EventDate == "" {
			continue
		}
		entries = append(entries, CalendarEntry{
			Date:      gc.EventDate,
			Event:     gc.EventName,
			Vertical:  gc.Vertical,
			Hook:      gc.Hook,
			CTA:       gc.CTA,
			DaysUntil: gc.DaysUntilEvent,
			Urgency:   urgencyByEvent[gc.EventName],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return w.writeJSON(CalendarFile, entries)
}

func (w *Writer) writeJSON(name string, v any) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(w.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	// Hooks and links carry &, < and > freely.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	log.WithField("file", path).Info("wrote artifact")
	return nil
}
