// internal/export/export_test.go
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeshai/marcom-backend/internal/model"
)

func TestWriteProfilesCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir)

	profiles := map[string]*model.SegmentProfile{
		"Banking": {Vertical: "Banking", TotalCampaigns: 3},
	}
	require.NoError(t, w.WriteProfiles(profiles))

	data, err := os.ReadFile(filepath.Join(dir, ProfilesFile))
	require.NoError(t, err)

	var got map[string]*model.SegmentProfile
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got["Banking"].TotalCampaigns)
}

func TestWriteProfilesDoesNotEscapeHTML(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	profiles := map[string]*model.SegmentProfile{
		"SSC": {Vertical: "SSC", CommonHooks: []string{"Score 40+ & crack it <today>"}},
	}
	require.NoError(t, w.WriteProfiles(profiles))

	data, err := os.ReadFile(filepath.Join(dir, ProfilesFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "& crack it <today>")
	assert.NotContains(t, string(data), "\\u0026")
}

func TestWriteCalendarSortsByDateAndSkipsDateless(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	campaigns := []*model.GeneratedCampaign{
		{Vertical: "Banking", Hook: "B", EventName: "Diwali", EventDate: "2025-10-20", DaysUntilEvent: 30},
		{Vertical: "SSC", Hook: "A", EventName: "Dussehra", EventDate: "2025-10-02", DaysUntilEvent: 12},
		{Vertical: "Defence", Hook: "No event"},
	}
	urgency := map[string]string{"Diwali": model.UrgencyLow, "Dussehra": model.UrgencyMedium}

	require.NoError(t, w.WriteCalendar(campaigns, urgency))

	data, err := os.ReadFile(filepath.Join(dir, CalendarFile))
	require.NoError(t, err)

	var entries []CalendarEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Dussehra", entries[0].Event)
	assert.Equal(t, "Diwali", entries[1].Event)
	assert.Equal(t, model.UrgencyMedium, entries[0].Urgency)
}

func TestWriteCampaignsPrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteCampaigns([]*model.GeneratedCampaign{
		{Vertical: "Banking", Hook: "Year-End Rush"},
	}))

	data, err := os.ReadFile(filepath.Join(dir, CampaignsFile))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  "), "expected indented output")
}
