// internal/ingest/samples.go
package ingest

import (
	"encoding/csv"
	"os"
	"regexp"
	"strings"

	"github.com/sandeshai/marcom-backend/internal/model"
)

var spaceRunRe = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace runs (sample cells carry embedded newlines)
// and trims the result.
func cleanText(v string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(v, " "))
}

// tonalityFor maps a free-text category label from the sample sheet onto one
// of the fixed tonality buckets. Unlabeled rows land in General.
func tonalityFor(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	switch {
	case c == "":
		return "General"
	case strings.Contains(c, "fomo") || strings.Contains(c, "urgency"):
		return "fomo"
	case strings.Contains(c, "breaking") || strings.Contains(c, "announcement"):
		return "serious"
	case strings.Contains(c, "multiple") || strings.Contains(c, "value"):
		return "celebratory"
	case strings.Contains(c, "curiosity") || strings.Contains(c, "psychological"):
		return "friendly"
	case strings.Contains(c, "simple") || strings.Contains(c, "product"):
		return "serious"
	case strings.Contains(c, "feel good"):
		return "motivational"
	case strings.Contains(c, "regional") || strings.Contains(c, "fest"):
		return "celebratory"
	default:
		return "friendly"
	}
}

// sampleColumns locates the category/title/description/CTA columns in the
// sample-pushes header row. The category column is often the unnamed first
// column of the export.
func sampleColumns(headers []string) (category, title, desc, cta int) {
	category, title, desc, cta = -1, -1, -1, -1
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "category") || lower == "" || strings.Contains(lower, "unnamed"):
			if category == -1 {
				category = i
			}
		case strings.Contains(lower, "title"):
			title = i
		case strings.Contains(lower, "desc"):
			desc = i
		case strings.Contains(lower, "cta"):
			cta = i
		}
	}
	return
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// LoadSamplePushes reads the free-text sample-pushes sheet and returns one
// SamplePush per usable row. Rows with neither a title nor a description are
// skipped silently.
func LoadSamplePushes(path string) ([]model.SamplePush, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	catIdx, titleIdx, descIdx, ctaIdx := sampleColumns(rows[0])

	var pushes []model.SamplePush
	for _, cells := range rows[1:] {
		hook := cleanText(cell(cells, titleIdx))
		body := cleanText(cell(cells, descIdx))
		if hook == "" && body == "" {
			continue
		}
		pushes = append(pushes, model.SamplePush{
			Tonality: tonalityFor(cell(cells, catIdx)),
			Hook:     hook,
			Body:     body,
			CTA:      cleanText(cell(cells, ctaIdx)),
		})
	}
	return pushes, nil
}
