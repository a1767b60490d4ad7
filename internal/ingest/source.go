// internal/ingest/source.go
package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sandeshai/marcom-backend/internal/model"
	"github.com/sandeshai/marcom-backend/internal/pattern"
)

// SourceStat summarizes what happened to one configured source file.
type SourceStat struct {
	Source   string `json:"source"`
	Rows     int    `json:"rows"`
	Retained int    `json:"retained"`
	Skipped  bool   `json:"skipped,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// LoadSources reads every configured CSV export, normalizes campaign rows,
// and returns the retained records. A missing or unreadable file is reported
// in its stat and skipped; the remaining sources are still processed.
func LoadSources(paths []string, opts pattern.Options) ([]model.CampaignRecord, []SourceStat) {
	var records []model.CampaignRecord
	stats := make([]SourceStat, 0, len(paths))

	for _, path := range paths {
		name := filepath.Base(path)
		stat := SourceStat{Source: name}

		f, err := os.Open(path)
		if err != nil {
			logrus.WithFields(logrus.Fields{"source": path, "error": err}).Warn("skipping historical source")
			stat.Skipped = true
			stat.Reason = err.Error()
			stats = append(stats, stat)
			continue
		}

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		rows, err := r.ReadAll()
		f.Close()
		if err != nil {
			logrus.WithFields(logrus.Fields{"source": path, "error": err}).Warn("unreadable historical source")
			stat.Skipped = true
			stat.Reason = err.Error()
			stats = append(stats, stat)
			continue
		}
		if len(rows) < 2 {
			stat.Skipped = true
			stat.Reason = "no data rows"
			stats = append(stats, stat)
			continue
		}

		headers := rows[0]
		if !isCampaignSheet(headers) {
			logrus.WithField("source", name).Info("not a campaign sheet, skipping")
			stat.Skipped = true
			stat.Reason = "not a campaign sheet"
			stats = append(stats, stat)
			continue
		}

		for i, cells := range rows[1:] {
			stat.Rows++
			if rec := NormalizeRow(name, i, headers, cells, opts); rec != nil {
				records = append(records, *rec)
				stat.Retained++
			}
		}

		logrus.WithFields(logrus.Fields{
			"source":   name,
			"rows":     stat.Rows,
			"retained": stat.Retained,
		}).Info("loaded historical source")
		stats = append(stats, stat)
	}

	return records, stats
}

// isCampaignSheet decides whether a header row belongs to a campaign sheet as
// opposed to a revenue export sharing the same workbook.
func isCampaignSheet(headers []string) bool {
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, kw := range []string{"hook", "push", "cta", "whatsapp", "message"} {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
