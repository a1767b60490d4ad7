// internal/ingest/normalize.go
package ingest

import (
	"strconv"
	"strings"

	"github.com/sandeshai/marcom-backend/internal/model"
	"github.com/sandeshai/marcom-backend/internal/pattern"
)

// missing reports whether a cell value is a missing marker. Missing cells are
// treated as absent, never as empty string.
func missing(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "n/a", "na":
		return true
	}
	return false
}

// NormalizeRow builds one campaign record from a raw row. Columns are walked
// in sheet order; unclassified columns and missing cells are skipped without
// error. Returns nil when the row carries no hook, push copy, or campaign
// name (the retention rule).
func NormalizeRow(source string, rowIndex int, headers, cells []string, opts pattern.Options) *model.CampaignRecord {
	rec := &model.CampaignRecord{Source: source, RowIndex: rowIndex}

	var tokens []string

	for i, header := range headers {
		if i >= len(cells) || missing(cells[i]) {
			continue
		}
		v := strings.TrimSpace(cells[i])

		switch Classify(header) {
		case FieldCampaignType:
			rec.CampaignType = v
		case FieldDate:
			rec.Date = v
		case FieldVertical:
			rec.Vertical = v
		case FieldLanguage:
			rec.Language = v
		case FieldAlignedBy:
			rec.AlignedBy = v
		case FieldLandingPagePID:
			rec.LandingPagePID = v
		case FieldSentNo:
			rec.SentNo = v
		case FieldCampaignName:
			rec.CampaignName = v
			tokens = append(tokens, pattern.Tokens(v)...)
		case FieldTemplateID:
			rec.TemplateID = v
		case FieldUserSegment:
			rec.UserSegment = v
		case FieldProductIDs:
			rec.ProductIDs = pattern.ProductIDs(v)
		case FieldScheduledTime:
			rec.ScheduledTime = v
		case FieldHook:
			rec.Hook = v
			tokens = append(tokens, pattern.Tokens(v)...)
		case FieldPushCopy:
			// Last write wins when a sheet carries several copy columns;
			// production sheets have at most one per row.
			rec.PushCopy = v
			rec.PromoCode = pattern.PromoCode(v, opts)
			rec.DiscountPercent = pattern.Discount(v)
			rec.ContactNumber = pattern.ContactNumber(v)
			tokens = append(tokens, pattern.Tokens(v)...)
		case FieldCTA:
			rec.CTA = v
		case FieldTrackierLink:
			rec.TrackierLink = v
		case FieldTrackingLink:
			rec.TrackingLinks = append(rec.TrackingLinks, v)
		case FieldLandingPageURL:
			rec.LandingPageURL = v
		case FieldCreativeLink:
			rec.CreativeLink = v
		case FieldMoEngageLink:
			rec.MoEngageLink = v
			rec.Platform = "MoEngage"
		case FieldUserCount:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				rec.UserCount = int(n)
			}
		case FieldAppLink:
			rec.AppLink = v
		case FieldWebLink:
			rec.WebLink = v
		case FieldImageLink:
			rec.ImageLink = v
		case FieldGenericLink:
			if strings.Contains(strings.ToLower(v), "moengage") {
				rec.MoEngageLink = v
				rec.Platform = "MoEngage"
			} else {
				rec.GenericLink = v
			}
		}
	}

	rec.PersonalizationTokens = dedupe(tokens)

	if !rec.HasContent() {
		return nil
	}
	return rec
}

// dedupe removes duplicate tokens, keeping first-seen order. Case sensitive:
// {{Username}} and {{USERNAME}} are distinct tokens.
func dedupe(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
