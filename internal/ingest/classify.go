// internal/ingest/classify.go
package ingest

import "strings"

// Field is the semantic meaning assigned to a raw column header.
type Field int

const (
	FieldUnknown Field = iota
	FieldCampaignType
	FieldDate
	FieldVertical
	FieldLanguage
	FieldAlignedBy
	FieldLandingPagePID
	FieldSentNo
	FieldCampaignName
	FieldTemplateID
	FieldUserSegment
	FieldProductIDs
	FieldScheduledTime
	FieldHook
	FieldPushCopy
	FieldCTA
	FieldTrackierLink
	FieldTrackingLink
	FieldLandingPageURL
	FieldCreativeLink
	FieldMoEngageLink
	FieldUserCount
	FieldAppLink
	FieldWebLink
	FieldImageLink
	FieldGenericLink
)

type rule struct {
	field Field
	match func(lower, raw string) bool
}

func contains(subs ...string) func(lower, raw string) bool {
	return func(lower, _ string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// Headers come from many spreadsheet authors and the same word can appear in
// several of them ("Category", "Product Category", "Date Category"). The rules
// are evaluated strictly top to bottom and the first match wins, so every
// label resolves to exactly one field no matter how many keywords it carries.
var classifyRules = []rule{
	{FieldCampaignType, contains("campaign type", "campaign_type")},
	{FieldDate, contains("date", "day")},
	{FieldVertical, contains("vertical", "category")},
	{FieldLanguage, contains("language", "lang")},
	{FieldAlignedBy, contains("aligned by", "aligned_by")},
	{FieldLandingPagePID, func(lower, _ string) bool {
		return strings.Contains(lower, "landing page") && strings.Contains(lower, "p_id")
	}},
	{FieldSentNo, contains("sent no", "sent_no")},
	{FieldCampaignName, contains("campaign_name", "campaign name")},
	{FieldTemplateID, func(lower, _ string) bool {
		return strings.Contains(lower, "template") && strings.Contains(lower, "id")
	}},
	{FieldUserSegment, contains("segment", "audience", "target")},
	{FieldProductIDs, func(lower, _ string) bool {
		return strings.Contains(lower, "product") && strings.Contains(lower, "id")
	}},
	{FieldScheduledTime, func(lower, _ string) bool {
		return strings.Contains(lower, "time") && !isPlaceholder(lower)
	}},
	{FieldHook, contains("hook", "title")},
	{FieldPushCopy, contains("push", "copy", "description", "whatsapp", "message")},
	{FieldCTA, contains("cta")},
	{FieldTrackierLink, contains("trackier")},
	{FieldTrackingLink, contains("tracking")},
	{FieldLandingPageURL, func(lower, raw string) bool {
		return raw == "LP" || (lower == "lp" && !isPlaceholder(lower))
	}},
	{FieldCreativeLink, func(lower, _ string) bool {
		return strings.Contains(lower, "creative") && strings.Contains(lower, "link")
	}},
	{FieldMoEngageLink, func(_, raw string) bool { return raw == "@" }},
	{FieldUserCount, contains("user count", "user_count")},
	{FieldAppLink, func(lower, _ string) bool {
		return isLink(lower) && (strings.Contains(lower, "app") || strings.Contains(lower, "deeplink"))
	}},
	{FieldWebLink, func(lower, _ string) bool {
		return isLink(lower) && strings.Contains(lower, "web")
	}},
	{FieldImageLink, func(lower, _ string) bool {
		return isLink(lower) && (strings.Contains(lower, "image") || strings.Contains(lower, "banner"))
	}},
	{FieldGenericLink, func(lower, _ string) bool { return isLink(lower) }},
}

func isLink(lower string) bool {
	return strings.Contains(lower, "link") || strings.Contains(lower, "url")
}

// isPlaceholder flags auto-generated headers for blank spreadsheet columns.
func isPlaceholder(lower string) bool {
	return lower == "" || strings.Contains(lower, "unnamed")
}

// Classify maps a raw column header to its semantic field. Unrecognized
// headers return FieldUnknown and the column is ignored.
func Classify(label string) Field {
	raw := strings.TrimSpace(label)
	lower := strings.ToLower(raw)
	for _, r := range classifyRules {
		if r.match(lower, raw) {
			return r.field
		}
	}
	return FieldUnknown
}
