package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]Field{
		"Campaign Type":     FieldCampaignType,
		"Date":              FieldDate,
		"Day":               FieldDate,
		"Vertical":          FieldVertical,
		"Product Category":  FieldVertical,
		"Language":          FieldLanguage,
		"Aligned By":        FieldAlignedBy,
		"Landing Page P_id": FieldLandingPagePID,
		"Sent No":           FieldSentNo,
		"Campaign Name":     FieldCampaignName,
		"Template ID":       FieldTemplateID,
		"User Segment":      FieldUserSegment,
		"Target Audience":   FieldUserSegment,
		"Product IDs":       FieldProductIDs,
		"Scheduled Time":    FieldScheduledTime,
		"Hook":              FieldHook,
		"Title":             FieldHook,
		"Push Copy":         FieldPushCopy,
		"Whatsapp Message":  FieldPushCopy,
		"Description":       FieldPushCopy,
		"CTA":               FieldCTA,
		"Trackier Link":     FieldTrackierLink,
		"Tracking URL 1":    FieldTrackingLink,
		"LP":                FieldLandingPageURL,
		"Creative Link":     FieldCreativeLink,
		"@":                 FieldMoEngageLink,
		"User Count":        FieldUserCount,
		"App Link":          FieldAppLink,
		"Deeplink URL":      FieldAppLink,
		"Web Link":          FieldWebLink,
		"Banner URL":        FieldImageLink,
		"Link":              FieldGenericLink,
		"Revenue":           FieldUnknown,
		"":                  FieldUnknown,
	}
	for label, want := range cases {
		assert.Equal(t, want, Classify(label), "label %q", label)
	}
}

func TestClassifyPriorityIsDeterministic(t *testing.T) {
	// "Date Category" carries both a date keyword and a vertical keyword.
	// The date rule sits earlier in the priority list, so it wins.
	assert.Equal(t, FieldDate, Classify("Date Category"))

	// "Campaign Type" also contains "campaign", but the campaign-type rule
	// outranks campaign-name.
	assert.Equal(t, FieldCampaignType, Classify("Campaign Type"))

	// Segment beats product even when both keywords appear.
	assert.Equal(t, FieldUserSegment, Classify("Product Segment Id"))
}

func TestClassifyPlaceholderTime(t *testing.T) {
	assert.Equal(t, FieldScheduledTime, Classify("Send Time"))
	assert.Equal(t, FieldUnknown, Classify("Unnamed: 7 time"))
}

func TestClassifyCaseAndWhitespace(t *testing.T) {
	assert.Equal(t, FieldVertical, Classify("  VERTICAL  "))
	assert.Equal(t, FieldPushCopy, Classify("PUSH COPY"))
	// The LP rule is label-exact and case matters for the raw form.
	assert.Equal(t, FieldLandingPageURL, Classify(" LP "))
}
