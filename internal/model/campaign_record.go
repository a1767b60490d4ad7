// internal/model/campaign_record.go
package model

// CampaignRecord is one historical campaign row normalized from a source sheet.
// All fields except Source and RowIndex are optional; absent values stay zero.
type CampaignRecord struct {
	Source   string `db:"source" json:"source"`
	RowIndex int    `db:"row_index" json:"row_index"`

	CampaignType   string `db:"campaign_type" json:"campaign_type,omitempty"`
	Date           string `db:"date" json:"date,omitempty"`
	Vertical       string `db:"vertical" json:"vertical,omitempty"`
	Language       string `db:"language" json:"language,omitempty"`
	AlignedBy      string `db:"aligned_by" json:"aligned_by,omitempty"`
	LandingPagePID string `db:"landing_page_pid" json:"landing_page_pid,omitempty"`
	SentNo         string `db:"sent_no" json:"sent_no,omitempty"`
	CampaignName   string `db:"campaign_name" json:"campaign_name,omitempty"`
	TemplateID     string `db:"template_id" json:"template_id,omitempty"`
	UserSegment    string `db:"user_segment" json:"user_segment,omitempty"`
	ScheduledTime  string `db:"scheduled_time" json:"scheduled_time,omitempty"`

	Hook     string `db:"hook" json:"hook,omitempty"`
	PushCopy string `db:"push_copy" json:"push_copy,omitempty"`
	CTA      string `db:"cta" json:"cta,omitempty"`

	PromoCode       string `db:"promo_code" json:"promo_code,omitempty"`
	DiscountPercent string `db:"discount_percent" json:"discount_percent,omitempty"`
	ContactNumber   string `db:"contact_number" json:"contact_number,omitempty"`

	TrackierLink   string `db:"trackier_link" json:"trackier_link,omitempty"`
	LandingPageURL string `db:"landing_page_url" json:"landing_page_url,omitempty"`
	CreativeLink   string `db:"creative_link" json:"creative_link,omitempty"`
	MoEngageLink   string `db:"moengage_link" json:"moengage_link,omitempty"`
	AppLink        string `db:"app_link" json:"app_link,omitempty"`
	WebLink        string `db:"web_link" json:"web_link,omitempty"`
	ImageLink      string `db:"image_link" json:"image_link,omitempty"`
	GenericLink    string `db:"generic_link" json:"generic_link,omitempty"`

	Platform  string `db:"platform" json:"platform,omitempty"`
	UserCount int    `db:"user_count" json:"user_count,omitempty"`

	ProductIDs            []string `db:"product_ids" json:"product_ids,omitempty"`
	PersonalizationTokens []string `db:"personalization_tokens" json:"personalization_tokens,omitempty"`
	TrackingLinks         []string `db:"tracking_links" json:"tracking_links,omitempty"`
}

// HasContent reports whether the record satisfies the retention rule:
// at least one of hook, push copy, or campaign name must be present.
func (r *CampaignRecord) HasContent() bool {
	return r.Hook != "" || r.PushCopy != "" || r.CampaignName != ""
}
