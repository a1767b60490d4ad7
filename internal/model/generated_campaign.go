// internal/model/generated_campaign.go
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// PushBody tolerates both forms the provider is known to return for push_copy:
// a single string, or an array of short lines. Arrays are joined with newlines.
type PushBody string

func (b *PushBody) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = PushBody(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*b = PushBody(strings.Join(lines, "\n"))
	return nil
}

// GeneratedCampaign is one AI-generated campaign, parsed from the provider
// reply and annotated with the vertical/event it was generated for.
type GeneratedCampaign struct {
	ID    int    `db:"id" json:"id,omitempty"`
	RunID string `db:"run_id" json:"run_id,omitempty"`

	Vertical string `db:"vertical" json:"vertical"`

	Hook                  string   `db:"hook" json:"hook"`
	PushCopy              PushBody `db:"push_copy" json:"push_copy"`
	CTA                   string   `db:"cta" json:"cta"`
	PromoCode             string   `db:"promo_code" json:"promo_code,omitempty"`
	Discount              string   `db:"discount" json:"discount,omitempty"`
	UserSegment           string   `db:"user_segment" json:"user_segment,omitempty"`
	ScheduledTime         string   `db:"scheduled_time" json:"scheduled_time,omitempty"`
	ContactNumber         string   `db:"contact_number" json:"contact_number,omitempty"`
	ProductIDs            []string `db:"product_ids" json:"product_ids,omitempty"`
	PersonalizationTokens []string `db:"personalization_tokens" json:"personalization_tokens,omitempty"`
	EventContext          string   `db:"event_context" json:"event_context,omitempty"`

	EventName      string `db:"event_name" json:"event_name,omitempty"`
	EventDate      string `db:"event_date" json:"event_date,omitempty"`
	DaysUntilEvent int    `db:"days_until_event" json:"days_until_event,omitempty"`

	// RawReply keeps the unmodified provider output. When the reply could not
	// be parsed as JSON the whole text lands in PushCopy and RawReply both.
	RawReply string `db:"raw_reply" json:"raw_reply,omitempty"`

	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`
}
