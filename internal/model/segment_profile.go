// internal/model/segment_profile.go
package model

// RankedCount is one entry of a frequency-ranked summary. Profiles keep these
// as ordered slices rather than maps so rank order survives JSON round-trips.
type RankedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SegmentProfile is the aggregated summary of all historical records for one
// vertical. It is rebuilt from scratch on every aggregation run and never
// mutated afterwards.
type SegmentProfile struct {
	Vertical       string `json:"vertical"`
	TotalCampaigns int    `json:"total_campaigns"`

	// CommonHooks keeps original record order, untruncated. Consumers cap it
	// when rendering (the prompt synthesizer uses the first 5).
	CommonHooks []string `json:"common_hooks"`

	CommonTokens     []RankedCount `json:"common_tokens"`
	TypicalDiscounts []RankedCount `json:"typical_discounts"`
	BestTime         []RankedCount `json:"best_time"`

	// Set-valued fields: deduplicated, serialization order not guaranteed.
	PromoCodes     []string `json:"promo_codes"`
	ContactNumbers []string `json:"contact_numbers"`
	Platforms      []string `json:"platforms"`
	UserSegments   []string `json:"user_segments"`
	ProductIDs     []string `json:"product_ids"`
}
