// internal/model/sample_push.go
package model

// SamplePush is one free-text push from the sample sheet, already mapped to
// its tonality bucket.
type SamplePush struct {
	Tonality string `json:"tonality"`
	Hook     string `json:"hook"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
}

// PushExample is one training example inside a tonality profile.
type PushExample struct {
	Hook        string `json:"hook"`
	Body        string `json:"body"`
	CTA         string `json:"cta"`
	FullMessage string `json:"full_message"`
}

// StructureStats describe the shape of the pushes in one tonality bucket.
// Shares are fractions of examples, 0 to 1.
type StructureStats struct {
	AvgHookLength float64 `json:"avg_hook_length"`
	AvgBodyLength float64 `json:"avg_body_length"`
	UsesEmojis    float64 `json:"uses_emojis"`
	UsesBullets   float64 `json:"uses_bullets"`
}

// TonalityProfile is the aggregated training data for one tonality: capped
// example and hook/CTA lists plus structure statistics. Count is the bucket
// size before any capping.
type TonalityProfile struct {
	Tonality    string         `json:"tonality"`
	Count       int            `json:"count"`
	Examples    []PushExample  `json:"examples"`
	CommonHooks []string       `json:"common_hooks"`
	CommonCTAs  []string       `json:"common_ctas"`
	Structure   StructureStats `json:"structure_patterns"`
}
