// internal/aggregate/tonality.go
package aggregate

import (
	"strings"

	"github.com/sandeshai/marcom-backend/internal/model"
)

// Caps for the training artifact. Statistics are always computed over the
// whole bucket; only the rendered lists are capped.
const (
	maxTonalityExamples = 20
	maxTonalityHooks    = 10
	maxTonalityCTAs     = 10
)

// BuildTonalityProfiles groups sample pushes by tonality and computes the
// per-tonality training data: capped example lists and structure statistics.
// Like the vertical profiles, this is a full rebuild with no prior state.
func BuildTonalityProfiles(pushes []model.SamplePush) map[string]*model.TonalityProfile {
	buckets := make(map[string][]model.SamplePush)
	for _, p := range pushes {
		buckets[p.Tonality] = append(buckets[p.Tonality], p)
	}

	profiles := make(map[string]*model.TonalityProfile, len(buckets))
	for tonality, bucket := range buckets {
		profile := &model.TonalityProfile{
			Tonality: tonality,
			Count:    len(bucket),
		}

		var hookLen, bodyLen, emojis, bullets int
		for _, p := range bucket {
			full := strings.TrimSpace(p.Hook + "\n\n" + p.Body + "\n\n" + p.CTA)

			if len(profile.Examples) < maxTonalityExamples {
				profile.Examples = append(profile.Examples, model.PushExample{
					Hook:        p.Hook,
					Body:        p.Body,
					CTA:         p.CTA,
					FullMessage: full,
				})
			}
			if p.Hook != "" && len(profile.CommonHooks) < maxTonalityHooks {
				profile.CommonHooks = append(profile.CommonHooks, p.Hook)
			}
			if p.CTA != "" && len(profile.CommonCTAs) < maxTonalityCTAs {
				profile.CommonCTAs = append(profile.CommonCTAs, p.CTA)
			}

			hookLen += len(p.Hook)
			bodyLen += len(p.Body)
			if hasEmoji(full) {
				emojis++
			}
			if hasBullets(p.Body) {
				bullets++
			}
		}

		n := float64(len(bucket))
		profile.Structure = model.StructureStats{
			AvgHookLength: float64(hookLen) / n,
			AvgBodyLength: float64(bodyLen) / n,
			UsesEmojis:    float64(emojis) / n,
			UsesBullets:   float64(bullets) / n,
		}
		profiles[tonality] = profile
	}
	return profiles
}

func hasEmoji(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}

func hasBullets(body string) bool {
	return strings.Contains(body, "▶") || strings.Contains(body, "✔") || strings.Contains(body, "👉")
}
