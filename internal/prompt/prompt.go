// internal/prompt/prompt.go
package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sandeshai/marcom-backend/internal/model"
)

const (
	// FallbackContactNumber is used when no contact number was ever observed
	// for a vertical.
	FallbackContactNumber = "9667589247"

	maxPromptHooks  = 5
	maxPromptTokens = 10
)

// SystemMessage is the fixed system role content sent with every generation
// request.
const SystemMessage = "You are an expert marketing copywriter for Indian exam preparation platforms. Always return valid JSON."

// Build renders the deterministic instruction document for one segment
// profile, optionally tied to an upcoming event and extra free-form context.
// The same inputs always produce the same text.
func Build(profile *model.SegmentProfile, event *model.Event, context map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are creating a push notification campaign for the %s vertical at Adda247 (Indian exam prep platform).\n\n", profile.Vertical)

	fmt.Fprintf(&b, "HISTORICAL DATA FOR %s:\n", profile.Vertical)
	fmt.Fprintf(&b, "- Total past campaigns: %d\n", profile.TotalCampaigns)
	if len(profile.BestTime) > 0 {
		times := make([]string, 0, len(profile.BestTime))
		for _, t := range profile.BestTime {
			times = append(times, t.Name)
		}
		fmt.Fprintf(&b, "- Best send times: %s\n", strings.Join(times, ", "))
	}
	fmt.Fprintf(&b, "- Contact: %s\n", contactNumber(profile))

	if len(profile.CommonHooks) > 0 {
		b.WriteString("\nHISTORICAL HIGH-PERFORMING HOOKS:\n")
		hooks := profile.CommonHooks
		if len(hooks) > maxPromptHooks {
			hooks = hooks[:maxPromptHooks]
		}
		for i, hook := range hooks {
			fmt.Fprintf(&b, "%d. %q\n", i+1, hook)
		}
	}

	if len(profile.CommonTokens) > 0 {
		b.WriteString("\nCOMMON PERSONALIZATION TOKENS (use these in your copy):\n")
		tokens := profile.CommonTokens
		if len(tokens) > maxPromptTokens {
			tokens = tokens[:maxPromptTokens]
		}
		for _, t := range tokens {
			fmt.Fprintf(&b, "- {{%s}} (used %d times)\n", t.Name, t.Count)
		}
	}

	// Empty blocks are omitted entirely, never rendered as a bare header.
	if len(profile.TypicalDiscounts) > 0 {
		labels := make([]string, 0, len(profile.TypicalDiscounts))
		for _, d := range profile.TypicalDiscounts {
			labels = append(labels, d.Name)
		}
		fmt.Fprintf(&b, "\nTYPICAL DISCOUNT PATTERNS:\n%s\n", strings.Join(labels, ", "))
	}
	if len(profile.PromoCodes) > 0 {
		fmt.Fprintf(&b, "\nPROMO CODE EXAMPLES:\n%s\n", strings.Join(profile.PromoCodes, ", "))
	}

	if event != nil {
		b.WriteString("\nUPCOMING EVENT:\n")
		fmt.Fprintf(&b, "- Event: %s\n", event.Name)
		fmt.Fprintf(&b, "- Days until event: %d\n", event.DaysUntil)
		fmt.Fprintf(&b, "- Urgency: %s\n", event.Urgency)
		if len(event.Tags) > 0 {
			fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(event.Tags, ", "))
		}
		b.WriteString("\nMAKE THE CAMPAIGN RELEVANT TO THIS EVENT!\n")
	}

	if len(context) > 0 {
		b.WriteString("\nADDITIONAL CONTEXT:\n")
		keys := make([]string, 0, len(context))
		for k := range context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, context[k])
		}
	}

	fmt.Fprintf(&b, `
GENERATE A CAMPAIGN WITH:
1. Hook (engaging, max 80 chars)
2. Push Copy (compelling, 100-150 words, include personalization tokens)
3. CTA (action-oriented, max 20 chars)
4. Promo Code (catchy, 4-8 chars)
5. Discount (attractive percentage)
6. User Segment (target audience description)
7. Scheduled Time (best time based on historical data)
8. Product IDs (3-5 relevant IDs from historical data)

REQUIREMENTS:
- Use the personalization tokens listed above
- Include contact number if relevant: %s
- Make it urgent but not spammy
- Use emoji strategically (2-4 emojis max)

Return ONLY valid JSON:
{
  "hook": "...",
  "push_copy": "...",
  "cta": "...",
  "promo_code": "...",
  "discount": "...",
  "user_segment": "...",
  "scheduled_time": "...",
  "product_ids": ["...", "..."],
  "personalization_tokens": ["...", "..."],
  "contact_number": "%s",
  "event_context": "..."
}
`, contactNumber(profile), contactNumber(profile))

	return b.String()
}

func contactNumber(profile *model.SegmentProfile) string {
	if len(profile.ContactNumbers) > 0 {
		return profile.ContactNumbers[0]
	}
	return FallbackContactNumber
}

// ParseReply extracts the campaign JSON from a provider reply, tolerating
// fenced code blocks and surrounding prose. When no JSON object can be
// parsed the whole reply is kept as opaque push copy; the raw text is never
// discarded. The bool reports whether structured parsing succeeded.
func ParseReply(raw string) (*model.GeneratedCampaign, bool) {
	candidate := stripFences(raw)

	if start := strings.Index(candidate, "{"); start >= 0 {
		if end := strings.LastIndex(candidate, "}"); end > start {
			var gc model.GeneratedCampaign
			if err := json.Unmarshal([]byte(candidate[start:end+1]), &gc); err == nil {
				gc.RawReply = raw
				return &gc, true
			}
		}
	}

	return &model.GeneratedCampaign{
		PushCopy: model.PushBody(raw),
		RawReply: raw,
	}, false
}

// stripFences removes markdown code-block markers around a JSON payload.
func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
