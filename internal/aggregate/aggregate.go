// internal/aggregate/aggregate.go
package aggregate

import (
	"sort"

	"github.com/sandeshai/marcom-backend/internal/model"
)

// Options carry the truncation sizes for ranked profile fields. Zero values
// fall back to the single-pass analyzer sizes; the pipeline service passes
// TopTokens=15 to match its prompt template.
type Options struct {
	TopTokens     int
	TopDiscounts  int
	TopTimes      int
	TopProductIDs int
	TopPromoCodes int
}

func (o Options) withDefaults() Options {
	if o.TopTokens == 0 {
		o.TopTokens = 20
	}
	if o.TopDiscounts == 0 {
		o.TopDiscounts = 5
	}
	if o.TopTimes == 0 {
		o.TopTimes = 3
	}
	if o.TopProductIDs == 0 {
		o.TopProductIDs = 20
	}
	if o.TopPromoCodes == 0 {
		o.TopPromoCodes = 10
	}
	return o
}

// counter counts occurrences while remembering first-seen order so rank ties
// break deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns entries sorted by count descending, ties broken by
// first-seen order, truncated to topN.
func (c *counter) ranked(topN int) []model.RankedCount {
	out := make([]model.RankedCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, model.RankedCount{Name: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// set is a deduplicating collection with deterministic insertion order.
type set struct {
	seen  map[string]bool
	items []string
}

func newSet() *set {
	return &set{seen: make(map[string]bool)}
}

func (s *set) add(item string) {
	if item == "" || s.seen[item] {
		return
	}
	s.seen[item] = true
	s.items = append(s.items, item)
}

func (s *set) list(cap int) []string {
	if cap > 0 && len(s.items) > cap {
		return s.items[:cap]
	}
	return s.items
}

// BuildProfiles groups records by vertical and computes one profile per
// group. A full rebuild every time: no prior state is read and the returned
// profiles are never mutated afterwards.
func BuildProfiles(records []model.CampaignRecord, opts Options) map[string]*model.SegmentProfile {
	opts = opts.withDefaults()

	type group struct {
		hooks      []string
		tokens     *counter
		discounts  *counter
		times      *counter
		promoCodes *set
		contacts   *set
		platforms  *set
		segments   *set
		productIDs *set
		total      int
	}

	groups := make(map[string]*group)
	order := []string{}

	for i := range records {
		rec := &records[i]
		vertical := rec.Vertical
		if vertical == "" {
			vertical = "Unknown"
		}

		g, ok := groups[vertical]
		if !ok {
			g = &group{
				tokens:     newCounter(),
				discounts:  newCounter(),
				times:      newCounter(),
				promoCodes: newSet(),
				contacts:   newSet(),
				platforms:  newSet(),
				segments:   newSet(),
				productIDs: newSet(),
			}
			groups[vertical] = g
			order = append(order, vertical)
		}

		g.total++

		// One occurrence per record per distinct token; record token sets are
		// already deduplicated at normalization time.
		for _, token := range rec.PersonalizationTokens {
			g.tokens.add(token)
		}
		if rec.DiscountPercent != "" {
			g.discounts.add(rec.DiscountPercent + "% Off")
		}
		if rec.ScheduledTime != "" {
			g.times.add(rec.ScheduledTime)
		}
		g.promoCodes.add(rec.PromoCode)
		g.contacts.add(rec.ContactNumber)
		g.platforms.add(rec.Platform)
		g.segments.add(rec.UserSegment)
		for _, id := range rec.ProductIDs {
			g.productIDs.add(id)
		}
		if rec.Hook != "" {
			g.hooks = append(g.hooks, rec.Hook)
		}
	}

	profiles := make(map[string]*model.SegmentProfile, len(groups))
	for _, vertical := range order {
		g := groups[vertical]
		profiles[vertical] = &model.SegmentProfile{
			Vertical:         vertical,
			TotalCampaigns:   g.total,
			CommonHooks:      g.hooks,
			CommonTokens:     g.tokens.ranked(opts.TopTokens),
			TypicalDiscounts: g.discounts.ranked(opts.TopDiscounts),
			BestTime:         g.times.ranked(opts.TopTimes),
			PromoCodes:       g.promoCodes.list(opts.TopPromoCodes),
			ContactNumbers:   g.contacts.list(0),
			Platforms:        g.platforms.list(0),
			UserSegments:     g.segments.list(0),
			ProductIDs:       g.productIDs.list(opts.TopProductIDs),
		}
	}
	return profiles
}

// TopVerticals returns vertical keys ordered by campaign volume descending,
// name ascending on ties, truncated to n (n <= 0 means all).
func TopVerticals(profiles map[string]*model.SegmentProfile, n int) []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := profiles[keys[i]], profiles[keys[j]]
		if a.TotalCampaigns != b.TotalCampaigns {
			return a.TotalCampaigns > b.TotalCampaigns
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
