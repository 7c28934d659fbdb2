package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// FallbackRank orders candidates without a model: rating first, nudged by
// how well each one matches the profile.
func FallbackRank(cands []Candidate, p Profile, n int) []Recommendation {
	if n <= 0 {
		n = DefaultCount
	}
	type scored struct {
		c      Candidate
		score  float64
		reason string
	}
	topTypes := map[string]bool{}
	for _, t := range p.TopCuisineTypes {
		topTypes[t] = true
	}

	list := make([]scored, 0, len(cands))
	for _, c := range cands {
		s := scored{c: c, score: c.ratingOrZero()}
		var why []string
		if c.PrimaryType != "" && topTypes[c.PrimaryType] {
			s.score += 0.5
			why = append(why, humanize(c.PrimaryType))
		}
		if p.PreferredPriceLevel != "" && c.PriceLevel == p.PreferredPriceLevel {
			s.score += 0.3
			why = append(why, strings.ToLower(humanize(strings.TrimPrefix(c.PriceLevel, "PRICE_LEVEL_")))+" prices")
		}
		if p.PrefersDineIn != nil && c.ServesDineIn != nil && *p.PrefersDineIn == *c.ServesDineIn {
			s.score += 0.1
		}
		if p.PrefersReservable != nil && c.Reservable != nil && *p.PrefersReservable == *c.Reservable {
			s.score += 0.1
		}
		switch {
		case c.IsRevisit:
			s.reason = "A past pick worth another visit"
		case len(why) > 0:
			s.reason = "Matches your taste for " + strings.Join(why, " and ")
		case c.Rating != nil:
			s.reason = fmt.Sprintf("Highly rated at %.1f stars", *c.Rating)
		}
		list = append(list, s)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	if len(list) > n {
		list = list[:n]
	}
	out := make([]Recommendation, 0, len(list))
	for _, s := range list {
		desc := s.c.EditorialSummary
		if desc == "" && s.c.PrimaryType != "" {
			desc = humanize(s.c.PrimaryType)
			if s.c.Address != "" {
				desc += " at " + s.c.Address
			}
		}
		out = append(out, toRecommendation(s.c, s.reason, desc))
	}
	return out
}

// humanize turns "italian_restaurant" into "Italian restaurant".
func humanize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
