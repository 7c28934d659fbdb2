package recommend

import (
	"regexp"
	"strconv"
	"strings"

	"campfire/internal/shared/util"
)

var (
	leadingNumber = regexp.MustCompile(`^(\d+)[\.\)]\s*`)
	leadingBullet = regexp.MustCompile(`^[\-\*\x{2022}]\s+`)
	leadingDashes = regexp.MustCompile(`^[\s\-\x{2013}\x{2014}]+`)
)

// ParseRanking reads "N. Name - reason - description" lines from a model reply.
// N is the candidate number and names come from the candidate list, never the
// reply. An unnumbered "Name - ..." line is matched to a candidate by its
// sanitized name. Other lines are skipped and at most n results are returned.
func ParseRanking(reply string, cands []Candidate, n int) []Recommendation {
	if n <= 0 {
		n = DefaultCount
	}
	byName := make(map[string]int, len(cands))
	for i, c := range cands {
		key := nameKey(c.Name)
		if _, dup := byName[key]; !dup && key != "" {
			byName[key] = i
		}
	}

	var out []Recommendation
	seen := map[int]bool{}
	for _, line := range strings.Split(strings.TrimSpace(reply), "\n") {
		line = strings.TrimSpace(line)
		var idx int
		var parts []string
		if m := leadingNumber.FindStringSubmatch(line); m != nil {
			num, err := strconv.Atoi(m[1])
			if err != nil || num < 1 || num > len(cands) {
				continue
			}
			idx = num - 1
			parts = splitFields(line[len(m[0]):])
		} else {
			parts = splitFields(leadingBullet.ReplaceAllString(line, ""))
			if len(parts) < 2 {
				continue
			}
			i, ok := byName[nameKey(parts[0])]
			if !ok {
				continue
			}
			idx = i
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true

		var reason, description string
		switch {
		case len(parts) >= 3:
			if r := strings.TrimSpace(parts[1]); r != "-" && len(r) > 5 {
				reason = r
			}
			description = strings.TrimSpace(leadingDashes.ReplaceAllString(strings.Join(parts[2:], " - "), ""))
		case len(parts) == 2:
			description = strings.TrimSpace(parts[1])
		}

		out = append(out, toRecommendation(cands[idx], reason, description))
		if len(out) == n {
			break
		}
	}
	return out
}

func splitFields(rest string) []string {
	rest = strings.ReplaceAll(rest, " — ", " - ")
	rest = strings.ReplaceAll(rest, " – ", " - ")
	return strings.Split(rest, " - ")
}

func nameKey(name string) string {
	return strings.ToLower(util.SanitizeRestaurantName(strings.Trim(name, "*_ ")))
}

func toRecommendation(c Candidate, reason, description string) Recommendation {
	return Recommendation{
		ID:          c.RestaurantID,
		PlaceID:     c.PlaceID,
		Name:        c.Name,
		Address:     c.Address,
		Reason:      reason,
		Description: description,
		Rating:      c.Rating,
		PriceLevel:  c.PriceLevel,
		IsRevisit:   c.IsRevisit,
	}
}
