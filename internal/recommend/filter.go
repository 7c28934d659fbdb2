package recommend

import (
	"sort"
	"strings"
)

const (
	ratingFloor  = 3.5
	minSurvivors = 3
	typeFine     = "fine dining"
	typeBar      = "bar"
	typeCasual   = "casual"
	priceExp     = "PRICE_LEVEL_EXPENSIVE"
	priceVeryExp = "PRICE_LEVEL_VERY_EXPENSIVE"
	fineDiningPT = "fine_dining_restaurant"
)

var lodgingTypes = map[string]bool{
	"hotel": true, "motel": true, "lodging": true, "extended_stay_hotel": true, "resort_hotel": true,
	"bed_and_breakfast": true, "hostel": true, "inn": true, "vacation_rental": true,
}

var barTypes = map[string]bool{
	"bar": true, "cocktail_bar": true, "wine_bar": true, "pub": true, "bar_and_grill": true,
}

// FilterCandidates applies, in order: lodging removal, exclusion by place id,
// the rating floor, the restaurant type filter and a rating sort.
func FilterCandidates(cands []Candidate, excluded map[string]bool, types []string) []Candidate {
	out := dropLodging(cands)
	out = dropExcluded(out, excluded)
	out = applyRatingFloor(out)
	out = applyTypes(out, types)
	sortByRating(out)
	return out
}

func dropLodging(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if !lodgingTypes[strings.ToLower(c.PrimaryType)] {
			out = append(out, c)
		}
	}
	return out
}

func dropExcluded(cands []Candidate, excluded map[string]bool) []Candidate {
	if len(excluded) == 0 {
		return cands
	}
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if !excluded[c.PlaceID] {
			out = append(out, c)
		}
	}
	return out
}

// applyRatingFloor keeps candidates at or above the floor unless that would
// leave fewer than three.
func applyRatingFloor(cands []Candidate) []Candidate {
	var above []Candidate
	for _, c := range cands {
		if c.ratingOrZero() >= ratingFloor {
			above = append(above, c)
		}
	}
	if len(above) >= minSurvivors {
		return above
	}
	return cands
}

// applyTypes keeps candidates matching any requested type unless fewer than
// three match.
func applyTypes(cands []Candidate, types []string) []Candidate {
	wanted := normalizeTypes(types)
	if len(wanted) == 0 {
		return cands
	}
	var matched []Candidate
	for _, c := range cands {
		if matchesAnyType(c, wanted) {
			matched = append(matched, c)
		}
	}
	if len(matched) >= minSurvivors {
		return matched
	}
	return cands
}

func normalizeTypes(types []string) []string {
	var out []string
	for _, t := range types {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func matchesAnyType(c Candidate, wanted []string) bool {
	price := c.PriceLevel
	ptype := strings.ToLower(c.PrimaryType)
	for _, t := range wanted {
		switch t {
		case typeFine:
			if price == priceExp || price == priceVeryExp || ptype == fineDiningPT {
				return true
			}
		case typeBar:
			if barTypes[ptype] {
				return true
			}
			for _, cat := range c.Categories {
				if barTypes[strings.ToLower(cat)] {
					return true
				}
			}
		case typeCasual:
			if ptype != fineDiningPT && price != priceVeryExp {
				return true
			}
		}
	}
	return false
}

// sortByRating orders by rating descending; missing ratings sort as zero.
func sortByRating(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].ratingOrZero() > cands[j].ratingOrZero()
	})
}
