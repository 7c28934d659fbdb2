package recommend

import (
	"math"

	"campfire/internal/places"
	"campfire/internal/restaurants"
)

// minRevisitsOnly is how many revisits a full-revisit run needs before the
// provider search is skipped.
const minRevisitsOnly = 3

// selectRevisits picks previously recommended restaurants that the user has
// not disliked and did not enter this time, best rated first. With beta < 1
// it keeps ceil(beta*n); with beta == 1 it keeps all of them.
func selectRevisits(prev []restaurants.Restaurant, skip map[string]bool, beta float64, n int) []Candidate {
	if beta <= 0 {
		return nil
	}
	var out []Candidate
	for _, r := range prev {
		if r.PlaceID == "" || skip[r.PlaceID] {
			continue
		}
		out = append(out, Candidate{Details: places.FromRestaurant(r), RestaurantID: r.ID, IsRevisit: true})
	}
	sortByRating(out)
	if beta < 1 {
		keep := int(math.Ceil(beta * float64(n)))
		if keep < len(out) {
			out = out[:keep]
		}
	}
	return out
}

// mergeCandidates puts revisits first and drops search results that repeat them.
func mergeCandidates(revisits, searched []Candidate) []Candidate {
	out := make([]Candidate, 0, len(revisits)+len(searched))
	seen := map[string]bool{}
	for _, group := range [][]Candidate{revisits, searched} {
		for _, c := range group {
			if c.PlaceID != "" && seen[c.PlaceID] {
				continue
			}
			seen[c.PlaceID] = true
			out = append(out, c)
		}
	}
	return out
}
