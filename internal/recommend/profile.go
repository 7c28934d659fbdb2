package recommend

import (
	"math"
	"sort"

	"campfire/internal/restaurants"
)

// Profile summarizes what a user tends to like. Nil or empty fields mean no signal.
type Profile struct {
	PreferredPriceLevel string   `json:"preferred_price_level,omitempty"`
	MinRating           *float64 `json:"min_rating,omitempty"`
	TopCuisineTypes     []string `json:"top_cuisine_types,omitempty"`
	PrefersDineIn       *bool    `json:"prefers_dine_in,omitempty"`
	PrefersTakeout      *bool    `json:"prefers_takeout,omitempty"`
	PrefersReservable   *bool    `json:"prefers_reservable,omitempty"`
}

func (p Profile) IsEmpty() bool {
	return p.PreferredPriceLevel == "" && p.MinRating == nil && len(p.TopCuisineTypes) == 0 &&
		p.PrefersDineIn == nil && p.PrefersTakeout == nil && p.PrefersReservable == nil
}

// BuildProfile blends history and session inputs. alpha is the weight of the
// session inputs; when only one side has a value for a feature it gets full weight.
func BuildProfile(history, inputs []restaurants.Restaurant, alpha float64) Profile {
	var p Profile
	if len(history) == 0 && len(inputs) == 0 {
		return p
	}
	alpha = clamp01(alpha)

	if top := weightedVote(history, inputs, alpha, func(r restaurants.Restaurant) string { return r.PriceLevel }); len(top) > 0 {
		p.PreferredPriceLevel = top[0]
	}
	if top := weightedVote(history, inputs, alpha, func(r restaurants.Restaurant) string { return r.PrimaryType }); len(top) > 0 {
		if len(top) > 3 {
			top = top[:3]
		}
		p.TopCuisineTypes = top
	}
	p.MinRating = weightedRating(history, inputs, alpha)
	p.PrefersDineIn = weightedBool(history, inputs, alpha, func(r restaurants.Restaurant) *bool { return r.ServesDineIn })
	p.PrefersTakeout = weightedBool(history, inputs, alpha, func(r restaurants.Restaurant) *bool { return r.ServesTakeout })
	p.PrefersReservable = weightedBool(history, inputs, alpha, func(r restaurants.Restaurant) *bool { return r.Reservable })
	return p
}

// sideWeights returns the per-item weight of each side.
func sideWeights(nHistory, nInputs int, alpha float64) (h, i float64) {
	switch {
	case nHistory > 0 && nInputs > 0:
		return (1 - alpha) / float64(nHistory), alpha / float64(nInputs)
	case nHistory > 0:
		return 1 / float64(nHistory), 0
	case nInputs > 0:
		return 0, 1 / float64(nInputs)
	default:
		return 0, 0
	}
}

// weightedVote returns values by descending weight; ties keep first-seen order,
// history before inputs.
func weightedVote(history, inputs []restaurants.Restaurant, alpha float64, key func(restaurants.Restaurant) string) []string {
	var h, in []string
	for _, r := range history {
		if v := key(r); v != "" {
			h = append(h, v)
		}
	}
	for _, r := range inputs {
		if v := key(r); v != "" {
			in = append(in, v)
		}
	}
	if len(h) == 0 && len(in) == 0 {
		return nil
	}
	hw, iw := sideWeights(len(h), len(in), alpha)

	weights := map[string]float64{}
	var order []string
	add := func(v string, w float64) {
		if _, ok := weights[v]; !ok {
			order = append(order, v)
		}
		weights[v] += w
	}
	for _, v := range h {
		add(v, hw)
	}
	for _, v := range in {
		add(v, iw)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]+1e-12
	})
	return order
}

func weightedRating(history, inputs []restaurants.Restaurant, alpha float64) *float64 {
	var h, in []float64
	for _, r := range history {
		if r.Rating != nil {
			h = append(h, *r.Rating)
		}
	}
	for _, r := range inputs {
		if r.Rating != nil {
			in = append(in, *r.Rating)
		}
	}
	if len(h) == 0 && len(in) == 0 {
		return nil
	}
	hw, iw := sideWeights(len(h), len(in), alpha)
	var sum float64
	for _, v := range h {
		sum += hw * v
	}
	for _, v := range in {
		sum += iw * v
	}
	rounded := math.Round(sum*10) / 10
	return &rounded
}

func weightedBool(history, inputs []restaurants.Restaurant, alpha float64, key func(restaurants.Restaurant) *bool) *bool {
	var h, in []float64
	for _, r := range history {
		if v := key(r); v != nil {
			h = append(h, boolToFloat(*v))
		}
	}
	for _, r := range inputs {
		if v := key(r); v != nil {
			in = append(in, boolToFloat(*v))
		}
	}
	if len(h) == 0 && len(in) == 0 {
		return nil
	}
	hw, iw := sideWeights(len(h), len(in), alpha)
	var sum float64
	for _, v := range h {
		sum += hw * v
	}
	for _, v := range in {
		sum += iw * v
	}
	out := sum >= 0.5
	return &out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
