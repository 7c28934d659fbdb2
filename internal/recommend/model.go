package recommend

import (
	"errors"

	"campfire/internal/places"
)

// DefaultCount is how many recommendations a run returns.
const DefaultCount = 3

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoCandidates = errors.New("no candidates")
)

// Request is one /get_recommendations call.
type Request struct {
	User             string   `json:"user" binding:"notblank"`
	City             string   `json:"city" binding:"notblank"`
	Neighborhood     string   `json:"neighborhood"`
	PlaceIDs         []string `json:"place_ids"`
	InputRestaurants []string `json:"input_restaurants"`
	RestaurantTypes  []string `json:"restaurant_types"`
	InputWeight      *float64 `json:"input_weight"`
	RevisitWeight    *float64 `json:"revisit_weight"`
}

// Weights returns alpha and beta clamped to [0,1], defaulting to 0.7 and 0.
func (r Request) Weights() (alpha, beta float64) {
	alpha, beta = 0.7, 0
	if r.InputWeight != nil {
		alpha = clamp01(*r.InputWeight)
	}
	if r.RevisitWeight != nil {
		beta = clamp01(*r.RevisitWeight)
	}
	return alpha, beta
}

// Recommendation is one card returned to the browser.
type Recommendation struct {
	ID          int64    `json:"id"`
	PlaceID     string   `json:"place_id,omitempty"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating,omitempty"`
	PriceLevel  string   `json:"price_level,omitempty"`
	IsRevisit   bool     `json:"is_revisit,omitempty"`
}

// Candidate is a place eligible for ranking.
type Candidate struct {
	places.Details
	RestaurantID int64
	IsRevisit    bool
}

func (c Candidate) ratingOrZero() float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
