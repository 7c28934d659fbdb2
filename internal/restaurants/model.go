package restaurants

import (
	"strings"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderYelp   = "yelp"
)

// Restaurant is a place known to Campfire, keyed by provider and place id.
// Rich metadata fields are nil when the provider did not report them.
type Restaurant struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Location         string     `json:"address"`
	CuisineType      string     `json:"cuisine_type,omitempty"`
	Provider         string     `json:"provider"`
	PlaceID          string     `json:"place_id,omitempty"`
	Slug             string     `json:"slug,omitempty"`
	PriceLevel       string     `json:"price_level,omitempty"`
	Rating           *float64   `json:"rating,omitempty"`
	UserRatingCount  *int       `json:"user_rating_count,omitempty"`
	EditorialSummary string     `json:"editorial_summary,omitempty"`
	PrimaryType      string     `json:"primary_type,omitempty"`
	ServesDineIn     *bool      `json:"serves_dine_in,omitempty"`
	ServesTakeout    *bool      `json:"serves_takeout,omitempty"`
	ServesDelivery   *bool      `json:"serves_delivery,omitempty"`
	Reservable       *bool      `json:"reservable,omitempty"`
	LastEnrichedAt   *time.Time `json:"last_enriched_at,omitempty"`
	CityHint         string     `json:"city_hint,omitempty"`
}

// Categories splits the stored cuisine type list.
func (r Restaurant) Categories() []string {
	if strings.TrimSpace(r.CuisineType) == "" {
		return nil
	}
	parts := strings.Split(r.CuisineType, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RatingOrZero treats a missing rating as zero.
func (r Restaurant) RatingOrZero() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}
