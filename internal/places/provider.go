// Package places talks to third-party place directories (Google Places, Yelp)
// for autocomplete, place details and candidate search.
package places

import (
	"context"
	"errors"
	"strings"

	"campfire/internal/restaurants"
)

// ErrNotConfigured is returned when the provider has no API key.
var ErrNotConfigured = errors.New("places provider not configured")

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	PlaceID string `json:"place_id"`
}

// Details is the provider-neutral view of a single place.
type Details struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Phone            string   `json:"phone,omitempty"`
	Website          string   `json:"website,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	PriceLevel       string   `json:"price_level,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingCount  *int     `json:"user_rating_count,omitempty"`
	EditorialSummary string   `json:"editorial_summary,omitempty"`
	PrimaryType      string   `json:"primary_type,omitempty"`
	ServesDineIn     *bool    `json:"serves_dine_in,omitempty"`
	ServesTakeout    *bool    `json:"serves_takeout,omitempty"`
	ServesDelivery   *bool    `json:"serves_delivery,omitempty"`
	Reservable       *bool    `json:"reservable,omitempty"`
}

// NearbyQuery describes a candidate search around a city or neighborhood.
type NearbyQuery struct {
	City         string
	Neighborhood string
	Types        []string
	MaxResults   int
}

// Provider is implemented by each place directory.
type Provider interface {
	Name() string
	Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error)
	Details(ctx context.Context, placeID, sessionToken string) (Details, error)
	SearchNearby(ctx context.Context, q NearbyQuery) ([]Details, error)
}

// ToRestaurant maps provider details onto a restaurant row for the given provider.
func ToRestaurant(provider string, d Details) restaurants.Restaurant {
	return restaurants.Restaurant{
		Name:             strings.TrimSpace(d.Name),
		Location:         strings.TrimSpace(d.Address),
		CuisineType:      strings.Join(d.Categories, ", "),
		Provider:         provider,
		PlaceID:          d.PlaceID,
		PriceLevel:       d.PriceLevel,
		Rating:           d.Rating,
		UserRatingCount:  d.UserRatingCount,
		EditorialSummary: d.EditorialSummary,
		PrimaryType:      d.PrimaryType,
		ServesDineIn:     d.ServesDineIn,
		ServesTakeout:    d.ServesTakeout,
		ServesDelivery:   d.ServesDelivery,
		Reservable:       d.Reservable,
	}
}

// FromRestaurant is the inverse of ToRestaurant, used when cached rows join a candidate pool.
func FromRestaurant(r restaurants.Restaurant) Details {
	return Details{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		Address:          r.Location,
		Categories:       r.Categories(),
		PriceLevel:       r.PriceLevel,
		Rating:           r.Rating,
		UserRatingCount:  r.UserRatingCount,
		EditorialSummary: r.EditorialSummary,
		PrimaryType:      r.PrimaryType,
		ServesDineIn:     r.ServesDineIn,
		ServesTakeout:    r.ServesTakeout,
		ServesDelivery:   r.ServesDelivery,
		Reservable:       r.Reservable,
	}
}
