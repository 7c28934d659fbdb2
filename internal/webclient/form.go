package webclient

import (
	"strings"

	"campfire/internal/shared/util"
)

const (
	DefaultInputWeight   = 70
	DefaultRevisitWeight = 0
)

// RestaurantField is one restaurant input row. PlaceID is set only after an
// autocomplete selection.
type RestaurantField struct {
	Text    string
	PlaceID string
}

// Form is the recommendation form. Weights are slider percentages; nil means
// the slider is not on the page.
type Form struct {
	Name          string
	Restaurants   []RestaurantField
	City          string
	Neighborhood  string
	Neighborhoods []string
	Types         []string
	InputWeight   *int
	RevisitWeight *int
}

// NewForm returns a form with three empty restaurant rows and the city's
// neighborhoods loaded.
func NewForm(city string) Form {
	f := Form{Restaurants: make([]RestaurantField, 3)}
	f.SetCity(city)
	return f
}

// SetCity replaces the neighborhood list with the city's set and clears the
// selected neighborhood.
func (f *Form) SetCity(city string) {
	f.City = city
	f.Neighborhoods = Neighborhoods(city)
	f.Neighborhood = ""
}

// BuildRecommendationRequest turns the form into the request body. Every
// array is non-nil so an empty form still encodes as [].
func BuildRecommendationRequest(f Form) RecommendationRequest {
	req := RecommendationRequest{
		User:             util.SanitizeName(f.Name),
		City:             f.City,
		Neighborhood:     f.Neighborhood,
		PlaceIDs:         []string{},
		InputRestaurants: []string{},
		RestaurantTypes:  []string{},
		InputWeight:      weight(f.InputWeight, DefaultInputWeight),
		RevisitWeight:    weight(f.RevisitWeight, DefaultRevisitWeight),
	}
	for _, r := range f.Restaurants {
		if id := strings.TrimSpace(r.PlaceID); id != "" {
			req.PlaceIDs = append(req.PlaceIDs, id)
		} else if text := strings.TrimSpace(r.Text); text != "" {
			req.InputRestaurants = append(req.InputRestaurants, text)
		}
	}
	seen := map[string]bool{}
	for _, t := range f.Types {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		req.RestaurantTypes = append(req.RestaurantTypes, t)
	}
	return req
}

func weight(percent *int, def int) float64 {
	p := def
	if percent != nil {
		p = *percent
	}
	w := float64(p) / 100
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
