package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"campfire/internal/restaurants"
)

const yelpBaseURL = "https://api.yelp.com/v3"

// Yelp supports autocomplete and details. Candidate search is not offered
// on Yelp's current plan, so SearchNearby returns no results.
type Yelp struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewYelp(apiKey string) *Yelp {
	return &Yelp{APIKey: strings.TrimSpace(apiKey), BaseURL: yelpBaseURL, HTTP: newHTTPClient()}
}

func (y *Yelp) Name() string { return restaurants.ProviderYelp }

type yelpBusiness struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Phone    string   `json:"display_phone"`
	Price    string   `json:"price"`
	Rating   *float64 `json:"rating"`
	Reviews  *int     `json:"review_count"`
	Location struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
	Categories []struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	} `json:"categories"`
}

func (b yelpBusiness) address() string {
	return strings.Join(b.Location.DisplayAddress, ", ")
}

func (y *Yelp) Autocomplete(ctx context.Context, query, city, _ string) ([]Suggestion, error) {
	if y.APIKey == "" {
		return []Suggestion{}, nil
	}
	params := url.Values{}
	params.Set("text", strings.TrimSpace(query))
	params.Set("location", strings.TrimSpace(city))
	params.Set("limit", "5")
	params.Set("categories", "restaurants,food")
	req, err := http.NewRequest(http.MethodGet, y.BaseURL+"/businesses/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+y.APIKey)

	var parsed struct {
		Businesses []yelpBusiness `json:"businesses"`
	}
	if err := doJSON(ctx, y.HTTP, req, &parsed); err != nil {
		return nil, fmt.Errorf("yelp search: %w", err)
	}
	out := make([]Suggestion, 0, len(parsed.Businesses))
	for _, b := range parsed.Businesses {
		out = append(out, Suggestion{Name: b.Name, Address: b.address(), PlaceID: b.ID})
	}
	return out, nil
}

func (y *Yelp) Details(ctx context.Context, placeID, _ string) (Details, error) {
	if y.APIKey == "" {
		return Details{}, ErrNotConfigured
	}
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return Details{}, fmt.Errorf("yelp details: place id is required")
	}
	req, err := http.NewRequest(http.MethodGet, y.BaseURL+"/businesses/"+url.PathEscape(placeID), nil)
	if err != nil {
		return Details{}, err
	}
	req.Header.Set("Authorization", "Bearer "+y.APIKey)

	var b yelpBusiness
	if err := doJSON(ctx, y.HTTP, req, &b); err != nil {
		return Details{}, fmt.Errorf("yelp details: %w", err)
	}
	d := Details{
		PlaceID:         b.ID,
		Name:            b.Name,
		Address:         b.address(),
		Phone:           b.Phone,
		Website:         b.URL,
		PriceLevel:      yelpPriceLevel(b.Price),
		Rating:          b.Rating,
		UserRatingCount: b.Reviews,
	}
	for _, c := range b.Categories {
		d.Categories = append(d.Categories, c.Title)
		if d.PrimaryType == "" {
			d.PrimaryType = c.Alias
		}
	}
	if d.PlaceID == "" {
		d.PlaceID = placeID
	}
	return d, nil
}

func (y *Yelp) SearchNearby(context.Context, NearbyQuery) ([]Details, error) {
	return []Details{}, nil
}

// yelpPriceLevel maps "$".."$$$$" onto Google's price level names so the
// taste profile compares like with like.
func yelpPriceLevel(price string) string {
	switch strings.TrimSpace(price) {
	case "$":
		return "PRICE_LEVEL_INEXPENSIVE"
	case "$$":
		return "PRICE_LEVEL_MODERATE"
	case "$$$":
		return "PRICE_LEVEL_EXPENSIVE"
	case "$$$$":
		return "PRICE_LEVEL_VERY_EXPENSIVE"
	default:
		return ""
	}
}
