package places

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"campfire/internal/restaurants"
)

const (
	googleLegacyBaseURL = "https://maps.googleapis.com/maps/api/place"
	googlePlacesBaseURL = "https://places.googleapis.com/v1"
)

var googleDetailFields = []string{
	"id", "displayName", "formattedAddress", "nationalPhoneNumber", "websiteUri", "types",
	"priceLevel", "rating", "userRatingCount", "editorialSummary", "primaryType",
	"servesDineIn", "takeout", "delivery", "reservable",
}

// Google uses the legacy autocomplete endpoint and Places API (New) for
// details and text search, which carry price level and service attributes.
type Google struct {
	APIKey        string
	LegacyBaseURL string
	PlacesBaseURL string
	HTTP          *http.Client
}

func NewGoogle(apiKey string) *Google {
	return &Google{
		APIKey:        strings.TrimSpace(apiKey),
		LegacyBaseURL: googleLegacyBaseURL,
		PlacesBaseURL: googlePlacesBaseURL,
		HTTP:          newHTTPClient(),
	}
}

func (g *Google) Name() string { return restaurants.ProviderGoogle }

type googleAutocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		PlaceID              string `json:"place_id"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

func (g *Google) Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error) {
	if g.APIKey == "" {
		return []Suggestion{}, nil
	}
	input := strings.TrimSpace(query)
	if c := strings.TrimSpace(city); c != "" {
		input = input + " in " + c
	}
	params := url.Values{}
	params.Set("input", input)
	params.Set("types", "establishment")
	params.Set("key", g.APIKey)
	if sessionToken != "" {
		params.Set("sessiontoken", sessionToken)
	}
	req, err := http.NewRequest(http.MethodGet, g.LegacyBaseURL+"/autocomplete/json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var parsed googleAutocompleteResponse
	if err := doJSON(ctx, g.HTTP, req, &parsed); err != nil {
		return nil, fmt.Errorf("google autocomplete: %w", err)
	}
	switch parsed.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("google autocomplete: %s %s", parsed.Status, parsed.ErrorMessage)
	}

	out := make([]Suggestion, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		out = append(out, Suggestion{
			Name:    p.StructuredFormatting.MainText,
			Address: p.StructuredFormatting.SecondaryText,
			PlaceID: p.PlaceID,
		})
	}
	return out, nil
}

type googleText struct {
	Text string `json:"text"`
}

type googlePlace struct {
	ID                  string      `json:"id"`
	DisplayName         *googleText `json:"displayName"`
	FormattedAddress    string      `json:"formattedAddress"`
	NationalPhoneNumber string      `json:"nationalPhoneNumber"`
	WebsiteURI          string      `json:"websiteUri"`
	Types               []string    `json:"types"`
	PriceLevel          string      `json:"priceLevel"`
	Rating              *float64    `json:"rating"`
	UserRatingCount     *int        `json:"userRatingCount"`
	EditorialSummary    *googleText `json:"editorialSummary"`
	PrimaryType         string      `json:"primaryType"`
	ServesDineIn        *bool       `json:"servesDineIn"`
	Takeout             *bool       `json:"takeout"`
	Delivery            *bool       `json:"delivery"`
	Reservable          *bool       `json:"reservable"`
}

func (p googlePlace) details() Details {
	d := Details{
		PlaceID:         p.ID,
		Address:         p.FormattedAddress,
		Phone:           p.NationalPhoneNumber,
		Website:         p.WebsiteURI,
		Categories:      p.Types,
		PriceLevel:      p.PriceLevel,
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		PrimaryType:     p.PrimaryType,
		ServesDineIn:    p.ServesDineIn,
		ServesTakeout:   p.Takeout,
		ServesDelivery:  p.Delivery,
		Reservable:      p.Reservable,
	}
	if p.DisplayName != nil {
		d.Name = p.DisplayName.Text
	}
	if p.EditorialSummary != nil {
		d.EditorialSummary = p.EditorialSummary.Text
	}
	return d
}

func (g *Google) Details(ctx context.Context, placeID, sessionToken string) (Details, error) {
	if g.APIKey == "" {
		return Details{}, ErrNotConfigured
	}
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return Details{}, fmt.Errorf("google details: place id is required")
	}
	endpoint := g.PlacesBaseURL + "/places/" + url.PathEscape(placeID)
	if sessionToken != "" {
		endpoint += "?sessionToken=" + url.QueryEscape(sessionToken)
	}
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return Details{}, err
	}
	g.setHeaders(req, strings.Join(googleDetailFields, ","))

	var place googlePlace
	if err := doJSON(ctx, g.HTTP, req, &place); err != nil {
		return Details{}, fmt.Errorf("google details: %w", err)
	}
	d := place.details()
	if d.PlaceID == "" {
		d.PlaceID = placeID
	}
	return d, nil
}

type googleSearchRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

func (g *Google) SearchNearby(ctx context.Context, q NearbyQuery) ([]Details, error) {
	if g.APIKey == "" {
		return nil, ErrNotConfigured
	}
	limit := q.MaxResults
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	payload, err := json.Marshal(googleSearchRequest{TextQuery: searchText(q), MaxResultCount: limit})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, g.PlacesBaseURL+"/places:searchText", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	fields := make([]string, len(googleDetailFields))
	for i, f := range googleDetailFields {
		fields[i] = "places." + f
	}
	g.setHeaders(req, strings.Join(fields, ","))

	var parsed struct {
		Places []googlePlace `json:"places"`
	}
	if err := doJSON(ctx, g.HTTP, req, &parsed); err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}
	out := make([]Details, 0, len(parsed.Places))
	for _, p := range parsed.Places {
		out = append(out, p.details())
	}
	return out, nil
}

func (g *Google) setHeaders(req *http.Request, fieldMask string) {
	req.Header.Set("X-Goog-Api-Key", g.APIKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
}

// searchText builds e.g. "fine dining or bar restaurants in West Loop, Chicago".
func searchText(q NearbyQuery) string {
	var types []string
	for _, t := range q.Types {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	what := "restaurants"
	if len(types) > 0 {
		what = strings.Join(types, " or ") + " restaurants"
	}
	where := strings.TrimSpace(q.City)
	if n := strings.TrimSpace(q.Neighborhood); n != "" {
		where = n + ", " + where
	}
	return what + " in " + where
}
