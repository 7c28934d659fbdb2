package places

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newGoogleServer(t *testing.T, handler http.HandlerFunc) *Google {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewGoogle("test-key")
	g.LegacyBaseURL = srv.URL + "/maps/api/place"
	g.PlacesBaseURL = srv.URL + "/v1"
	g.HTTP = srv.Client()
	return g
}

func TestGoogleAutocompleteMapsPredictions(t *testing.T) {
	g := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/place/autocomplete/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("input") != "girl in Chicago" {
			t.Errorf("unexpected input %q", q.Get("input"))
		}
		if q.Get("types") != "establishment" || q.Get("sessiontoken") != "tok-1" {
			t.Errorf("unexpected params %v", q)
		}
		_, _ = io.WriteString(w, `{"status":"OK","predictions":[
			{"place_id":"p1","structured_formatting":{"main_text":"Girl & the Goat","secondary_text":"809 W Randolph St"}},
			{"place_id":"p2","structured_formatting":{"main_text":"Little Goat"}}
		]}`)
	})

	out, err := g.Autocomplete(context.Background(), "girl", "Chicago", "tok-1")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(out))
	}
	if out[0] != (Suggestion{Name: "Girl & the Goat", Address: "809 W Randolph St", PlaceID: "p1"}) {
		t.Fatalf("unexpected first suggestion %+v", out[0])
	}
	if out[1].Address != "" {
		t.Fatalf("expected empty address, got %q", out[1].Address)
	}
}

func TestGoogleAutocompleteWithoutKeyIsEmpty(t *testing.T) {
	g := NewGoogle("")
	out, err := g.Autocomplete(context.Background(), "girl", "Chicago", "")
	if err != nil || len(out) != 0 || out == nil {
		t.Fatalf("expected empty non-nil result, got %v, %v", out, err)
	}
	if _, err := g.Details(context.Background(), "p1", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGoogleAutocompleteStatusError(t *testing.T) {
	g := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"REQUEST_DENIED","error_message":"bad key"}`)
	})
	if _, err := g.Autocomplete(context.Background(), "girl", "Chicago", ""); err == nil {
		t.Fatalf("expected error for REQUEST_DENIED")
	}
}

func TestGoogleDetailsParsesRichFields(t *testing.T) {
	g := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/places/p1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Goog-Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if !strings.Contains(r.Header.Get("X-Goog-FieldMask"), "priceLevel") {
			t.Errorf("field mask missing priceLevel: %s", r.Header.Get("X-Goog-FieldMask"))
		}
		_, _ = io.WriteString(w, `{
			"id":"p1",
			"displayName":{"text":"Au Cheval"},
			"formattedAddress":"800 W Randolph St",
			"types":["restaurant","food"],
			"priceLevel":"PRICE_LEVEL_MODERATE",
			"rating":4.6,
			"userRatingCount":9000,
			"editorialSummary":{"text":"Diner burgers"},
			"primaryType":"hamburger_restaurant",
			"servesDineIn":true,
			"takeout":false,
			"reservable":false
		}`)
	})

	d, err := g.Details(context.Background(), "p1", "")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if d.Name != "Au Cheval" || d.PriceLevel != "PRICE_LEVEL_MODERATE" || d.PrimaryType != "hamburger_restaurant" {
		t.Fatalf("unexpected details %+v", d)
	}
	if d.Rating == nil || *d.Rating != 4.6 {
		t.Fatalf("unexpected rating %v", d.Rating)
	}
	if d.ServesDineIn == nil || !*d.ServesDineIn || d.ServesTakeout == nil || *d.ServesTakeout {
		t.Fatalf("unexpected service flags %+v", d)
	}
	if d.ServesDelivery != nil {
		t.Fatalf("expected unknown delivery, got %v", *d.ServesDelivery)
	}
	if d.EditorialSummary != "Diner burgers" || len(d.Categories) != 2 {
		t.Fatalf("unexpected summary/categories %+v", d)
	}
}

func TestGoogleSearchNearbyPostsTextQuery(t *testing.T) {
	g := newGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/places:searchText" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"textQuery":"bar restaurants in West Loop, Chicago"`) {
			t.Errorf("unexpected body %s", body)
		}
		if !strings.HasPrefix(r.Header.Get("X-Goog-FieldMask"), "places.") {
			t.Errorf("field mask should be scoped to places: %s", r.Header.Get("X-Goog-FieldMask"))
		}
		_, _ = io.WriteString(w, `{"places":[{"id":"a","displayName":{"text":"A"}},{"id":"b","displayName":{"text":"B"}}]}`)
	})

	out, err := g.SearchNearby(context.Background(), NearbyQuery{City: "Chicago", Neighborhood: "West Loop", Types: []string{"Bar"}})
	if err != nil {
		t.Fatalf("SearchNearby: %v", err)
	}
	if len(out) != 2 || out[0].PlaceID != "a" || out[1].Name != "B" {
		t.Fatalf("unexpected results %+v", out)
	}
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		name string
		q    NearbyQuery
		want string
	}{
		{"city only", NearbyQuery{City: "Chicago"}, "restaurants in Chicago"},
		{"neighborhood", NearbyQuery{City: "New York", Neighborhood: "SoHo"}, "restaurants in SoHo, New York"},
		{"types", NearbyQuery{City: "Chicago", Types: []string{"Casual", " fine dining "}}, "casual or fine dining restaurants in Chicago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchText(tt.q); got != tt.want {
				t.Fatalf("searchText = %q, want %q", got, tt.want)
			}
		})
	}
}
