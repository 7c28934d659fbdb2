package places

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newYelpServer(t *testing.T, handler http.HandlerFunc) *Yelp {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	y := NewYelp("yelp-key")
	y.BaseURL = srv.URL
	y.HTTP = srv.Client()
	return y
}

func TestYelpAutocompleteJoinsAddress(t *testing.T) {
	y := newYelpServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer yelp-key" {
			t.Errorf("missing bearer token")
		}
		q := r.URL.Query()
		if q.Get("text") != "pizza" || q.Get("location") != "Chicago" || q.Get("limit") != "5" || q.Get("categories") != "restaurants,food" {
			t.Errorf("unexpected params %v", q)
		}
		_, _ = io.WriteString(w, `{"businesses":[{"id":"y1","name":"Pequod's","location":{"display_address":["2207 N Clybourn Ave","Chicago, IL 60614"]}}]}`)
	})

	out, err := y.Autocomplete(context.Background(), "pizza", "Chicago", "ignored")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(out) != 1 || out[0].Address != "2207 N Clybourn Ave, Chicago, IL 60614" || out[0].PlaceID != "y1" {
		t.Fatalf("unexpected suggestions %+v", out)
	}
}

func TestYelpDetailsMapsPrice(t *testing.T) {
	y := newYelpServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/businesses/y1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"id":"y1","name":"Pequod's","price":"$$","rating":4.5,"display_phone":"(773) 327-1512",
			"categories":[{"alias":"pizza","title":"Pizza"}],"location":{"display_address":["2207 N Clybourn Ave"]}}`)
	})

	d, err := y.Details(context.Background(), "y1", "")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if d.PriceLevel != "PRICE_LEVEL_MODERATE" || d.PrimaryType != "pizza" || len(d.Categories) != 1 || d.Categories[0] != "Pizza" {
		t.Fatalf("unexpected details %+v", d)
	}
}

func TestYelpSearchNearbyEmpty(t *testing.T) {
	out, err := NewYelp("k").SearchNearby(context.Background(), NearbyQuery{City: "Chicago"})
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty result, got %v, %v", out, err)
	}
}
