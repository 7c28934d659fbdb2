package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"campfire/internal/places"
	"campfire/internal/restaurants"
	"campfire/internal/shared/config"
)

type stubPlaces struct{}

func (stubPlaces) Name() string { return restaurants.ProviderGoogle }

func (stubPlaces) Autocomplete(_ context.Context, query, _, _ string) ([]places.Suggestion, error) {
	return []places.Suggestion{{Name: "Au Cheval", Address: "800 W Randolph St", PlaceID: "pid_au"}}, nil
}

func (stubPlaces) Details(_ context.Context, placeID, _ string) (places.Details, error) {
	rating := 4.6
	return places.Details{PlaceID: placeID, Name: "Au Cheval", Address: "800 W Randolph St", Rating: &rating, PrimaryType: "american_restaurant"}, nil
}

func (stubPlaces) SearchNearby(context.Context, places.NearbyQuery) ([]places.Details, error) {
	out := make([]places.Details, 0, 4)
	for i := 1; i <= 4; i++ {
		rating := 4.0 + float64(i)/10
		out = append(out, places.Details{
			PlaceID:     fmt.Sprintf("pid_spot_%d", i),
			Name:        fmt.Sprintf("Spot %d", i),
			Address:     fmt.Sprintf("%d Fulton Market", i),
			Rating:      &rating,
			PrimaryType: "restaurant",
		})
	}
	return out, nil
}

type stubLLM struct{}

func (stubLLM) Complete(context.Context, string) (string, error) {
	return "1. First - Fits your burger habit - Smash patties\n2. Second - Same lively energy - Late night menu\n3. Third - Great for groups - Big tables", nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Defaults()
	cfg.Env = "dev"
	app, err := BuildWith(cfg, Overrides{Places: stubPlaces{}, LLM: stubLLM{}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func do(app *App, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(path string, values url.Values, userName string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userName != "" {
		req.AddCookie(&http.Cookie{Name: "campfire_username", Value: url.QueryEscape(userName)})
	}
	return req
}

func TestAPIRecommendThenPreferences(t *testing.T) {
	app := newTestApp(t)

	resp := do(app, jsonRequest(http.MethodPost, "/get_recommendations",
		`{"user":"alice","city":"Chicago","place_ids":["pid_au"],"input_restaurants":[],"restaurant_types":[],"input_weight":0.7,"revisit_weight":0}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("recommend: %d %s", resp.Code, resp.Body.String())
	}
	var recs struct {
		Recommendations []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs.Recommendations) != 3 || !strings.HasPrefix(recs.Recommendations[0].Name, "Spot ") {
		t.Fatalf("unexpected recommendations %s", resp.Body.String())
	}

	body := fmt.Sprintf(`{"user_name":"alice","preferences":[{"restaurant_id":%d,"preference":"like"}]}`, recs.Recommendations[0].ID)
	if resp := do(app, jsonRequest(http.MethodPost, "/save_preferences", body)); resp.Code != http.StatusOK {
		t.Fatalf("save: %d %s", resp.Code, resp.Body.String())
	}

	resp = do(app, httptest.NewRequest(http.MethodGet, "/get_user_preferences?name=alice", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("list: %d", resp.Code)
	}
	var prefs struct {
		Restaurants []struct {
			ID         int64  `json:"id"`
			Preference string `json:"preference"`
		} `json:"restaurants"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Au Cheval as input plus three recommendations.
	if len(prefs.Restaurants) != 4 {
		t.Fatalf("expected 4 restaurants, got %s", resp.Body.String())
	}
	liked := 0
	for _, r := range prefs.Restaurants {
		if r.Preference == "like" {
			liked++
		}
	}
	if liked != 1 {
		t.Fatalf("expected one like, got %s", resp.Body.String())
	}
}

func TestAPIAutocompleteAndHealth(t *testing.T) {
	app := newTestApp(t)

	resp := do(app, httptest.NewRequest(http.MethodGet, "/autocomplete?query=au&city=Chicago&session_token=tok", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "pid_au") {
		t.Fatalf("autocomplete: %d %s", resp.Code, resp.Body.String())
	}

	resp = do(app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("healthz: %d", resp.Code)
	}
}

func TestWebUIIndexAndSubmit(t *testing.T) {
	app := newTestApp(t)

	resp := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Wicker Park") {
		t.Fatalf("index: %d", resp.Code)
	}

	form := url.Values{
		"name":            {"  Bob  Smith "},
		"city":            {"Chicago"},
		"restaurant_name": {"Au Cheval", "", ""},
		"place_id":        {"pid_au", "", ""},
		"input_weight":    {"70"},
		"revisit_weight":  {"0"},
	}
	resp = do(app, formRequest("/", form, ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("submit: %d", resp.Code)
	}
	page := resp.Body.String()
	if !strings.Contains(page, "Spot ") || !strings.Contains(page, "Fits your burger habit") {
		t.Fatalf("expected cards in page")
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), "campfire_username=Bob+Smith") {
		t.Fatalf("expected sanitized name cookie, got %q", resp.Header().Get("Set-Cookie"))
	}
}

func TestWebUISubmitShowsInlineError(t *testing.T) {
	app := newTestApp(t)
	resp := do(app, formRequest("/", url.Values{"city": {"Chicago"}}, ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("submit: %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Error: user is required") {
		t.Fatalf("expected inline error")
	}
}

func TestWebUILookupAndPick(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{
		"city":            {"Chicago"},
		"restaurant_name": {"Au", "", ""},
		"place_id":        {"", "", ""},
		"session_token":   {"tok-1"},
		"lookup":          {"0"},
	}
	resp := do(app, formRequest("/", form, ""))
	if !strings.Contains(resp.Body.String(), "0|pid_au|Au Cheval (800 W Randolph St)") {
		t.Fatalf("expected suggestion button")
	}

	form.Del("lookup")
	form.Set("pick", "0|pid_au|Au Cheval (800 W Randolph St)")
	resp = do(app, formRequest("/", form, ""))
	page := resp.Body.String()
	if !strings.Contains(page, `value="pid_au"`) || !strings.Contains(page, `value="Au Cheval"`) {
		t.Fatalf("expected filled row")
	}
	if strings.Contains(page, `value="tok-1"`) {
		t.Fatalf("session token should rotate after a pick")
	}
}

func TestWebUIFeedbackFlow(t *testing.T) {
	app := newTestApp(t)

	resp := do(app, formRequest("/feedback", url.Values{"content": {"Add a map view"}}, "carol"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("submit: %d %s", resp.Code, resp.Body.String())
	}

	resp = do(app, httptest.NewRequest(http.MethodGet, "/feedback", nil))
	if !strings.Contains(resp.Body.String(), "Add a map view") {
		t.Fatalf("suggestion missing from board")
	}

	resp = do(app, formRequest("/feedback/vote", url.Values{"suggestion_id": {"1"}, "vote_type": {"1"}}, ""))
	if !strings.Contains(resp.Body.String(), "Please enter your name in the main form to vote.") {
		t.Fatalf("anonymous vote should alert")
	}

	resp = do(app, formRequest("/feedback/vote", url.Values{"suggestion_id": {"999"}, "vote_type": {"1"}}, "carol"))
	if !strings.Contains(resp.Body.String(), "Suggestion not found") {
		t.Fatalf("expected not found alert")
	}
}

func TestWebUIPreferencesNeedsName(t *testing.T) {
	app := newTestApp(t)
	resp := do(app, httptest.NewRequest(http.MethodGet, "/preferences", nil))
	if !strings.Contains(resp.Body.String(), "Please enter your name in the main form first.") {
		t.Fatalf("expected name prompt")
	}
}

func TestNeighborhoodsFragment(t *testing.T) {
	app := newTestApp(t)
	resp := do(app, httptest.NewRequest(http.MethodGet, "/neighborhoods?city=New+York", nil))
	body := resp.Body.String()
	if !strings.Contains(body, "Williamsburg") || strings.Contains(body, "Pilsen") {
		t.Fatalf("unexpected neighborhoods %s", body)
	}
}
