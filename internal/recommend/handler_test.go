package recommend

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(&r.RouterGroup)
	return r
}

func postRecommend(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/get_recommendations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetRecommendationsReturnsCards(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f.svc)

	resp := postRecommend(router, `{"user":"alice","city":"Chicago","input_weight":0.7,"revisit_weight":0}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Recommendations) != 3 {
		t.Fatalf("expected 3 cards, got %s", resp.Body.String())
	}
	if body.Recommendations[0].Reason != "matches your usual spots" {
		t.Fatalf("unexpected reason %q", body.Recommendations[0].Reason)
	}
}

func TestGetRecommendationsMissingFields(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f.svc)

	cases := map[string]string{
		`{"city":"Chicago"}`:      "user is required",
		`{"user":"alice"}`:        "city is required",
		`{"user":"  ","city":""}`: "user is required",
	}
	for payload, want := range cases {
		resp := postRecommend(router, payload)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", payload, resp.Code)
		}
		var body struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(resp.Body.Bytes(), &body)
		if body.Error != want {
			t.Fatalf("%s: expected %q, got %q", payload, want, body.Error)
		}
	}
}

func TestGetRecommendationsMalformedBody(t *testing.T) {
	f := newFixture(t)
	resp := postRecommend(newRouter(f.svc), `{"user":`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetRecommendationsEmptyIsArray(t *testing.T) {
	f := newFixture(t)
	f.places.results = nil

	resp := postRecommend(newRouter(f.svc), `{"user":"alice","city":"Chicago"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != `{"recommendations":[]}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestGetRecommendationsUpstreamFailure(t *testing.T) {
	f := newFixture(t)
	f.places.results = nil
	f.places.searchErr = errors.New("provider down")

	resp := postRecommend(newRouter(f.svc), `{"user":"alice","city":"Chicago"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("Failed to generate recommendations")) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
