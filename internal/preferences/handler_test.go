package preferences

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(f fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(&r.RouterGroup)
	return r
}

func TestSavePreferencesAcceptsStringID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.users.Ensure(ctx, "alice"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	r := f.restaurant(t, "Alpha", "pid_a")
	router := newRouter(f)

	body := []byte(fmt.Sprintf(`{"user_name":"alice","preferences":[{"restaurant_id":%d,"preference":"like"}]}`, r.ID))
	req := httptest.NewRequest(http.MethodPost, "/save_preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	strBody := []byte(fmt.Sprintf(`{"user_name":"alice","preferences":[{"restaurant_id":"%d","preference":"dislike"}]}`, r.ID))
	req = httptest.NewRequest(http.MethodPost, "/save_preferences", bytes.NewReader(strBody))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for string id, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["success"] != true {
		t.Fatalf("expected success, got %v", payload)
	}
}

func TestSavePreferencesUnknownUser404(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	body := []byte(`{"user_name":"ghost","preferences":[{"restaurant_id":1,"preference":"like"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/save_preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "User not found" {
		t.Fatalf("unexpected error body %v", payload)
	}
}

func TestGetUserPreferencesRequiresName(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/get_user_preferences?name=%20%20", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/get_user_preferences?name=nobody", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Restaurants []RestaurantPreference `json:"restaurants"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Restaurants == nil || len(payload.Restaurants) != 0 {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
}

func TestSavePreferencesRejectsInvalidEntries(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	tests := map[string]string{
		`{"user_name":"alice","preferences":[{"restaurant_id":1,"preference":"love"}]}`: "preference must be like, neutral or dislike",
		`{"user_name":"alice","preferences":[{"preference":"like"}]}`:                   "restaurant_id is required",
		`{"user_name":"alice","preferences":[]}`:                                        "preferences needs at least 1 entries",
		`{"user_name":" ","preferences":[{"restaurant_id":1,"preference":"like"}]}`:     "user_name is required",
	}
	for body, want := range tests {
		req := httptest.NewRequest(http.MethodPost, "/save_preferences", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["error"] != want {
			t.Fatalf("%s: expected %q, got %v", body, want, payload["error"])
		}
	}
}

func TestInputMessageDropsSentinelPrefix(t *testing.T) {
	err := fmt.Errorf("%w: restaurant_id is required", ErrInvalidInput)
	if got := inputMessage(err); got != "restaurant_id is required" {
		t.Fatalf("unexpected message %q", got)
	}
}
