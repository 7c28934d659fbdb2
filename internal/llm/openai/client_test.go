package openai

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func withServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	oldURL := apiURL
	apiURL = server.URL
	t.Cleanup(func() { apiURL = oldURL })
}

func TestCompleteSendsPromptAndReturnsContent(t *testing.T) {
	var payload map[string]any
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  1. Alpha - cozy - great pasta \n"}}]}`))
	})

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got, err := client.Complete(context.Background(), "rank these")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "1. Alpha - cozy - great pasta" {
		t.Fatalf("unexpected content %q", got)
	}
	if payload["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model %v", payload["model"])
	}
	if _, ok := payload["temperature"]; !ok {
		t.Fatalf("expected temperature for gpt-4o-mini")
	}
}

func TestCompleteOmitsTemperatureForGPT5(t *testing.T) {
	var raw string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		raw = buf.String()
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	client, _ := NewClient("test-key", "gpt-5-mini")
	if _, err := client.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if strings.Contains(raw, "temperature") {
		t.Fatalf("temperature should be omitted: %s", raw)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})

	client, _ := NewClient("test-key", "")
	_, err := client.Complete(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(" ", "gpt-4o"); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{model: "gpt-5", want: true},
		{model: " GPT-5-mini ", want: true},
		{model: "gpt-4o-mini", want: false},
		{model: "", want: false},
	}
	for _, tt := range tests {
		if got := isGPT5(tt.model); got != tt.want {
			t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
