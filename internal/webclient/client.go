package webclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Client talks to a Campfire server over its JSON endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("city", city)
	q.Set("session_token", sessionToken)
	var out []Suggestion
	if err := c.get(ctx, "/autocomplete", q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out, nil
}

func (c *Client) Recommend(ctx context.Context, req RecommendationRequest) ([]Recommendation, error) {
	var out struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := c.post(ctx, "/get_recommendations", req, &out); err != nil {
		return nil, err
	}
	if out.Recommendations == nil {
		out.Recommendations = []Recommendation{}
	}
	return out.Recommendations, nil
}

func (c *Client) SavePreferences(ctx context.Context, userName string, prefs []PreferenceUpdate) error {
	body := struct {
		UserName    string             `json:"user_name"`
		Preferences []PreferenceUpdate `json:"preferences"`
	}{userName, prefs}
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/save_preferences", body, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("%w: save preferences not acknowledged", ErrNetwork)
	}
	return nil
}

func (c *Client) UserPreferences(ctx context.Context, name string) ([]RestaurantPreference, error) {
	q := url.Values{}
	q.Set("name", name)
	var out struct {
		Restaurants []RestaurantPreference `json:"restaurants"`
	}
	if err := c.get(ctx, "/get_user_preferences", q, &out); err != nil {
		return nil, err
	}
	if out.Restaurants == nil {
		out.Restaurants = []RestaurantPreference{}
	}
	return out.Restaurants, nil
}

func (c *Client) Feedback(ctx context.Context, userName string) ([]FeedbackItem, error) {
	var q url.Values
	if userName != "" {
		q = url.Values{}
		q.Set("user_name", userName)
	}
	var out struct {
		Suggestions []FeedbackItem `json:"suggestions"`
	}
	if err := c.get(ctx, "/get_feedback", q, &out); err != nil {
		return nil, err
	}
	if out.Suggestions == nil {
		out.Suggestions = []FeedbackItem{}
	}
	return out.Suggestions, nil
}

func (c *Client) SubmitFeedback(ctx context.Context, userName, content string) (int64, error) {
	body := struct {
		UserName string `json:"user_name"`
		Content  string `json:"content"`
	}{userName, content}
	var out struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	if err := c.post(ctx, "/submit_feedback", body, &out); err != nil {
		return 0, err
	}
	if !out.Success {
		return 0, fmt.Errorf("%w: submission not acknowledged", ErrNetwork)
	}
	return out.ID, nil
}

func (c *Client) VoteFeedback(ctx context.Context, userName string, suggestionID int64, vote int) (VoteResult, error) {
	body := struct {
		UserName     string `json:"user_name"`
		SuggestionID int64  `json:"suggestion_id"`
		VoteType     int    `json:"vote_type"`
	}{userName, suggestionID, vote}
	var out VoteResult
	if err := c.post(ctx, "/vote_feedback", body, &out); err != nil {
		return VoteResult{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	target := c.BaseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return c.do(req, dst)
}

func (c *Client) post(ctx context.Context, path string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dst)
}

// do sends req and decodes the reply. A body with a non-empty "error" field
// is an *APIError whatever the status.
func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: envelope.Error}
		}
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: http status %d", ErrNetwork, resp.StatusCode)
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrNetwork, req.URL.Path, err)
	}
	return nil
}

var _ Backend = (*Client)(nil)
