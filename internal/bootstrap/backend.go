package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"campfire/internal/feedback"
	"campfire/internal/places"
	"campfire/internal/preferences"
	"campfire/internal/recommend"
	"campfire/internal/shared/telemetry"
	"campfire/internal/webclient"
)

// localBackend serves webclient calls from the services directly, with the
// same messages and statuses the JSON handlers use.
type localBackend struct {
	places      places.Provider
	recommend   *recommend.Service
	preferences *preferences.Service
	feedback    *feedback.Service
}

func (b *localBackend) Autocomplete(ctx context.Context, query, city, sessionToken string) ([]webclient.Suggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < places.MinQueryLength {
		return []webclient.Suggestion{}, nil
	}
	got, err := b.places.Autocomplete(ctx, query, strings.TrimSpace(city), sessionToken)
	if err != nil {
		telemetry.Warn("places.autocomplete.failed", map[string]any{"provider": b.places.Name(), "error": err.Error()})
		return []webclient.Suggestion{}, nil
	}
	out := make([]webclient.Suggestion, 0, len(got))
	for _, s := range got {
		out = append(out, webclient.Suggestion{Name: s.Name, Address: s.Address, PlaceID: s.PlaceID})
	}
	return out, nil
}

func (b *localBackend) Recommend(ctx context.Context, req webclient.RecommendationRequest) ([]webclient.Recommendation, error) {
	alpha, beta := req.InputWeight, req.RevisitWeight
	recs, err := b.recommend.Recommend(ctx, recommend.Request{
		User:             req.User,
		City:             req.City,
		Neighborhood:     req.Neighborhood,
		PlaceIDs:         req.PlaceIDs,
		InputRestaurants: req.InputRestaurants,
		RestaurantTypes:  req.RestaurantTypes,
		InputWeight:      &alpha,
		RevisitWeight:    &beta,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			return nil, apiError(http.StatusBadRequest, inputMessage(err, recommend.ErrInvalidInput))
		}
		telemetry.Error("recommend.failed", map[string]any{"user_name": req.User, "error": err.Error()})
		return nil, apiError(http.StatusInternalServerError, "Failed to generate recommendations")
	}
	out := make([]webclient.Recommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, webclient.Recommendation{
			ID:          r.ID,
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Address:     r.Address,
			Reason:      r.Reason,
			Description: r.Description,
			Rating:      r.Rating,
			PriceLevel:  r.PriceLevel,
			IsRevisit:   r.IsRevisit,
		})
	}
	return out, nil
}

func (b *localBackend) SavePreferences(ctx context.Context, userName string, prefs []webclient.PreferenceUpdate) error {
	entries := make([]preferences.Entry, 0, len(prefs))
	for _, p := range prefs {
		entries = append(entries, preferences.Entry{RestaurantID: p.RestaurantID, Preference: preferences.Preference(p.Preference)})
	}
	err := b.preferences.Save(ctx, userName, entries)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, preferences.ErrInvalidInput):
		return apiError(http.StatusBadRequest, err.Error())
	case errors.Is(err, preferences.ErrUserNotFound):
		return apiError(http.StatusNotFound, "User not found")
	case errors.Is(err, preferences.ErrRestaurantNotFound):
		return apiError(http.StatusNotFound, "Restaurant not found")
	default:
		return apiError(http.StatusInternalServerError, "Failed to save preferences")
	}
}

func (b *localBackend) UserPreferences(ctx context.Context, name string) ([]webclient.RestaurantPreference, error) {
	rows, err := b.preferences.List(ctx, name)
	if err != nil {
		if errors.Is(err, preferences.ErrInvalidInput) {
			return nil, apiError(http.StatusBadRequest, "Name is required")
		}
		return nil, apiError(http.StatusInternalServerError, "Failed to load preferences")
	}
	out := make([]webclient.RestaurantPreference, 0, len(rows))
	for _, r := range rows {
		out = append(out, webclient.RestaurantPreference{
			ID:         r.ID,
			Name:       r.Name,
			Address:    r.Address,
			Preference: webclient.Preference(r.Preference),
		})
	}
	return out, nil
}

func (b *localBackend) Feedback(ctx context.Context, userName string) ([]webclient.FeedbackItem, error) {
	rows, err := b.feedback.List(ctx, userName)
	if err != nil {
		return nil, apiError(http.StatusInternalServerError, "Failed to load feedback")
	}
	out := make([]webclient.FeedbackItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, webclient.FeedbackItem{ID: r.ID, Content: r.Content, Score: r.Score, UserVote: r.UserVote})
	}
	return out, nil
}

func (b *localBackend) SubmitFeedback(ctx context.Context, userName, content string) (int64, error) {
	s, err := b.feedback.Submit(ctx, userName, content)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidInput) {
			return 0, apiError(http.StatusBadRequest, inputMessage(err, feedback.ErrInvalidInput))
		}
		return 0, apiError(http.StatusInternalServerError, "Failed to submit feedback")
	}
	return s.ID, nil
}

func (b *localBackend) VoteFeedback(ctx context.Context, userName string, suggestionID int64, vote int) (webclient.VoteResult, error) {
	score, err := b.feedback.Vote(ctx, userName, suggestionID, vote)
	switch {
	case err == nil:
		return webclient.VoteResult{Success: true, NewScore: score}, nil
	case errors.Is(err, feedback.ErrInvalidInput):
		return webclient.VoteResult{}, apiError(http.StatusBadRequest, inputMessage(err, feedback.ErrInvalidInput))
	case errors.Is(err, feedback.ErrNotFound):
		return webclient.VoteResult{}, apiError(http.StatusNotFound, feedback.ErrNotFound.Error())
	default:
		return webclient.VoteResult{}, apiError(http.StatusInternalServerError, "Failed to record vote")
	}
}

func apiError(status int, msg string) *webclient.APIError {
	return &webclient.APIError{Status: status, Message: msg}
}

// inputMessage drops the sentinel prefix from a wrapped validation error.
func inputMessage(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

var _ webclient.Backend = (*localBackend)(nil)
