package webclient

import (
	"context"
	"sync"
)

type fakeBackend struct {
	mu sync.Mutex

	suggest     func(query string) []Suggestion
	acTokens    []string
	acQueries   []string
	recs        []Recommendation
	recErr      error
	lastReq     RecommendationRequest
	prefs       []RestaurantPreference
	saved       []PreferenceUpdate
	saveErr     error
	feedback    []FeedbackItem
	feedbackErr error
	feedbackHit int
	vote        VoteResult
	voteErr     error
	submitted   []string
	submitErr   error
}

func (f *fakeBackend) Autocomplete(_ context.Context, query, _, token string) ([]Suggestion, error) {
	f.mu.Lock()
	f.acQueries = append(f.acQueries, query)
	f.acTokens = append(f.acTokens, token)
	suggest := f.suggest
	f.mu.Unlock()
	if suggest == nil {
		return []Suggestion{}, nil
	}
	return suggest(query), nil
}

func (f *fakeBackend) Recommend(_ context.Context, req RecommendationRequest) ([]Recommendation, error) {
	f.lastReq = req
	return f.recs, f.recErr
}

func (f *fakeBackend) SavePreferences(_ context.Context, _ string, prefs []PreferenceUpdate) error {
	f.saved = append(f.saved, prefs...)
	return f.saveErr
}

func (f *fakeBackend) UserPreferences(context.Context, string) ([]RestaurantPreference, error) {
	return append([]RestaurantPreference(nil), f.prefs...), nil
}

func (f *fakeBackend) Feedback(context.Context, string) ([]FeedbackItem, error) {
	f.feedbackHit++
	return append([]FeedbackItem(nil), f.feedback...), f.feedbackErr
}

func (f *fakeBackend) SubmitFeedback(_ context.Context, _ string, content string) (int64, error) {
	if f.submitErr != nil {
		return 0, f.submitErr
	}
	f.submitted = append(f.submitted, content)
	return int64(len(f.submitted)), nil
}

func (f *fakeBackend) VoteFeedback(context.Context, string, int64, int) (VoteResult, error) {
	return f.vote, f.voteErr
}

func (f *fakeBackend) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.acQueries...)
}
