package webclient

import "context"

// Backend is everything the UI asks of the server.
type Backend interface {
	Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error)
	Recommend(ctx context.Context, req RecommendationRequest) ([]Recommendation, error)
	SavePreferences(ctx context.Context, userName string, prefs []PreferenceUpdate) error
	UserPreferences(ctx context.Context, name string) ([]RestaurantPreference, error)
	Feedback(ctx context.Context, userName string) ([]FeedbackItem, error)
	SubmitFeedback(ctx context.Context, userName, content string) (int64, error)
	VoteFeedback(ctx context.Context, userName string, suggestionID int64, vote int) (VoteResult, error)
}
