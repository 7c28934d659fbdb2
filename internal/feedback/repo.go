package feedback

import "context"

type Repo interface {
	Create(ctx context.Context, userID int64, content string) (Suggestion, error)
	Exists(ctx context.Context, suggestionID int64) (bool, error)
	// List returns every suggestion with its score; viewerID 0 means no viewer.
	List(ctx context.Context, viewerID int64) ([]SuggestionView, error)
	// GetVote returns the user's current vote, 0 when none.
	GetVote(ctx context.Context, suggestionID, userID int64) (int, error)
	SetVote(ctx context.Context, suggestionID, userID int64, vote int) error
	DeleteVote(ctx context.Context, suggestionID, userID int64) error
	Score(ctx context.Context, suggestionID int64) (int, error)
}
