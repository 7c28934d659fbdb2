package feedback

import "time"

// MaxContentLength caps a suggestion, in characters.
const MaxContentLength = 500

// Suggestion is a stored feature idea.
type Suggestion struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SuggestionView is a suggestion with its score and the viewer's own vote.
type SuggestionView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Score     int       `json:"score"`
	UserVote  int       `json:"user_vote"`
	CreatedAt time.Time `json:"created_at"`
}

// Vote outcomes, also used as metric labels.
const (
	ActionAdded    = "added"
	ActionRemoved  = "removed"
	ActionSwitched = "switched"
)
