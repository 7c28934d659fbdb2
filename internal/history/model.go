package history

import "time"

// Kind tags how a restaurant took part in a request.
type Kind string

const (
	KindInput          Kind = "input"
	KindRecommendation Kind = "recommendation"
)

// Request is one recommendation run for a user in a city.
type Request struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	City          string    `json:"city"`
	Neighborhood  string    `json:"neighborhood,omitempty"`
	InputWeight   float64   `json:"input_weight"`
	RevisitWeight float64   `json:"revisit_weight"`
	CreatedAt     time.Time `json:"created_at"`
}
