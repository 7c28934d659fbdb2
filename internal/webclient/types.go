package webclient

// Suggestion is one autocomplete row.
type Suggestion struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	PlaceID string `json:"place_id"`
}

// Label is the text shown in the dropdown.
func (s Suggestion) Label() string {
	return s.Name + " (" + s.Address + ")"
}

// RecommendationRequest is the body of POST /get_recommendations.
type RecommendationRequest struct {
	User             string   `json:"user"`
	City             string   `json:"city"`
	Neighborhood     string   `json:"neighborhood"`
	PlaceIDs         []string `json:"place_ids"`
	InputRestaurants []string `json:"input_restaurants"`
	RestaurantTypes  []string `json:"restaurant_types"`
	InputWeight      float64  `json:"input_weight"`
	RevisitWeight    float64  `json:"revisit_weight"`
}

type Recommendation struct {
	ID          int64    `json:"id"`
	PlaceID     string   `json:"place_id,omitempty"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating,omitempty"`
	PriceLevel  string   `json:"price_level,omitempty"`
	IsRevisit   bool     `json:"is_revisit,omitempty"`
}

type Preference string

const (
	Like    Preference = "like"
	Neutral Preference = "neutral"
	Dislike Preference = "dislike"
)

// Valid reports whether p is one of the three accepted values.
func (p Preference) Valid() bool {
	return p == Like || p == Neutral || p == Dislike
}

type PreferenceUpdate struct {
	RestaurantID int64      `json:"restaurant_id"`
	Preference   Preference `json:"preference"`
}

type RestaurantPreference struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Preference Preference `json:"preference"`
}

type FeedbackItem struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	Score    int    `json:"score"`
	UserVote int    `json:"user_vote"`
}

// VoteResult is the reply to a vote. Success false means the vote was not
// applied even when no error came back.
type VoteResult struct {
	Success  bool `json:"success"`
	NewScore int  `json:"new_score"`
}
