package preferences

// Preference is a user's stored opinion of a restaurant.
type Preference string

const (
	Like    Preference = "like"
	Neutral Preference = "neutral"
	Dislike Preference = "dislike"
)

// Valid reports whether p is one of the three known values.
func (p Preference) Valid() bool {
	switch p {
	case Like, Neutral, Dislike:
		return true
	default:
		return false
	}
}

// Entry is one (restaurant, preference) pair.
type Entry struct {
	RestaurantID int64      `json:"restaurant_id"`
	Preference   Preference `json:"preference"`
}

// RestaurantPreference is a row of the preferences panel.
type RestaurantPreference struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Preference Preference `json:"preference"`
}
