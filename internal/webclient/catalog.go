package webclient

import "strings"

var neighborhoods = map[string][]string{
	"Chicago":  {"West Loop", "Wicker Park", "Lincoln Park", "River North", "Logan Square", "Pilsen", "Gold Coast", "Loop", "Lakeview"},
	"New York": {"Manhattan", "Brooklyn", "Williamsburg", "SoHo", "East Village", "Tribeca", "West Village", "Upper East Side"},
}

var cities = []string{"Chicago", "New York"}

// TypeOption is a restaurant type toggle. Value is what the form submits.
type TypeOption struct {
	Label string
	Value string
}

var restaurantTypes = []string{"Casual", "Fine Dining", "Bar"}

// Cities lists the selectable cities in display order.
func Cities() []string {
	return append([]string(nil), cities...)
}

// Neighborhoods returns a copy of the city's neighborhood list; unknown
// cities get an empty list.
func Neighborhoods(city string) []string {
	return append([]string{}, neighborhoods[city]...)
}

// RestaurantTypes returns the type toggles in display order.
func RestaurantTypes() []TypeOption {
	out := make([]TypeOption, 0, len(restaurantTypes))
	for _, t := range restaurantTypes {
		out = append(out, TypeOption{Label: t, Value: strings.ToLower(t)})
	}
	return out
}
