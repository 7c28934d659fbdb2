package webui

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"campfire/internal/webclient"
)

const defaultCity = "Chicago"

// readForm rebuilds the recommendation form from a POST body. Restaurant rows
// arrive as parallel restaurant_name / place_id lists.
func readForm(c *gin.Context) webclient.Form {
	city := strings.TrimSpace(c.PostForm("city"))
	if city == "" {
		city = defaultCity
	}
	f := webclient.NewForm(city)
	f.Name = c.PostForm("name")
	if n := strings.TrimSpace(c.PostForm("neighborhood")); n != "" && contains(f.Neighborhoods, n) {
		f.Neighborhood = n
	}

	names := c.PostFormArray("restaurant_name")
	ids := c.PostFormArray("place_id")
	rows := len(names)
	if rows < len(f.Restaurants) {
		rows = len(f.Restaurants)
	}
	f.Restaurants = make([]webclient.RestaurantField, rows)
	for i := range f.Restaurants {
		if i < len(names) {
			f.Restaurants[i].Text = names[i]
		}
		if i < len(ids) {
			f.Restaurants[i].PlaceID = strings.TrimSpace(ids[i])
		}
	}

	f.Types = c.PostFormArray("restaurant_type")
	f.InputWeight = percent(c.PostForm("input_weight"))
	f.RevisitWeight = percent(c.PostForm("revisit_weight"))
	return f
}

func percent(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
