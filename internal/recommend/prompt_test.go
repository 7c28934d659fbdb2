package recommend

import (
	"strings"
	"testing"

	"campfire/internal/places"
	"campfire/internal/restaurants"
)

func TestBuildRankPromptSections(t *testing.T) {
	in := RankInput{
		Profile: Profile{PreferredPriceLevel: "PRICE_LEVEL_MODERATE", MinRating: ptrF(4.3), TopCuisineTypes: []string{"ramen_restaurant"}},
		Candidates: []Candidate{
			{Details: places.Details{Name: "Ramen Takeya", PrimaryType: "ramen_restaurant", PriceLevel: "PRICE_LEVEL_MODERATE", Rating: ptrF(4.5), EditorialSummary: "Rich tonkotsu"}},
			{Details: places.Details{Name: "Bare Bones"}},
		},
		LikedNames: []string{"Monteverde"},
		Session: []restaurants.Restaurant{
			{Name: "Ramen-san", PrimaryType: "ramen_restaurant", ServesDineIn: ptrB(true)},
		},
		History:      []restaurants.Restaurant{{Name: "Monteverde", Reservable: ptrB(true)}},
		Neighborhood: "West Loop",
		Types:        []string{"casual", "bar"},
		Alpha:        0.8,
		Count:        3,
	}
	prompt, err := BuildRankPrompt(in)
	if err != nil {
		t.Fatalf("BuildRankPrompt: %v", err)
	}

	wants := []string{
		"1. Ramen Takeya — ramen_restaurant, PRICE_LEVEL_MODERATE, rating: 4.5, Rich tonkotsu",
		"2. Bare Bones\n",
		"**Current session (prioritize matching these):**\n- Ramen-san: ramen_restaurant, dine-in",
		"**Past preferences (use for broader taste context):**\n- Monteverde: reservable",
		"The user's current session inputs should heavily influence your selection.",
		"Neighborhood preference: West Loop",
		"Restaurant type preference: casual, bar",
		"Restaurants the diner liked: Monteverde",
		"Restaurants the diner disliked (avoid similar places): none",
		"Typical rating: 4.3",
		"Prefers dine-in: unknown",
	}
	for _, w := range wants {
		if !strings.Contains(prompt, w) {
			t.Errorf("prompt missing %q\n---\n%s", w, prompt)
		}
	}
}

func TestBuildRankPromptAlphaInstructions(t *testing.T) {
	base := RankInput{Candidates: []Candidate{{Details: places.Details{Name: "A"}}}}

	base.Alpha = 0.2
	low, _ := BuildRankPrompt(base)
	if !strings.Contains(low, "Draw primarily from the user's historical taste profile.") {
		t.Fatalf("expected history instruction")
	}

	base.Alpha = 0.5
	mid, _ := BuildRankPrompt(base)
	if strings.Contains(mid, "heavily influence") || strings.Contains(mid, "Draw primarily") {
		t.Fatalf("balanced alpha should add no instruction")
	}
	if !strings.Contains(mid, "Preferred price level: any") || !strings.Contains(mid, "Favorite cuisine types: any") {
		t.Fatalf("empty profile should render defaults")
	}
}
