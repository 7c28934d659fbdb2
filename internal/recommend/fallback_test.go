package recommend

import (
	"strings"
	"testing"

	"campfire/internal/places"
)

func TestFallbackRankPrefersProfileMatch(t *testing.T) {
	cands := []Candidate{
		{Details: places.Details{PlaceID: "a", Name: "A", Rating: ptrF(4.6), PrimaryType: "burger_restaurant"}},
		{Details: places.Details{PlaceID: "b", Name: "B", Rating: ptrF(4.4), PrimaryType: "ramen_restaurant", PriceLevel: "PRICE_LEVEL_MODERATE"}},
		{Details: places.Details{PlaceID: "c", Name: "C", Rating: ptrF(4.0), EditorialSummary: "Neighborhood bistro"}},
		{Details: places.Details{PlaceID: "d", Name: "D"}},
	}
	p := Profile{PreferredPriceLevel: "PRICE_LEVEL_MODERATE", TopCuisineTypes: []string{"ramen_restaurant"}}

	got := FallbackRank(cands, p, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].PlaceID != "b" || got[1].PlaceID != "a" || got[2].PlaceID != "c" {
		t.Fatalf("unexpected order %+v", got)
	}
	if !strings.Contains(got[0].Reason, "Ramen restaurant") {
		t.Fatalf("expected taste reason, got %q", got[0].Reason)
	}
	if got[2].Description != "Neighborhood bistro" {
		t.Fatalf("expected editorial summary, got %q", got[2].Description)
	}
}

func TestFallbackRankRevisitReason(t *testing.T) {
	got := FallbackRank([]Candidate{{Details: places.Details{Name: "Old"}, IsRevisit: true}}, Profile{}, 3)
	if len(got) != 1 || !got[0].IsRevisit || got[0].Reason == "" {
		t.Fatalf("unexpected %+v", got)
	}
}
