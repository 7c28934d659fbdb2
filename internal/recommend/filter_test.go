package recommend

import (
	"testing"

	"campfire/internal/places"
)

func cand(id, ptype string, rating *float64, price string, cats ...string) Candidate {
	return Candidate{Details: places.Details{
		PlaceID:     id,
		Name:        "Restaurant " + id,
		PrimaryType: ptype,
		Rating:      rating,
		PriceLevel:  price,
		Categories:  cats,
	}}
}

func ids(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.PlaceID
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func TestDropLodging(t *testing.T) {
	for ltype := range lodgingTypes {
		if out := dropLodging([]Candidate{cand("x", ltype, ptrF(4), "")}); len(out) != 0 {
			t.Fatalf("%s should be dropped", ltype)
		}
	}
	keep := []Candidate{cand("a", "restaurant", nil, ""), cand("b", "", nil, ""), cand("c", "HOTEL", nil, "")}
	if got := ids(dropLodging(keep)); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected survivors %v", got)
	}
}

func TestDropExcluded(t *testing.T) {
	in := []Candidate{cand("a", "", nil, ""), cand("b", "", nil, ""), cand("c", "", nil, "")}
	if got := ids(dropExcluded(in, map[string]bool{"b": true})); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected %v", got)
	}
	if got := dropExcluded(in, map[string]bool{"a": true, "b": true, "c": true}); len(got) != 0 {
		t.Fatalf("expected none, got %v", ids(got))
	}
}

func TestRatingFloor(t *testing.T) {
	enough := []Candidate{
		cand("a", "", ptrF(4.5), ""), cand("b", "", ptrF(4.0), ""),
		cand("c", "", ptrF(4.2), ""), cand("d", "", ptrF(3.0), ""), cand("e", "", nil, ""),
	}
	got := ids(applyRatingFloor(enough))
	if len(got) != 3 || contains(got, "d") || contains(got, "e") {
		t.Fatalf("unexpected survivors %v", got)
	}

	few := []Candidate{
		cand("a", "", ptrF(4.5), ""), cand("b", "", ptrF(4.0), ""),
		cand("c", "", ptrF(2.0), ""), cand("d", "", ptrF(1.5), ""),
	}
	if got := applyRatingFloor(few); len(got) != 4 {
		t.Fatalf("floor should be skipped, got %v", ids(got))
	}
}

func TestTypeFilterFineDining(t *testing.T) {
	in := []Candidate{
		cand("a", "restaurant", nil, priceExp),
		cand("b", "restaurant", nil, "PRICE_LEVEL_MODERATE"),
		cand("c", "restaurant", nil, priceVeryExp),
		cand("d", "fine_dining_restaurant", nil, "PRICE_LEVEL_MODERATE"),
		cand("e", "restaurant", nil, "PRICE_LEVEL_MODERATE"),
	}
	got := ids(applyTypes(in, []string{"Fine Dining"}))
	if len(got) != 3 || !contains(got, "a") || !contains(got, "c") || !contains(got, "d") {
		t.Fatalf("unexpected %v", got)
	}
}

func TestTypeFilterBarUsesCategories(t *testing.T) {
	in := []Candidate{
		cand("a", "cocktail_bar", nil, ""),
		cand("b", "restaurant", nil, ""),
		cand("c", "restaurant", nil, "", "Pub"),
		cand("d", "wine_bar", nil, ""),
	}
	got := ids(applyTypes(in, []string{"bar"}))
	if len(got) != 3 || contains(got, "b") {
		t.Fatalf("unexpected %v", got)
	}
}

func TestTypeFilterCasualExcludesFineDining(t *testing.T) {
	in := []Candidate{
		cand("a", "restaurant", nil, "PRICE_LEVEL_MODERATE"),
		cand("b", "fine_dining_restaurant", nil, priceVeryExp),
		cand("c", "restaurant", nil, "PRICE_LEVEL_INEXPENSIVE"),
		cand("d", "restaurant", nil, "PRICE_LEVEL_MODERATE"),
	}
	got := ids(applyTypes(in, []string{"casual"}))
	if contains(got, "b") || len(got) != 3 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestTypeFilterSkippedWhenFewMatch(t *testing.T) {
	in := []Candidate{
		cand("a", "", nil, priceExp),
		cand("b", "", nil, "PRICE_LEVEL_MODERATE"),
		cand("c", "", nil, "PRICE_LEVEL_MODERATE"),
		cand("d", "", nil, "PRICE_LEVEL_MODERATE"),
	}
	if got := applyTypes(in, []string{"Fine Dining"}); len(got) != 4 {
		t.Fatalf("filter should fall back, got %v", ids(got))
	}
	if got := applyTypes(in, nil); len(got) != 4 {
		t.Fatalf("no types keeps all")
	}
}

func TestFilterCandidatesSortsByRating(t *testing.T) {
	in := []Candidate{
		cand("none", "restaurant", nil, ""),
		cand("a", "restaurant", ptrF(3.9), ""),
		cand("b", "restaurant", ptrF(4.8), ""),
		cand("c", "restaurant", ptrF(4.2), ""),
		cand("hotel", "hotel", ptrF(5.0), ""),
	}
	got := ids(FilterCandidates(in, nil, nil))
	want := []string{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("unexpected %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %s, got %v", i, want[i], got)
		}
	}
}

func TestSortMissingRatingLast(t *testing.T) {
	in := []Candidate{cand("none", "", nil, ""), cand("a", "", ptrF(4.5), ""), cand("b", "", ptrF(3.8), "")}
	sortByRating(in)
	if in[len(in)-1].PlaceID != "none" {
		t.Fatalf("missing rating should sort last, got %v", ids(in))
	}
}
