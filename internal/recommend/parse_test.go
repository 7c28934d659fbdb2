package recommend

import (
	"testing"

	"campfire/internal/places"
)

func pool(names ...string) []Candidate {
	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = Candidate{Details: places.Details{PlaceID: "pid_" + n, Name: n, Address: n + " St"}, RestaurantID: int64(i + 10)}
	}
	return out
}

func TestParseRankingThreeParts(t *testing.T) {
	reply := "2. Wrong Name - Because you love ramen - Rich broth - and noodles\n1) Alpha — cozy vibes here – Great pasta"
	got := ParseRanking(reply, pool("Alpha", "Beta"), 3)
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got[0].Name != "Beta" || got[0].PlaceID != "pid_Beta" || got[0].ID != 11 {
		t.Fatalf("name must come from the candidate list: %+v", got[0])
	}
	if got[0].Reason != "Because you love ramen" || got[0].Description != "Rich broth - and noodles" {
		t.Fatalf("unexpected parse %+v", got[0])
	}
	if got[1].Reason != "cozy vibes here" || got[1].Description != "Great pasta" {
		t.Fatalf("dashes should be normalized: %+v", got[1])
	}
}

func TestParseRankingShortReasonDropped(t *testing.T) {
	got := ParseRanking("1. Alpha - fun - Great pasta", pool("Alpha"), 3)
	if len(got) != 1 || got[0].Reason != "" || got[0].Description != "Great pasta" {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestParseRankingTwoParts(t *testing.T) {
	got := ParseRanking("1. Alpha - Great pasta", pool("Alpha"), 3)
	if len(got) != 1 || got[0].Description != "Great pasta" || got[0].Reason != "" {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestParseRankingSkipsUnknownAndCaps(t *testing.T) {
	reply := `Here are my picks:
9. Ghost - not a candidate at all - nope
1. A - reason one here - d1
2. B - reason two here - d2
3. C - reason three here - d3
4. D - reason four here - d4`
	got := ParseRanking(reply, pool("A", "B", "C", "D"), 3)
	if len(got) != 3 {
		t.Fatalf("expected cap at 3, got %d", len(got))
	}
	if got[0].Name != "A" || got[2].Name != "C" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestParseRankingEmpty(t *testing.T) {
	if got := ParseRanking("I cannot help with that.", pool("A"), 3); len(got) != 0 {
		t.Fatalf("expected nothing, got %+v", got)
	}
}

func TestParseRankingMatchesUnnumberedByName(t *testing.T) {
	reply := `- **Cafe Lulu** - Because you liked Alpha - Flaky croissants
Beta's Diner - Great late-night fries
Nobody Here - not a candidate either - skip`
	got := ParseRanking(reply, pool("Alpha", "Café Lulu", "Betas Diner"), 3)
	if len(got) != 2 {
		t.Fatalf("expected 2, got %+v", got)
	}
	if got[0].Name != "Café Lulu" || got[0].ID != 11 || got[0].Reason != "Because you liked Alpha" {
		t.Fatalf("unexpected first %+v", got[0])
	}
	if got[1].Name != "Betas Diner" || got[1].Description != "Great late-night fries" {
		t.Fatalf("unexpected second %+v", got[1])
	}
}

func TestParseRankingDoesNotRepeatCandidate(t *testing.T) {
	got := ParseRanking("1. Alpha - Great pasta\nAlpha - Great pasta again", pool("Alpha", "Beta"), 3)
	if len(got) != 1 {
		t.Fatalf("expected one entry per candidate, got %+v", got)
	}
}
