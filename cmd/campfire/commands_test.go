package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"campfire/internal/webclient"
)

func TestRestaurantFieldsSplitsPlaceIDs(t *testing.T) {
	got := restaurantFields([]string{"Au Cheval", " place:pid_42 "})
	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got))
	}
	if got[0].Text != "Au Cheval" || got[0].PlaceID != "" {
		t.Fatalf("unexpected free text field %+v", got[0])
	}
	if got[1].PlaceID != "pid_42" || got[1].Text != "" {
		t.Fatalf("unexpected place field %+v", got[1])
	}
}

func TestPrintResults(t *testing.T) {
	rating := 4.5
	var buf bytes.Buffer
	err := printResults(&buf, webclient.ResultsView{
		State: webclient.ResultsLoaded,
		Cards: []webclient.Recommendation{{ID: 9, Name: "Lula Cafe", Rating: &rating, Reason: "Seasonal menus", IsRevisit: true}},
	})
	if err != nil {
		t.Fatalf("printResults: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1. Lula Cafe (revisit)  [#9]") || !strings.Contains(out, "why: Seasonal menus") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	err = printResults(&buf, webclient.ResultsView{State: webclient.ResultsError, Error: "Error: city is required"})
	if err == nil || err.Error() != "city is required" {
		t.Fatalf("expected inline error, got %v", err)
	}
}

func TestPrintFeedbackMarksOwnVotes(t *testing.T) {
	var buf bytes.Buffer
	err := printFeedback(&buf, webclient.PanelView[webclient.FeedbackItem]{
		State: webclient.PanelLoaded,
		Items: []webclient.FeedbackItem{{ID: 1, Content: "Dark mode", Score: 3, UserVote: 1}},
	})
	if err != nil {
		t.Fatalf("printFeedback: %v", err)
	}
	if !strings.Contains(buf.String(), "Dark mode") || !strings.Contains(buf.String(), "+") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestNameCommandRemembersName(t *testing.T) {
	stateDir = t.TempDir()

	var out bytes.Buffer
	cmd := nameCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"  Ada   Lovelace "})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if strings.TrimSpace(out.String()) != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", out.String())
	}

	out.Reset()
	cmd = nameCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("show name: %v", err)
	}
	if strings.TrimSpace(out.String()) != "Ada Lovelace" {
		t.Fatalf("name not remembered, got %q", out.String())
	}
}

// pizzaBackend answers every autocomplete with one place.
type pizzaBackend struct {
	webclient.Backend
}

func (pizzaBackend) Autocomplete(context.Context, string, string, string) ([]webclient.Suggestion, error) {
	return []webclient.Suggestion{{Name: "Pizza Place", Address: "1 Main St", PlaceID: "pid_pizza"}}, nil
}

func TestRunInteractivePicksAfterDebounce(t *testing.T) {
	ac := webclient.NewAutocompleter(pizzaBackend{}, 20*time.Millisecond)
	var out bytes.Buffer
	if err := runInteractive(context.Background(), ac, strings.NewReader("pizza\n1\n"), &out, "Chicago"); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "no such suggestion") {
		t.Fatalf("pick ran before suggestions arrived:\n%s", got)
	}
	list := strings.Index(got, "1. Pizza Place (1 Main St)")
	picked := strings.Index(got, "selected Pizza Place (pid_pizza)")
	if list < 0 || picked < 0 || list > picked {
		t.Fatalf("expected list then selection, got:\n%s", got)
	}
}

func TestRunInteractiveRejectsUnknownPick(t *testing.T) {
	ac := webclient.NewAutocompleter(pizzaBackend{}, time.Millisecond)
	var out bytes.Buffer
	if err := runInteractive(context.Background(), ac, strings.NewReader("3\n"), &out, "Chicago"); err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no such suggestion" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
