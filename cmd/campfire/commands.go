package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"campfire/internal/webclient"
)

func nameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name [NAME]",
		Short: "Show or set the remembered display name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withNames(func(s webclient.NameStore) error {
				if len(args) == 1 {
					if err := s.Save(ctx, args[0]); err != nil {
						return err
					}
				}
				name, err := s.Load(ctx)
				if err != nil {
					return err
				}
				if name == "" {
					name = "Guest"
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			})
		},
	}
}

func autocompleteCmd() *cobra.Command {
	var city string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "autocomplete [QUERY]",
		Short: "Look up restaurants by name",
		Long: "With a query, prints up to five matches. With -i, reads one query per line from stdin " +
			"as if typed, and a line holding just a number picks that suggestion.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ac := webclient.NewAutocompleter(backend(), webclient.DefaultDebounce)
			out := cmd.OutOrStdout()
			if !interactive {
				got, err := ac.Fetch(cmd.Context(), strings.Join(args, " "), city)
				if err != nil {
					return err
				}
				printSuggestions(out, got)
				return nil
			}
			return runInteractive(cmd.Context(), ac, cmd.InOrStdin(), out, city)
		},
	}
	cmd.Flags().StringVar(&city, "city", "Chicago", "city to search in")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read keystrokes from stdin")
	return cmd
}

// replyWait bounds how long a pick waits for the suggestions it refers to.
const replyWait = 10 * time.Second

// suggestionFeed hands applied suggestion lists from the debouncer to the
// reading loop, keeping only the newest one.
type suggestionFeed struct {
	mu     sync.Mutex
	latest []webclient.Suggestion
	fresh  bool
	ready  chan struct{}
}

func newSuggestionFeed() *suggestionFeed {
	return &suggestionFeed{ready: make(chan struct{}, 1)}
}

func (f *suggestionFeed) publish(s []webclient.Suggestion) {
	f.mu.Lock()
	f.latest, f.fresh = s, true
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// take returns the newest unread list, if any.
func (f *suggestionFeed) take() ([]webclient.Suggestion, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fresh {
		return nil, false
	}
	f.fresh = false
	return f.latest, true
}

// wait blocks until a list is published or the wait runs out.
func (f *suggestionFeed) wait(ctx context.Context, d time.Duration) ([]webclient.Suggestion, bool) {
	if s, ok := f.take(); ok {
		return s, true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-f.ready:
			if s, ok := f.take(); ok {
				return s, true
			}
		case <-timer.C:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

func runInteractive(ctx context.Context, ac *webclient.Autocompleter, in io.Reader, out io.Writer, city string) error {
	feed := newSuggestionFeed()
	ac.OnResults = feed.publish

	var field webclient.RestaurantField
	pending := false
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if s, ok := feed.take(); ok {
			printSuggestions(out, s)
			pending = false
		}
		if n, err := strconv.Atoi(line); err == nil {
			if pending {
				if s, ok := feed.wait(ctx, replyWait); ok {
					printSuggestions(out, s)
				}
				pending = false
			}
			suggestions := ac.Suggestions()
			if n < 1 || n > len(suggestions) {
				fmt.Fprintln(out, "no such suggestion")
				continue
			}
			ac.Select(&field, suggestions[n-1])
			fmt.Fprintf(out, "selected %s (%s)\n", field.Text, field.PlaceID)
			continue
		}
		ac.Keystroke(ctx, line, city)
		pending = len([]rune(line)) >= webclient.MinQueryLength
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if pending {
		if s, ok := feed.wait(ctx, replyWait); ok {
			printSuggestions(out, s)
		}
	}
	return nil
}

func printSuggestions(out io.Writer, s []webclient.Suggestion) {
	if len(s) == 0 {
		fmt.Fprintln(out, "no matches")
		return
	}
	for i, sug := range s {
		fmt.Fprintf(out, "%d. %s\n", i+1, sug.Label())
	}
}

func recommendCmd() *cobra.Command {
	var (
		name          string
		city          string
		neighborhood  string
		restaurants   []string
		types         []string
		inputWeight   int
		revisitWeight int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Get recommendations",
		Long:  "Each --restaurant is a free-text name, or place:ID for an exact place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			remembered, err := currentName(ctx, "")
			if err != nil {
				return err
			}
			if name == "" {
				name = remembered
			} else if err := withNames(func(s webclient.NameStore) error { return s.Save(ctx, name) }); err != nil {
				return err
			}

			form := webclient.NewForm(city)
			form.Name = name
			if neighborhood != "" {
				form.Neighborhood = neighborhood
			}
			form.Restaurants = restaurantFields(restaurants)
			form.Types = types
			form.InputWeight = &inputWeight
			form.RevisitWeight = &revisitWeight

			var results webclient.Results
			_ = results.Submit(ctx, backend(), form)
			return printResults(cmd.OutOrStdout(), results.View())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (remembered)")
	cmd.Flags().StringVar(&city, "city", "Chicago", "city")
	cmd.Flags().StringVar(&neighborhood, "neighborhood", "", "neighborhood within the city")
	cmd.Flags().StringArrayVarP(&restaurants, "restaurant", "r", nil, "a restaurant you love (repeatable)")
	cmd.Flags().StringArrayVarP(&types, "type", "t", nil, "restaurant type filter (repeatable)")
	cmd.Flags().IntVar(&inputWeight, "input-weight", webclient.DefaultInputWeight, "0-100, how closely to match your inputs")
	cmd.Flags().IntVar(&revisitWeight, "revisit-weight", webclient.DefaultRevisitWeight, "0-100, how many past recommendations may return")
	return cmd
}

func restaurantFields(raw []string) []webclient.RestaurantField {
	out := make([]webclient.RestaurantField, 0, len(raw))
	for _, r := range raw {
		if id, ok := strings.CutPrefix(strings.TrimSpace(r), "place:"); ok {
			out = append(out, webclient.RestaurantField{PlaceID: strings.TrimSpace(id)})
			continue
		}
		out = append(out, webclient.RestaurantField{Text: r})
	}
	return out
}

func printResults(out io.Writer, v webclient.ResultsView) error {
	switch v.State {
	case webclient.ResultsError:
		return fmt.Errorf("%s", strings.TrimPrefix(v.Error, "Error: "))
	case webclient.ResultsEmpty:
		fmt.Fprintln(out, "No recommendations found. Try different restaurants or preferences.")
		return nil
	}
	for i, c := range v.Cards {
		title := c.Name
		if c.IsRevisit {
			title += " (revisit)"
		}
		fmt.Fprintf(out, "%d. %s  [#%d]\n", i+1, title, c.ID)
		if c.Address != "" {
			fmt.Fprintf(out, "   %s\n", c.Address)
		}
		if c.Rating != nil {
			fmt.Fprintf(out, "   rating %.1f %s\n", *c.Rating, c.PriceLevel)
		}
		if c.Reason != "" {
			fmt.Fprintf(out, "   why: %s\n", c.Reason)
		}
		if c.Description != "" {
			fmt.Fprintf(out, "   %s\n", c.Description)
		}
	}
	return nil
}

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "List your taste profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := currentName(ctx, "")
			if err != nil {
				return err
			}
			panel := webclient.NewPreferencesPanel(backend())
			if err := panel.Open(ctx, name); err != nil {
				return err
			}
			return printPreferences(cmd.OutOrStdout(), panel.View())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set RESTAURANT_ID like|neutral|dislike",
		Short: "Rate a restaurant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("restaurant id must be a number")
			}
			pref := webclient.Preference(strings.ToLower(args[1]))
			if !pref.Valid() {
				return fmt.Errorf("preference must be like, neutral or dislike")
			}
			name, err := currentName(ctx, "")
			if err != nil {
				return err
			}
			panel := webclient.NewPreferencesPanel(backend())
			if err := panel.Open(ctx, name); err != nil {
				return err
			}
			if err := panel.Toggle(ctx, name, id, pref); err != nil {
				return err
			}
			return printPreferences(cmd.OutOrStdout(), panel.View())
		},
	})
	return cmd
}

func printPreferences(out io.Writer, v webclient.PanelView[webclient.RestaurantPreference]) error {
	switch {
	case v.State == webclient.PanelNeedsName:
		return fmt.Errorf("set your name first: campfire name NAME")
	case v.Err != nil:
		return v.Err
	case v.Empty():
		fmt.Fprintln(out, "No dining history found yet.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPREFERENCE")
	for _, p := range v.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.Preference)
	}
	return tw.Flush()
}

func feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Show the suggestion board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := currentName(ctx, "")
			if err != nil {
				return err
			}
			panel := webclient.NewFeedbackPanel(backend())
			if err := panel.Open(ctx, name); err != nil {
				return err
			}
			return printFeedback(cmd.OutOrStdout(), panel.View())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "submit TEXT",
		Short: "Suggest a feature",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, err := currentName(ctx, "")
			if err != nil {
				return err
			}
			panel := webclient.NewFeedbackPanel(backend())
			if err := panel.Submit(ctx, name, strings.Join(args, " ")); err != nil {
				return err
			}
			return printFeedback(cmd.OutOrStdout(), panel.View())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "vote SUGGESTION_ID up|down",
		Short: "Vote on a suggestion; voting the same way twice removes the vote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("suggestion id must be a number")
			}
			var vote int
			switch strings.ToLower(args[1]) {
			case "up", "+1", "1":
				vote = 1
			case "down", "-1":
				vote = -1
			default:
				return fmt.Errorf("vote must be up or down")
			}
			name, err := currentName(ctx, "")
			if err != nil {
				return err
			}
			panel := webclient.NewFeedbackPanel(backend())
			if err := panel.Vote(ctx, name, id, vote); err != nil {
				return err
			}
			return printFeedback(cmd.OutOrStdout(), panel.View())
		},
	})
	return cmd
}

func printFeedback(out io.Writer, v webclient.PanelView[webclient.FeedbackItem]) error {
	if v.Err != nil {
		return v.Err
	}
	if v.Empty() {
		fmt.Fprintln(out, "No suggestions yet. Be the first!")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCORE\tYOU\tSUGGESTION")
	for _, f := range v.Items {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", f.ID, f.Score, voteMark(f.UserVote), f.Content)
	}
	return tw.Flush()
}

func voteMark(v int) string {
	switch v {
	case 1:
		return "+"
	case -1:
		return "-"
	default:
		return ""
	}
}
