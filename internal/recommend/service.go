package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"campfire/internal/history"
	"campfire/internal/llm"
	"campfire/internal/places"
	"campfire/internal/restaurants"
	"campfire/internal/shared/metrics"
	"campfire/internal/shared/telemetry"
	"campfire/internal/shared/util"
	"campfire/internal/users"
)

type UserStore interface {
	Ensure(ctx context.Context, name string) (users.User, error)
}

type RestaurantStore interface {
	ByPlaceID(ctx context.Context, placeID string) (restaurants.Restaurant, error)
	ByName(ctx context.Context, name, city string) (restaurants.Restaurant, error)
	ByIDs(ctx context.Context, ids []int64) ([]restaurants.Restaurant, error)
	Save(ctx context.Context, r restaurants.Restaurant, city string) (restaurants.Restaurant, error)
}

type HistoryStore interface {
	Record(ctx context.Context, req history.Request, inputIDs, recommendedIDs []int64) (int64, error)
	PreviouslyRecommended(ctx context.Context, userID int64, city string) ([]int64, error)
}

type PreferenceStore interface {
	Split(ctx context.Context, userID int64) (liked, disliked []int64, err error)
}

// detailFetchLimit bounds concurrent place detail lookups per request.
const detailFetchLimit = 4

type Service struct {
	Users       UserStore
	Restaurants RestaurantStore
	History     HistoryStore
	Preferences PreferenceStore
	Places      places.Provider
	LLM         llm.Client
	Count       int
}

// Recommend runs the full pipeline for one request.
func (s *Service) Recommend(ctx context.Context, req Request) ([]Recommendation, error) {
	start := time.Now()
	recs, outcome, err := s.recommend(ctx, req)
	if err != nil {
		outcome = "error"
		if errors.Is(err, ErrInvalidInput) {
			outcome = "invalid"
		}
	}
	metrics.ObserveRecommendation(outcome, time.Since(start))
	return recs, err
}

func (s *Service) recommend(ctx context.Context, req Request) ([]Recommendation, string, error) {
	name := util.SanitizeName(req.User)
	city := strings.TrimSpace(req.City)
	if name == "" {
		return nil, "", fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	if city == "" {
		return nil, "", fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	count := s.Count
	if count <= 0 {
		count = DefaultCount
	}
	alpha, beta := req.Weights()
	types := dedupe(req.RestaurantTypes)

	user, err := s.Users.Ensure(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("ensure user: %w", err)
	}

	inputs, freeText, err := s.resolveInputs(ctx, req, city)
	if err != nil {
		return nil, "", err
	}

	likedIDs, dislikedIDs, err := s.Preferences.Split(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("load preferences: %w", err)
	}
	liked, err := s.Restaurants.ByIDs(ctx, likedIDs)
	if err != nil {
		return nil, "", fmt.Errorf("load liked: %w", err)
	}
	disliked, err := s.Restaurants.ByIDs(ctx, dislikedIDs)
	if err != nil {
		return nil, "", fmt.Errorf("load disliked: %w", err)
	}
	prevIDs, err := s.History.PreviouslyRecommended(ctx, user.ID, city)
	if err != nil {
		return nil, "", fmt.Errorf("load history: %w", err)
	}
	prev, err := s.Restaurants.ByIDs(ctx, prevIDs)
	if err != nil {
		return nil, "", fmt.Errorf("load previous: %w", err)
	}

	profile := BuildProfile(liked, inputs, alpha)

	excluded := placeIDSet(inputs, liked, disliked)
	if beta == 0 {
		for id := range placeIDSet(prev) {
			excluded[id] = true
		}
	}
	revisits := selectRevisits(prev, placeIDSet(disliked, inputs), beta, count)

	var searched []Candidate
	var searchErr error
	if beta >= 1 && len(revisits) >= minRevisitsOnly {
		telemetry.Debug("recommend.search.skipped", map[string]any{"revisits": len(revisits)})
	} else {
		results, err := s.Places.SearchNearby(ctx, places.NearbyQuery{
			City:         city,
			Neighborhood: strings.TrimSpace(req.Neighborhood),
			Types:        types,
			MaxResults:   20,
		})
		if err != nil {
			searchErr = err
			telemetry.Warn("recommend.search.failed", map[string]any{"city": city, "error": err.Error()})
		}
		cands := make([]Candidate, 0, len(results))
		for _, d := range results {
			cands = append(cands, Candidate{Details: d})
		}
		searched = FilterCandidates(cands, excluded, types)
	}

	pool, err := candidatePool(revisits, searched, searchErr)
	if errors.Is(err, ErrNoCandidates) {
		telemetry.Info("recommend.empty", map[string]any{"user_name": name, "city": city})
		if _, err := s.record(ctx, user.ID, req, city, alpha, beta, inputs, nil); err != nil {
			return nil, "", err
		}
		return []Recommendation{}, "empty", nil
	}
	if err != nil {
		return nil, "", err
	}

	session := append([]restaurants.Restaurant{}, inputs...)
	for _, n := range freeText {
		session = append(session, restaurants.Restaurant{Name: n})
	}
	recs, outcome := s.rank(ctx, RankInput{
		Profile:       profile,
		Candidates:    pool,
		LikedNames:    names(liked),
		DislikedNames: names(disliked),
		Session:       session,
		History:       liked,
		Neighborhood:  req.Neighborhood,
		Types:         types,
		Alpha:         alpha,
		Count:         count,
	})

	recs, err = s.persistRecommendations(ctx, recs, pool, city)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.record(ctx, user.ID, req, city, alpha, beta, inputs, recs); err != nil {
		return nil, "", err
	}
	telemetry.Info("recommend.complete", map[string]any{
		"user_name":  name,
		"city":       city,
		"inputs":     len(inputs),
		"candidates": len(pool),
		"revisits":   len(revisits),
		"results":    len(recs),
		"ranker":     outcome,
	})
	return recs, outcome, nil
}

// candidatePool merges revisits ahead of fresh search results. An empty pool
// is ErrNoCandidates unless the search itself failed.
func candidatePool(revisits, searched []Candidate, searchErr error) ([]Candidate, error) {
	pool := mergeCandidates(revisits, searched)
	if len(pool) > 0 {
		return pool, nil
	}
	if searchErr != nil {
		return nil, fmt.Errorf("search candidates: %w", searchErr)
	}
	return nil, ErrNoCandidates
}

// resolveInputs turns place ids and free-text names into restaurants. Unknown
// place ids are fetched from the provider concurrently and saved; names that
// match nothing are returned as plain strings.
func (s *Service) resolveInputs(ctx context.Context, req Request, city string) ([]restaurants.Restaurant, []string, error) {
	ids := dedupe(req.PlaceIDs)
	resolved := make([]*restaurants.Restaurant, len(ids))
	var missing []int
	for i, id := range ids {
		r, err := s.Restaurants.ByPlaceID(ctx, id)
		switch {
		case err == nil:
			resolved[i] = &r
		case errors.Is(err, restaurants.ErrNotFound):
			missing = append(missing, i)
		default:
			return nil, nil, fmt.Errorf("lookup place %s: %w", id, err)
		}
	}

	if len(missing) > 0 {
		fetched := make([]*places.Details, len(ids))
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(detailFetchLimit)
		for _, idx := range missing {
			g.Go(func() error {
				d, err := s.Places.Details(gctx, ids[idx], "")
				if err != nil {
					telemetry.Warn("recommend.details.failed", map[string]any{"place_id": ids[idx], "error": err.Error()})
					return nil
				}
				mu.Lock()
				fetched[idx] = &d
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for _, idx := range missing {
			d := fetched[idx]
			if d == nil {
				continue
			}
			if d.PlaceID == "" {
				d.PlaceID = ids[idx]
			}
			saved, err := s.Restaurants.Save(ctx, places.ToRestaurant(s.Places.Name(), *d), city)
			if err != nil {
				return nil, nil, fmt.Errorf("save input restaurant: %w", err)
			}
			resolved[idx] = &saved
		}
	}

	out := make([]restaurants.Restaurant, 0, len(ids)+len(req.InputRestaurants))
	seen := map[int64]bool{}
	for _, r := range resolved {
		if r != nil && !seen[r.ID] {
			seen[r.ID] = true
			out = append(out, *r)
		}
	}

	var freeText []string
	for _, name := range dedupe(req.InputRestaurants) {
		r, err := s.Restaurants.ByName(ctx, name, city)
		switch {
		case err == nil:
			if !seen[r.ID] {
				seen[r.ID] = true
				out = append(out, r)
			}
		case errors.Is(err, restaurants.ErrNotFound):
			freeText = append(freeText, name)
		default:
			return nil, nil, fmt.Errorf("lookup restaurant %q: %w", name, err)
		}
	}
	return out, freeText, nil
}

func (s *Service) rank(ctx context.Context, in RankInput) ([]Recommendation, string) {
	if s.LLM != nil {
		prompt, err := BuildRankPrompt(in)
		if err == nil {
			reply, err := s.LLM.Complete(ctx, prompt)
			if err == nil {
				if recs := ParseRanking(reply, in.Candidates, in.Count); len(recs) > 0 {
					return recs, "llm"
				}
				telemetry.Warn("recommend.rank.unparsable", map[string]any{"reply_len": len(reply)})
			} else if !errors.Is(err, llm.ErrNotConfigured) {
				telemetry.Warn("recommend.rank.failed", map[string]any{"error": err.Error()})
			}
		} else {
			telemetry.Error("recommend.prompt.failed", map[string]any{"error": err.Error()})
		}
	}
	return FallbackRank(in.Candidates, in.Profile, in.Count), "fallback"
}

// persistRecommendations upserts every recommended place so each card has a
// stable restaurant id.
func (s *Service) persistRecommendations(ctx context.Context, recs []Recommendation, pool []Candidate, city string) ([]Recommendation, error) {
	byPlace := make(map[string]Candidate, len(pool))
	for _, c := range pool {
		byPlace[c.PlaceID] = c
	}
	for i := range recs {
		if recs[i].ID != 0 {
			continue
		}
		c, ok := byPlace[recs[i].PlaceID]
		if !ok {
			continue
		}
		saved, err := s.Restaurants.Save(ctx, places.ToRestaurant(s.Places.Name(), c.Details), city)
		if err != nil {
			return nil, fmt.Errorf("save recommendation: %w", err)
		}
		recs[i].ID = saved.ID
		if recs[i].Address == "" {
			recs[i].Address = saved.Location
		}
	}
	return recs, nil
}

func (s *Service) record(ctx context.Context, userID int64, req Request, city string, alpha, beta float64, inputs []restaurants.Restaurant, recs []Recommendation) (int64, error) {
	inputIDs := make([]int64, 0, len(inputs))
	for _, r := range inputs {
		inputIDs = append(inputIDs, r.ID)
	}
	recIDs := make([]int64, 0, len(recs))
	for _, r := range recs {
		if r.ID != 0 {
			recIDs = append(recIDs, r.ID)
		}
	}
	id, err := s.History.Record(ctx, history.Request{
		UserID:        userID,
		City:          city,
		Neighborhood:  strings.TrimSpace(req.Neighborhood),
		InputWeight:   alpha,
		RevisitWeight: beta,
	}, inputIDs, recIDs)
	if err != nil {
		return 0, fmt.Errorf("record request: %w", err)
	}
	return id, nil
}

func placeIDSet(groups ...[]restaurants.Restaurant) map[string]bool {
	out := map[string]bool{}
	for _, g := range groups {
		for _, r := range g {
			if r.PlaceID != "" {
				out[r.PlaceID] = true
			}
		}
	}
	return out
}

func names(rs []restaurants.Restaurant) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

// dedupe trims values and drops blanks and repeats, keeping first-seen order.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
