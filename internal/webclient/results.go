package webclient

import (
	"context"
	"sync"
)

type ResultsState int

const (
	ResultsIdle ResultsState = iota
	ResultsLoading
	ResultsLoaded
	ResultsEmpty
	ResultsError
)

const msgRecommendFailed = "Failed to get recommendations"

// ResultsView is a snapshot of the results area.
type ResultsView struct {
	State ResultsState
	Cards []Recommendation
	Error string
}

// Results is the recommendations output area. It is loading only while a
// request is in flight.
type Results struct {
	mu    sync.Mutex
	state ResultsState
	cards []Recommendation
	err   string
}

// Submit sends the form and replaces the cards with the outcome. A failed
// request replaces the cards with an inline error; nothing is retried.
func (r *Results) Submit(ctx context.Context, b Backend, f Form) error {
	r.mu.Lock()
	r.state = ResultsLoading
	r.mu.Unlock()

	recs, err := b.Recommend(ctx, BuildRecommendationRequest(f))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = nil
	r.err = ""
	switch {
	case err != nil:
		r.state = ResultsError
		r.err = "Error: " + userMessage(err, msgRecommendFailed)
	case len(recs) == 0:
		r.state = ResultsEmpty
	default:
		r.state = ResultsLoaded
		r.cards = recs
	}
	return err
}

func (r *Results) View() ResultsView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ResultsView{
		State: r.state,
		Cards: append([]Recommendation(nil), r.cards...),
		Error: r.err,
	}
}
